// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panel renders the views of one dataset at a time and keeps
// their selections in sync.
//
// A Panel owns the visualizations of the dataset it currently shows.
// Each RenderDataset call discards all of them, along with their
// selection group, before creating new ones. Every render starts a new
// generation; select events tagged with an older generation belong to
// visualizations that no longer exist and are dropped.
package panel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/selection"
)

// ErrUnknownDataset is returned by RenderDataset for a name that is not
// in the panel's Context.
var ErrUnknownDataset = errors.New("unknown dataset")

// ErrSuperseded is returned by RenderDataset when the panel was cleared
// or rendered again while its visualizations were drawing.
var ErrSuperseded = errors.New("render superseded")

// A Visualization draws one view and can display a selection.
type Visualization interface {
	selection.Target
	Draw(v *benchview.View, opts benchview.Options) error
}

// A Factory creates the visualization for view number index of a
// render generation. It does not draw it.
type Factory func(generation, index int, v *benchview.View) (Visualization, error)

// A RenderError reports that one visualization failed to draw.
type RenderError struct {
	Dataset string
	View    string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s/%s: %v", e.Dataset, e.View, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// A Handle is one live visualization of a panel.
type Handle struct {
	Index int
	View  *benchview.View
	Vis   Visualization
	// Err is a *RenderError if the visualization failed. Failed
	// visualizations take no part in selection.
	Err error

	member selection.Member
}

// A Panel shows one dataset of a Context at a time.
type Panel struct {
	ctx     *Context
	factory Factory

	mu         sync.Mutex
	generation int
	drawing    int // generation whose visualizations are drawing, or 0
	dataset    string
	handles    []*Handle
	group      *selection.Group
}

// New returns an empty panel over ctx whose visualizations are created
// by f.
func New(ctx *Context, f Factory) *Panel {
	return &Panel{ctx: ctx, factory: f, group: new(selection.Group)}
}

// RenderDataset replaces the panel contents with the views of dataset
// name, drawn for a panel width in pixels. It returns the new handles
// in view order. A visualization that fails to draw does not stop the
// others; see Handle.Err.
//
// Visualizations are drawn without holding the panel lock, so they may
// call Select, Clear or RenderDataset while drawing. Selects for the
// generation being drawn are dropped. If the panel is cleared or
// rendered again before the draws finish, the new handles are
// discarded and RenderDataset returns ErrSuperseded.
func (p *Panel) RenderDataset(name string, width int) ([]*Handle, error) {
	p.mu.Lock()
	p.clearLocked()
	t, ok := p.ctx.Table(name)
	if !ok {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w %q", ErrUnknownDataset, name)
	}
	p.dataset = name
	gen := p.generation
	p.drawing = gen
	p.mu.Unlock()

	var handles []*Handle
	for i, v := range benchview.SelectViews(t) {
		h := &Handle{Index: i, View: v}
		h.Vis, h.Err = p.draw(name, gen, i, v, width)
		handles = append(handles, h)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != gen {
		return nil, fmt.Errorf("render %q: %w", name, ErrSuperseded)
	}
	p.drawing = 0
	for _, h := range handles {
		if h.Err == nil {
			h.member = p.group.Register(h.Vis)
		}
	}
	p.handles = handles
	return append([]*Handle(nil), handles...), nil
}

func (p *Panel) draw(dataset string, gen, i int, v *benchview.View, width int) (vis Visualization, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			vis = nil
			err = &RenderError{Dataset: dataset, View: v.ID, Err: err}
		}
	}()
	vis, err = p.factory(gen, i, v)
	if err != nil {
		return nil, err
	}
	return vis, vis.Draw(v, v.Options(width))
}

// Select relays a selection made by the user in visualization index of
// the given generation to the panel's other visualizations. It returns
// the number of visualizations updated. Events from an older
// generation, from a generation still being drawn, or from a
// visualization that failed to draw, are ignored.
func (p *Panel) Select(generation, index int, sel selection.Selection) (int, error) {
	p.mu.Lock()
	if generation != p.generation || generation == p.drawing {
		p.mu.Unlock()
		return 0, nil
	}
	if index < 0 || index >= len(p.handles) {
		p.mu.Unlock()
		return 0, fmt.Errorf("no visualization %d in generation %d", index, generation)
	}
	h, group := p.handles[index], p.group
	p.mu.Unlock()

	if h.Err != nil {
		return 0, nil
	}
	// The group is not locked by p.mu so that visualizations may
	// report selections from inside SetSelection.
	return group.BroadcastSelection(h.member, sel)
}

// Clear removes all visualizations without rendering new ones.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
}

func (p *Panel) clearLocked() {
	p.group.UnregisterAll()
	p.group = new(selection.Group)
	p.handles = nil
	p.dataset = ""
	p.generation++
}

// Generation returns the current render generation.
func (p *Panel) Generation() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Dataset returns the name of the dataset shown, or "".
func (p *Panel) Dataset() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dataset
}

// Handles returns the current visualizations.
func (p *Panel) Handles() []*Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Handle(nil), p.handles...)
}

// Registered returns the number of visualizations taking part in
// selection.
func (p *Panel) Registered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.group.Len()
}
