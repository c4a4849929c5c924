// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/squashbench/benchview/benchdata"
	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/selection"
)

type fakeVis struct {
	gen, index int
	view       *benchview.View
	opts       benchview.Options
	drawn      bool
	selections []selection.Selection
	drawErr    error
}

func (f *fakeVis) Draw(v *benchview.View, opts benchview.Options) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.view, f.opts, f.drawn = v, opts, true
	return nil
}

func (f *fakeVis) SetSelection(s selection.Selection) error {
	f.selections = append(f.selections, s)
	return nil
}

type fakeFactory struct {
	made    []*fakeVis
	panicOn string
	failOn  string
}

func (ff *fakeFactory) new(gen, index int, v *benchview.View) (Visualization, error) {
	if v.ID == ff.panicOn {
		panic("cannot draw " + v.ID)
	}
	f := &fakeVis{gen: gen, index: index}
	if v.ID == ff.failOn {
		f.drawErr = errors.New("bad cell")
	}
	ff.made = append(ff.made, f)
	return f, nil
}

func testDoc(t *testing.T, names ...string) *benchdata.Document {
	t.Helper()
	var dss []*benchdata.Dataset
	for _, name := range names {
		dss = append(dss, &benchdata.Dataset{
			Name:             name,
			UncompressedSize: 1000,
			Records: []benchdata.Record{
				{Plugin: "zlib", Codec: "gzip", Size: 500, CompressCPU: 100, DecompressCPU: 50},
				{Plugin: "copy", Codec: "copy", Size: 0, CompressCPU: 1, DecompressCPU: 1},
			},
		})
	}
	doc, err := benchdata.NewDocument(dss...)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestContext(t *testing.T) {
	c := NewContext(testDoc(t, "b", "a", "c"))
	if diff := cmp.Diff([]string{"b", "a", "c"}, c.Datasets()); diff != "" {
		t.Errorf("Datasets() differ (-want +got):\n%s", diff)
	}
	if name, ok := c.AutoSelect(); ok {
		t.Errorf("AutoSelect() = %q with three datasets", name)
	}
	if n := len(c.Warnings()); n != 3 {
		t.Errorf("got %d warnings, want 3 (one Inf ratio per dataset)", n)
	}

	one := NewContext(testDoc(t, "only"))
	if name, ok := one.AutoSelect(); !ok || name != "only" {
		t.Errorf("AutoSelect() = %q, %v; want only, true", name, ok)
	}

	one.Close()
	if _, ok := one.Table("only"); ok {
		t.Error("Table succeeded after Close")
	}
	if n := len(one.Datasets()); n != 0 {
		t.Errorf("Datasets() after Close has %d names", n)
	}
}

func TestRenderDataset(t *testing.T) {
	var ff fakeFactory
	p := New(NewContext(testDoc(t, "a")), ff.new)
	handles, err := p.RenderDataset("a", 1600)
	if err != nil {
		t.Fatal(err)
	}
	if len(handles) != len(benchview.Specs) {
		t.Fatalf("got %d handles, want %d", len(handles), len(benchview.Specs))
	}
	for i, h := range handles {
		if h.Err != nil {
			t.Errorf("handle %d: %v", i, h.Err)
		}
		f := h.Vis.(*fakeVis)
		if !f.drawn || f.view.ID != benchview.Specs[i].ID || f.index != i || f.gen != p.Generation() {
			t.Errorf("handle %d: %+v", i, f)
		}
		if i > 0 && f.opts.Height != 900 {
			t.Errorf("handle %d drawn with height %v, want 900", i, f.opts.Height)
		}
	}
	if p.Registered() != 6 || p.Dataset() != "a" {
		t.Errorf("Registered() = %d, Dataset() = %q", p.Registered(), p.Dataset())
	}
}

func TestSelectRelay(t *testing.T) {
	var ff fakeFactory
	p := New(NewContext(testDoc(t, "a")), ff.new)
	if _, err := p.RenderDataset("a", 800); err != nil {
		t.Fatal(err)
	}
	sel := selection.Rows(0)
	n, err := p.Select(p.Generation(), 2, sel)
	if err != nil || n != 5 {
		t.Fatalf("Select = %d, %v; want 5, nil", n, err)
	}
	for i, f := range ff.made {
		want := 1
		if i == 2 {
			want = 0
		}
		if len(f.selections) != want {
			t.Errorf("visualization %d got %d selections, want %d", i, len(f.selections), want)
		}
	}

	if _, err := p.Select(p.Generation(), 17, sel); err == nil {
		t.Error("Select of a missing visualization succeeded")
	}
}

func TestRenderIsolation(t *testing.T) {
	ff := fakeFactory{panicOn: "ratio", failOn: "speed"}
	p := New(NewContext(testDoc(t, "a")), ff.new)
	handles, err := p.RenderDataset("a", 800)
	if err != nil {
		t.Fatal(err)
	}
	for i, h := range handles {
		var re *RenderError
		switch h.View.ID {
		case "ratio", "speed":
			if !errors.As(h.Err, &re) || re.View != h.View.ID || re.Dataset != "a" {
				t.Errorf("handle %d (%s) error = %v, want *RenderError", i, h.View.ID, h.Err)
			}
		default:
			if h.Err != nil {
				t.Errorf("handle %d (%s): %v", i, h.View.ID, h.Err)
			}
		}
	}
	if p.Registered() != 4 {
		t.Errorf("Registered() = %d, want 4", p.Registered())
	}
	if n, err := p.Select(p.Generation(), 0, selection.Rows(1)); err != nil || n != 3 {
		t.Errorf("Select = %d, %v; want 3, nil", n, err)
	}
	if n, _ := p.Select(p.Generation(), 2, selection.Rows(1)); n != 0 {
		t.Errorf("Select from failed visualization reached %d", n)
	}
}

func TestStaleGeneration(t *testing.T) {
	var ff fakeFactory
	p := New(NewContext(testDoc(t, "a", "b")), ff.new)
	if _, err := p.RenderDataset("a", 800); err != nil {
		t.Fatal(err)
	}
	old := p.Generation()
	if _, err := p.RenderDataset("b", 800); err != nil {
		t.Fatal(err)
	}
	if n, err := p.Select(old, 0, selection.Rows(0)); n != 0 || err != nil {
		t.Errorf("stale Select = %d, %v; want 0, nil", n, err)
	}
	for i, f := range ff.made {
		if len(f.selections) != 0 {
			t.Errorf("visualization %d got a stale selection", i)
		}
	}
}

func TestUnknownDataset(t *testing.T) {
	var ff fakeFactory
	p := New(NewContext(testDoc(t, "a")), ff.new)
	if _, err := p.RenderDataset("a", 800); err != nil {
		t.Fatal(err)
	}
	handles, err := p.RenderDataset("zzz", 800)
	if !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("RenderDataset(zzz) error = %v, want ErrUnknownDataset", err)
	}
	if len(handles) != 0 || len(p.Handles()) != 0 || p.Registered() != 0 || p.Dataset() != "" {
		t.Errorf("panel not empty after unknown dataset")
	}
}

func TestClear(t *testing.T) {
	var ff fakeFactory
	p := New(NewContext(testDoc(t, "a")), ff.new)
	if _, err := p.RenderDataset("a", 800); err != nil {
		t.Fatal(err)
	}
	gen := p.Generation()
	p.Clear()
	if p.Generation() == gen || len(p.Handles()) != 0 || p.Registered() != 0 {
		t.Errorf("Clear left generation %d, %d handles", p.Generation(), len(p.Handles()))
	}
	if n, _ := p.Select(gen, 0, selection.Rows(0)); n != 0 {
		t.Errorf("Select after Clear reached %d", n)
	}
}

// callbackVis runs onDraw from inside Draw.
type callbackVis struct {
	fakeVis
	onDraw func()
}

func (c *callbackVis) Draw(v *benchview.View, opts benchview.Options) error {
	if c.onDraw != nil {
		c.onDraw()
	}
	return c.fakeVis.Draw(v, opts)
}

// renderWithin fails the test if RenderDataset does not return in time.
func renderWithin(t *testing.T, p *Panel, name string) ([]*Handle, error) {
	t.Helper()
	type result struct {
		handles []*Handle
		err     error
	}
	done := make(chan result, 1)
	go func() {
		h, err := p.RenderDataset(name, 800)
		done <- result{h, err}
	}()
	select {
	case r := <-done:
		return r.handles, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("RenderDataset did not return")
		return nil, nil
	}
}

func TestSelectWhileDrawing(t *testing.T) {
	var p *Panel
	var selects []int
	f := func(gen, index int, v *benchview.View) (Visualization, error) {
		c := &callbackVis{fakeVis: fakeVis{gen: gen, index: index}}
		c.onDraw = func() {
			n, err := p.Select(gen, index, selection.Rows(0))
			if err != nil {
				t.Errorf("Select from Draw %d: %v", index, err)
			}
			selects = append(selects, n)
		}
		return c, nil
	}
	p = New(NewContext(testDoc(t, "a")), f)

	handles, err := renderWithin(t, p, "a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 0, 0, 0, 0, 0}, selects); diff != "" {
		t.Errorf("selects during draw reached targets (-want +got):\n%s", diff)
	}
	if len(handles) != 6 || p.Registered() != 6 {
		t.Fatalf("got %d handles, %d registered; want 6 and 6", len(handles), p.Registered())
	}

	// Once drawn, the same generation relays normally.
	if n, err := p.Select(p.Generation(), 0, selection.Rows(0)); n != 5 || err != nil {
		t.Errorf("Select after render = %d, %v; want 5, nil", n, err)
	}
}

func TestRenderSuperseded(t *testing.T) {
	var p *Panel
	f := func(gen, index int, v *benchview.View) (Visualization, error) {
		c := &callbackVis{fakeVis: fakeVis{gen: gen, index: index}}
		if index == 1 && gen == 1 {
			c.onDraw = p.Clear
		}
		return c, nil
	}
	p = New(NewContext(testDoc(t, "a")), f)

	handles, err := renderWithin(t, p, "a")
	if !errors.Is(err, ErrSuperseded) {
		t.Errorf("RenderDataset error = %v, want ErrSuperseded", err)
	}
	if len(handles) != 0 || len(p.Handles()) != 0 || p.Registered() != 0 {
		t.Errorf("superseded render published %d handles", len(p.Handles()))
	}

	if _, err := renderWithin(t, p, "a"); err != nil {
		t.Errorf("render after superseded one: %v", err)
	}
}

// valueVis has a value receiver and a slice field; two valueVis cannot
// be compared with ==.
type valueVis struct {
	rows []int
	got  *int
}

func (v valueVis) Draw(*benchview.View, benchview.Options) error { return nil }

func (v valueVis) SetSelection(selection.Selection) error {
	*v.got++
	return nil
}

func TestSelectUncomparableVisualizations(t *testing.T) {
	counts := make([]int, len(benchview.Specs))
	f := func(gen, index int, v *benchview.View) (Visualization, error) {
		return valueVis{rows: []int{index}, got: &counts[index]}, nil
	}
	p := New(NewContext(testDoc(t, "a")), f)
	if _, err := p.RenderDataset("a", 800); err != nil {
		t.Fatal(err)
	}
	n, err := p.Select(p.Generation(), 3, selection.Rows(1))
	if err != nil || n != 5 {
		t.Fatalf("Select = %d, %v; want 5, nil", n, err)
	}
	if diff := cmp.Diff([]int{1, 1, 1, 0, 1, 1}, counts); diff != "" {
		t.Errorf("selections per visualization differ (-want +got):\n%s", diff)
	}
}
