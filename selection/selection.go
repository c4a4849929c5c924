// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection relays selections between the visualizations of one
// panel.
//
// Selections are positional: a Cell names a row and optionally a
// column of the view that produced it. Since every view of a panel
// shares the row order of one table, rows line up across views, while
// columns may not. The relay does no reconciliation.
package selection

import (
	"errors"
	"fmt"
	"sync"
)

// A Cell is one selected element. A nil Row selects a whole column, a
// nil Column a whole row.
type Cell struct {
	Row    *int `json:"row,omitempty"`
	Column *int `json:"column,omitempty"`
}

// Rows returns a selection of the given rows.
func Rows(rows ...int) Selection {
	s := make(Selection, len(rows))
	for i := range rows {
		s[i] = Cell{Row: &rows[i]}
	}
	return s
}

// A Selection is a set of selected cells. An empty Selection clears
// any selection.
type Selection []Cell

// SelectedRows returns the rows touched by s, in order of appearance
// and without duplicates.
func (s Selection) SelectedRows() []int {
	var rows []int
	seen := make(map[int]bool)
	for _, c := range s {
		if c.Row != nil && !seen[*c.Row] {
			seen[*c.Row] = true
			rows = append(rows, *c.Row)
		}
	}
	return rows
}

// A Target is anything that can display a selection.
type Target interface {
	SetSelection(Selection) error
}

// A Member identifies a registered target within its Group.
type Member int

// NoMember is a broadcast source that matches no target.
const NoMember Member = -1

// A Group is the set of targets of one panel. The zero Group is empty
// and ready to use.
//
// A Group may be used from several goroutines, but it relays one
// broadcast at a time: while a broadcast is running, any other
// broadcast on the same group is dropped, whether it was started from
// inside a SetSelection call or by another goroutine.
type Group struct {
	mu           sync.Mutex
	members      []member
	next         Member
	broadcasting bool
}

type member struct {
	id Member
	t  Target
}

// Register adds t to g and returns its identity. Members are told apart
// by identity only, so t need not be comparable.
func (g *Group) Register(t Target) Member {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next
	g.next++
	g.members = append(g.members, member{id, t})
	return id
}

// UnregisterAll empties g. Members registered later get new identities.
func (g *Group) UnregisterAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members = nil
}

// Len returns the number of registered targets.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// BroadcastSelection calls SetSelection(sel) on every member of g
// except from, and returns how many members were called.
//
// A broadcast started while another is in progress is dropped and
// returns 0. Errors from targets do not stop the broadcast; they are
// joined in the returned error.
func (g *Group) BroadcastSelection(from Member, sel Selection) (int, error) {
	g.mu.Lock()
	if g.broadcasting {
		g.mu.Unlock()
		return 0, nil
	}
	g.broadcasting = true
	members := append([]member(nil), g.members...)
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.broadcasting = false
		g.mu.Unlock()
	}()

	n := 0
	var errs []error
	for _, m := range members {
		if m.id == from {
			continue
		}
		n++
		if err := m.t.SetSelection(sel); err != nil {
			errs = append(errs, fmt.Errorf("target %d: %w", m.id, err))
		}
	}
	return n, errors.Join(errs...)
}
