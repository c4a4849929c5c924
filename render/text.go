// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"io"
	"math"
	"strconv"
	"sync"

	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/internal/texttab"
	"github.com/squashbench/benchview/selection"
)

// A TextTable prints a view as an aligned text table. Selected rows are
// marked with "*".
type TextTable struct {
	mu       sync.Mutex
	view     *benchview.View
	selected map[int]bool
}

// Draw binds t to v. Options are ignored.
func (t *TextTable) Draw(v *benchview.View, _ benchview.Options) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.view = v
	return nil
}

// SetSelection marks the rows of sel.
func (t *TextTable) SetSelection(sel selection.Selection) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = make(map[int]bool)
	for _, r := range sel.SelectedRows() {
		t.selected[r] = true
	}
	return nil
}

// Format writes the table to w.
func (t *TextTable) Format(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.view == nil {
		return ErrNotDrawn
	}
	v := t.view

	var tab texttab.Table
	tab.Sep = "  "
	tab.Row().Cell("")
	for j := range v.Columns {
		tab.Cell(v.Column(j).Label)
	}
	tab.Rule('-')
	for i := 0; i < v.Len(); i++ {
		mark := ""
		if t.selected[i] {
			mark = "*"
		}
		tab.Row().Cell(mark)
		for j := range v.Columns {
			switch x := v.Value(i, j).(type) {
			case float64:
				tab.Cell(formatNumber(x), texttab.Right)
			case string:
				tab.Cell(x)
			}
		}
	}
	return tab.Format(w)
}

func formatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
