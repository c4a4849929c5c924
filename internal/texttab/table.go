// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out text tables in aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so calls can be chained:
//
//	t.Row().Cell("codec").Cell("ratio", Right)
type Table struct {
	// Sep separates adjacent columns. If empty, a single space is
	// used.
	Sep string

	rows [][]textCell
}

type textCell struct {
	value string
	align Align
	rule  bool
}

// An Align is the alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == Right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row of t.
func (t *Table) Cell(value string, align ...Align) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value}
	if len(align) > 0 {
		c.align = align[0]
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Rule adds a row that underlines each column with ch.
func (t *Table) Rule(ch rune) *Table {
	t.rows = append(t.rows, []textCell{{value: string(ch), rule: true}})
	return t
}

func (t *Table) widths() []int {
	var ws []int
	for _, row := range t.rows {
		for i, c := range row {
			if c.rule {
				continue
			}
			if i >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}
	return ws
}

// Format lays out t and writes it to w. Trailing spaces are trimmed
// from every line.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = " "
	}
	ws := t.widths()
	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		if len(row) == 1 && row[0].rule {
			for i, cw := range ws {
				if i > 0 {
					line.WriteString(sep)
				}
				line.WriteString(strings.Repeat(row[0].value, cw))
			}
		} else {
			for i, c := range row {
				if i > 0 {
					line.WriteString(sep)
				}
				line.WriteString(c.align.pad(c.value, ws[i]))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
