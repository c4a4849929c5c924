// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchview derives the fixed set of views shown for a
// benchmark table: the full table, two bar charts and three scatter
// charts.
//
// A View is a column projection of a benchtab.Table. Its columns refer
// to Schema indexes of the table; a column with RoleTooltip carries
// hover text and is not plotted.
package benchview

import (
	"github.com/squashbench/benchview/benchtab"
)

// A Kind names the visualization type a view is drawn with.
type Kind string

const (
	KindTable   Kind = "table"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
)

// A Role says how a view column is used. The zero Role is a plotted
// value.
type Role string

const (
	RoleValue   Role = ""
	RoleTooltip Role = "tooltip"
)

// A ColumnRef selects column Source of benchtab.Schema.
type ColumnRef struct {
	Source int
	Role   Role
}

// An Axis configures one chart axis.
type Axis struct {
	Title    string   `json:"title,omitempty"`
	MinValue *float64 `json:"minValue,omitempty"`
}

// Options are the chart options passed to the visualization's draw
// call, in google.visualization form.
type Options struct {
	Title  string  `json:"title,omitempty"`
	Legend string  `json:"legend,omitempty"`
	HAxis  *Axis   `json:"hAxis,omitempty"`
	VAxis  *Axis   `json:"vAxis,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// A Spec statically defines one view.
type Spec struct {
	ID      string
	Kind    Kind
	Columns []ColumnRef
	Options Options
}

var zero = 0.0

func axis(title string) *Axis { return &Axis{Title: title} }

func axisFrom0(title string) *Axis { return &Axis{Title: title, MinValue: &zero} }

func cols(src ...int) []ColumnRef {
	refs := make([]ColumnRef, len(src))
	for i, s := range src {
		refs[i] = ColumnRef{Source: s}
	}
	return refs
}

// codecTip is the codec column used as hover text.
var codecTip = ColumnRef{Source: 1, Role: RoleTooltip}

// Specs are the views of every dataset, in display order.
var Specs = []Spec{
	{
		ID:      "table",
		Kind:    KindTable,
		Columns: cols(0, 1, 2, 3, 4),
	},
	{
		ID:      "ratio",
		Kind:    KindBar,
		Columns: cols(1, 2),
		Options: Options{
			Title:  "Compression Ratio",
			Legend: "none",
			VAxis:  axis("Codecs"),
		},
	},
	{
		ID:      "speed",
		Kind:    KindBar,
		Columns: cols(1, 3, 4),
		Options: Options{
			Title: "Speed",
			VAxis: axis("Codecs"),
			HAxis: axis("Speed (KB/s)"),
		},
	},
	{
		ID:      "ratio-vs-compress",
		Kind:    KindScatter,
		Columns: append(cols(3, 2), codecTip),
		Options: Options{
			Title:  "Compression Ratio vs. Compression Speed",
			Legend: "none",
			VAxis:  axisFrom0("Ratio"),
			HAxis:  axisFrom0("Speed (KB/s)"),
		},
	},
	{
		ID:      "ratio-vs-decompress",
		Kind:    KindScatter,
		Columns: append(cols(4, 2), codecTip),
		Options: Options{
			Title:  "Compression Ratio vs. Decompression Speed",
			Legend: "none",
			VAxis:  axisFrom0("Ratio"),
			HAxis:  axisFrom0("Decompression Speed (KB/s)"),
		},
	},
	{
		ID:      "speed-compare",
		Kind:    KindScatter,
		Columns: append(cols(3, 4), codecTip),
		Options: Options{
			Title:  "Compression Speed vs. Decompression Speed",
			Legend: "none",
			HAxis:  axisFrom0("Compression Speed (KB/s)"),
			VAxis:  axisFrom0("Decompression Speed (KB/s)"),
		},
	},
}

// A View is one Spec applied to a Table. Views share their table and
// never modify it.
type View struct {
	*Spec
	Table *benchtab.Table
}

// SelectViews returns one view per Spec over t, in Specs order.
func SelectViews(t *benchtab.Table) []*View {
	views := make([]*View, len(Specs))
	for i := range Specs {
		views[i] = &View{Spec: &Specs[i], Table: t}
	}
	return views
}

// SelectView returns the view of t with the given ID.
func SelectView(t *benchtab.Table, id string) (*View, bool) {
	for i := range Specs {
		if Specs[i].ID == id {
			return &View{Spec: &Specs[i], Table: t}, true
		}
	}
	return nil, false
}

// Len returns the number of rows of v.
func (v *View) Len() int {
	return v.Table.Len()
}

// Column returns the schema column behind column j of v.
func (v *View) Column(j int) benchtab.Column {
	return benchtab.Schema[v.Columns[j].Source]
}

// Value returns the cell at row i, column j of v.
func (v *View) Value(i, j int) interface{} {
	return v.Table.Cell(i, v.Columns[j].Source)
}

// Plotted returns the indexes of the columns of v that are not
// tooltips.
func (v *View) Plotted() []int {
	var js []int
	for j, c := range v.Columns {
		if c.Role == RoleValue {
			js = append(js, j)
		}
	}
	return js
}

// Options returns the draw options of v for a panel width in pixels.
// Charts are 9/16 as high as they are wide; tables size themselves.
func (v *View) Options(width int) Options {
	o := v.Spec.Options
	if v.Kind != KindTable {
		o.Height = float64(width) * 9 / 16
	}
	return o
}
