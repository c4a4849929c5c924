// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchview

import (
	"math"

	"github.com/squashbench/benchview/benchtab"
)

// A DataTable is the JSON form accepted by the
// google.visualization.DataTable constructor.
type DataTable struct {
	Cols []DataColumn `json:"cols"`
	Rows []DataRow    `json:"rows"`
}

// DataColumn is a column in a google.visualization.DataTable.
type DataColumn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Role  string `json:"role,omitempty"`
}

// A DataRow is one row of a DataTable, one Cell per column.
type DataRow struct {
	C []Cell `json:"c"`
}

// A Cell holds a value and an optional formatted value. Non-finite
// numbers have no JSON encoding, so they are sent as a null value with
// the JavaScript spelling in F.
type Cell struct {
	V interface{} `json:"v"`
	F string      `json:"f,omitempty"`
}

// DataTable converts v to a DataTable.
func (v *View) DataTable() *DataTable {
	dt := &DataTable{
		Cols: make([]DataColumn, len(v.Columns)),
		Rows: make([]DataRow, v.Len()),
	}
	for j, ref := range v.Columns {
		c := benchtab.Schema[ref.Source]
		dc := DataColumn{ID: c.ID, Label: c.Label, Type: c.Type, Role: string(ref.Role)}
		if ref.Role != RoleValue {
			// Column IDs must be unique within a table.
			dc.ID += "-" + string(ref.Role)
		}
		dt.Cols[j] = dc
	}
	for i := range dt.Rows {
		row := make([]Cell, len(v.Columns))
		for j := range v.Columns {
			row[j] = cell(v.Value(i, j))
		}
		dt.Rows[i] = DataRow{C: row}
	}
	return dt
}

func cell(x interface{}) Cell {
	f, ok := x.(float64)
	if !ok {
		return Cell{V: x}
	}
	switch {
	case math.IsNaN(f):
		return Cell{F: "NaN"}
	case math.IsInf(f, 1):
		return Cell{F: "Infinity"}
	case math.IsInf(f, -1):
		return Cell{F: "-Infinity"}
	}
	return Cell{V: f}
}
