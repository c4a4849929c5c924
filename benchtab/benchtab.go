// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab projects benchmark datasets into fixed-column
// tables of compression ratio and speed.
//
// Each record of a dataset becomes one row:
//
//	plugin  codec  ratio  compress-speed  decompress-speed
//
// where ratio is the uncompressed size over the compressed size and the
// speeds are in KB/s of uncompressed data per CPU second. All numbers
// are rounded with Round2. Divisions by zero are not special-cased: the
// resulting infinities and NaNs are kept in the table and reported as
// ProjectionWarnings.
package benchtab

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/squashbench/benchview/benchdata"
)

// Column IDs of a Table, in column order.
const (
	ColPlugin     = "plugin"
	ColCodec      = "codec"
	ColRatio      = "ratio"
	ColCompress   = "compress-speed"
	ColDecompress = "decompress-speed"
)

// Column types, named as in google.visualization.DataTable.
const (
	TypeString = "string"
	TypeNumber = "number"
)

// A Column describes one column of a Table.
type Column struct {
	ID    string
	Label string
	Type  string
}

// Schema is the column schema shared by every Table.
var Schema = []Column{
	{ColPlugin, "Plugin", TypeString},
	{ColCodec, "Codec", TypeString},
	{ColRatio, "Compression Ratio", TypeNumber},
	{ColCompress, "Compression Speed (KB/s)", TypeNumber},
	{ColDecompress, "Decompress Speed (KB/s)", TypeNumber},
}

// A Row is one projected record.
type Row struct {
	Plugin          string
	Codec           string
	Ratio           float64
	CompressSpeed   float64
	DecompressSpeed float64
}

// Label returns the row's "plugin:codec" name.
func (r Row) Label() string {
	return r.Plugin + ":" + r.Codec
}

// A ProjectionWarning records a non-finite cell produced by a division
// by zero. It is informational; the value stays in the table.
type ProjectionWarning struct {
	Dataset string  `json:"dataset"`
	Row     int     `json:"row"`
	Column  string  `json:"column"`
	Value   float64 `json:"-"`
}

func (w ProjectionWarning) String() string {
	return fmt.Sprintf("dataset %q row %d: %s is %v", w.Dataset, w.Row, w.Column, w.Value)
}

// A Table is the projection of one dataset. It is immutable.
type Table struct {
	// Dataset is the name of the projected dataset.
	Dataset string

	t        *table.Table
	warnings []ProjectionWarning
}

// Project converts every record of ds into a Row, in record order.
func Project(ds *benchdata.Dataset) *Table {
	n := len(ds.Records)
	var (
		plugins    = make([]string, n)
		codecs     = make([]string, n)
		ratio      = make([]float64, n)
		compress   = make([]float64, n)
		decompress = make([]float64, n)
	)
	u := ds.UncompressedSize
	for i, r := range ds.Records {
		plugins[i] = r.Plugin
		codecs[i] = r.Codec
		ratio[i] = Round2(u / r.Size)
		compress[i] = Round2(u / r.CompressCPU / 1024)
		decompress[i] = Round2(u / r.DecompressCPU / 1024)
	}

	t := &Table{Dataset: ds.Name}
	t.t = new(table.Builder).
		Add(ColPlugin, plugins).
		Add(ColCodec, codecs).
		Add(ColRatio, ratio).
		Add(ColCompress, compress).
		Add(ColDecompress, decompress).
		Done()

	for i := 0; i < n; i++ {
		for _, col := range []string{ColRatio, ColCompress, ColDecompress} {
			v := t.Floats(col)[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.warnings = append(t.warnings, ProjectionWarning{ds.Name, i, col, v})
			}
		}
	}
	return t
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return t.t.Len()
}

// Strings returns the values of string column id. The result must not
// be modified.
func (t *Table) Strings(id string) []string {
	return t.t.MustColumn(id).([]string)
}

// Floats returns the values of number column id. The result must not
// be modified.
func (t *Table) Floats(id string) []float64 {
	return t.t.MustColumn(id).([]float64)
}

// Cell returns the value at row i of the column with index col in
// Schema: a string or a float64.
func (t *Table) Cell(i, col int) interface{} {
	c := Schema[col]
	if c.Type == TypeString {
		return t.Strings(c.ID)[i]
	}
	return t.Floats(c.ID)[i]
}

// Row returns row i of t.
func (t *Table) Row(i int) Row {
	return Row{
		Plugin:          t.Strings(ColPlugin)[i],
		Codec:           t.Strings(ColCodec)[i],
		Ratio:           t.Floats(ColRatio)[i],
		CompressSpeed:   t.Floats(ColCompress)[i],
		DecompressSpeed: t.Floats(ColDecompress)[i],
	}
}

// Rows returns all rows of t.
func (t *Table) Rows() []Row {
	rows := make([]Row, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Warnings returns the non-finite cells of t in row-major order.
func (t *Table) Warnings() []ProjectionWarning {
	return append([]ProjectionWarning(nil), t.warnings...)
}
