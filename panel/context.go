// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"sync/atomic"

	"github.com/squashbench/benchview/benchdata"
	"github.com/squashbench/benchview/benchtab"
)

// A Context holds the projected tables of one loaded document. It is
// created once per successful load, shared by every Panel, and not
// modified afterwards.
type Context struct {
	names  []string
	tables map[string]*benchtab.Table
	closed atomic.Bool
}

// NewContext projects every dataset of doc.
func NewContext(doc *benchdata.Document) *Context {
	c := &Context{tables: make(map[string]*benchtab.Table)}
	for _, ds := range doc.Datasets {
		c.names = append(c.names, ds.Name)
		c.tables[ds.Name] = benchtab.Project(ds)
	}
	return c
}

// Datasets returns the dataset names in document order.
func (c *Context) Datasets() []string {
	if c.closed.Load() {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Table returns the table of dataset name.
func (c *Context) Table(name string) (*benchtab.Table, bool) {
	if c.closed.Load() {
		return nil, false
	}
	t, ok := c.tables[name]
	return t, ok
}

// AutoSelect returns the name of the only dataset, if there is exactly
// one. Such a dataset is rendered without waiting for navigation.
func (c *Context) AutoSelect() (string, bool) {
	if c.closed.Load() || len(c.names) != 1 {
		return "", false
	}
	return c.names[0], true
}

// Warnings returns the projection warnings of all tables, in dataset
// order.
func (c *Context) Warnings() []benchtab.ProjectionWarning {
	var ws []benchtab.ProjectionWarning
	for _, name := range c.names {
		ws = append(ws, c.tables[name].Warnings()...)
	}
	return ws
}

// Close ends the lifetime of c. Afterwards c has no datasets, and
// panels rendering from it fail with ErrUnknownDataset.
func (c *Context) Close() {
	c.closed.Store(true)
}
