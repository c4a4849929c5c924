// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws benchmark views locally: charts as gonum/plot
// images and tables as aligned text.
package render

import (
	"fmt"

	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/panel"
)

// New is a panel.Factory that returns a TextTable for table views and
// a Chart for bar and scatter views.
func New(generation, index int, v *benchview.View) (panel.Visualization, error) {
	switch v.Kind {
	case benchview.KindTable:
		return new(TextTable), nil
	case benchview.KindBar, benchview.KindScatter:
		return new(Chart), nil
	}
	return nil, fmt.Errorf("no local visualization for %s views", v.Kind)
}

var _ panel.Factory = New
