// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Summary condenses a Table into a few headline numbers. Only
// finite cells take part; a table with no finite ratios has
// HasRatio == false.
type Summary struct {
	Rows int `json:"rows"`

	HasRatio     bool    `json:"hasRatio"`
	GeoMeanRatio float64 `json:"geomeanRatio,omitempty"`
	// MeanCompress and MeanDecompress are arithmetic means in KB/s.
	MeanCompress   float64 `json:"meanCompress,omitempty"`
	MeanDecompress float64 `json:"meanDecompress,omitempty"`

	// Best* name the winning row as "plugin:codec", or "" if no row
	// has a finite value.
	BestRatio         string `json:"bestRatio,omitempty"`
	FastestCompress   string `json:"fastestCompress,omitempty"`
	FastestDecompress string `json:"fastestDecompress,omitempty"`
}

// Summary computes the summary of t.
func (t *Table) Summary() Summary {
	s := Summary{Rows: t.Len()}
	labels := make([]string, t.Len())
	for i := range labels {
		labels[i] = t.Row(i).Label()
	}

	if ratios := finite(t.Floats(ColRatio)); len(ratios) > 0 {
		// GeoMean is NaN if any ratio is <= 0.
		if gm := stats.GeoMean(ratios); !math.IsNaN(gm) {
			s.HasRatio = true
			s.GeoMeanRatio = gm
		}
	}
	if xs := finite(t.Floats(ColCompress)); len(xs) > 0 {
		s.MeanCompress = stats.Mean(xs)
	}
	if xs := finite(t.Floats(ColDecompress)); len(xs) > 0 {
		s.MeanDecompress = stats.Mean(xs)
	}

	s.BestRatio = best(labels, t.Floats(ColRatio))
	s.FastestCompress = best(labels, t.Floats(ColCompress))
	s.FastestDecompress = best(labels, t.Floats(ColDecompress))
	return s
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finite(xs []float64) []float64 {
	var out []float64
	for _, x := range xs {
		if isFinite(x) {
			out = append(out, x)
		}
	}
	return out
}

// best returns the label of the largest finite value, preferring the
// earliest row on ties.
func best(labels []string, xs []float64) string {
	bi := -1
	for i, x := range xs {
		if isFinite(x) && (bi < 0 || x > xs[bi]) {
			bi = i
		}
	}
	if bi < 0 {
		return ""
	}
	return labels[bi]
}
