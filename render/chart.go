// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/selection"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// DefaultWidth is the chart width in pixels when the draw options do
// not give a height.
const DefaultWidth = 960

// dpi converts pixel sizes to page lengths, and is the resolution of
// PNG output.
const dpi = 96

var highlight = color.RGBA{R: 0xdc, G: 0x39, B: 0x12, A: 0xff}

// ErrNotDrawn is returned by Encode before the first Draw.
var ErrNotDrawn = errors.New("chart not drawn")

// A Chart draws bar and scatter views with gonum/plot. Selected rows
// are drawn in a highlight color; selected scatter points are labeled
// with their tooltip column.
type Chart struct {
	mu       sync.Mutex
	view     *benchview.View
	opts     benchview.Options
	selected []int
	plot     *plot.Plot
}

// Draw builds the chart of v.
func (c *Chart) Draw(v *benchview.View, opts benchview.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := build(v, opts, c.selected)
	if err != nil {
		return err
	}
	c.view, c.opts, c.plot = v, opts, p
	return nil
}

// SetSelection highlights the rows of sel. Column references are
// ignored: charts select whole rows.
func (c *Chart) SetSelection(sel selection.Selection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = sel.SelectedRows()
	if c.view == nil {
		return nil
	}
	p, err := build(c.view, c.opts, c.selected)
	if err != nil {
		return err
	}
	c.plot = p
	return nil
}

// Size returns the chart size in pixels.
func (c *Chart) Size() (width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return size(c.opts)
}

func size(opts benchview.Options) (width, height float64) {
	if opts.Height <= 0 {
		return DefaultWidth, DefaultWidth * 9 / 16
	}
	return opts.Height * 16 / 9, opts.Height
}

// Encode writes the chart to w as a png, svg or pdf image.
func (c *Chart) Encode(w io.Writer, format string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plot == nil {
		return ErrNotDrawn
	}
	width, height := size(c.opts)
	pw, ph := vg.Length(width)*vg.Inch/dpi, vg.Length(height)*vg.Inch/dpi

	var can vg.CanvasWriterTo
	switch format {
	case "png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(pw, ph),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		can = vgsvg.New(pw, ph)
	case "pdf":
		can = vgpdf.New(pw, ph)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	c.plot.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

func build(v *benchview.View, opts benchview.Options, selected []int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if opts.HAxis != nil {
		p.X.Label.Text = opts.HAxis.Title
	}
	if opts.VAxis != nil {
		p.Y.Label.Text = opts.VAxis.Title
	}

	var err error
	switch v.Kind {
	case benchview.KindBar:
		err = buildBars(p, v, opts, selected)
	case benchview.KindScatter:
		err = buildScatter(p, v, selected)
	default:
		err = fmt.Errorf("cannot chart a %s view", v.Kind)
	}
	if err != nil {
		return nil, err
	}

	// Apply minimums after the plotters have set the data range.
	if opts.HAxis != nil && opts.HAxis.MinValue != nil {
		p.X.Min = math.Min(p.X.Min, *opts.HAxis.MinValue)
	}
	if opts.VAxis != nil && opts.VAxis.MinValue != nil {
		p.Y.Min = math.Min(p.Y.Min, *opts.VAxis.MinValue)
	}
	return p, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// buildBars draws a horizontal bar chart: the first view column names
// the bars and every other plotted column is one series. Non-finite
// values are drawn as zero-length bars.
func buildBars(p *plot.Plot, v *benchview.View, opts benchview.Options, selected []int) error {
	plotted := v.Plotted()
	if len(plotted) < 2 {
		return fmt.Errorf("bar view %s needs a label and a value column", v.ID)
	}
	n := v.Len()
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprint(v.Value(i, plotted[0]))
	}
	p.NominalY(names...)
	if n == 0 {
		return nil
	}

	series := plotted[1:]
	barWidth := vg.Points(12)
	if len(series) > 1 {
		barWidth = vg.Points(24 / float64(len(series)))
	}
	isSelected := make(map[int]bool)
	for _, r := range selected {
		isSelected[r] = true
	}
	if opts.Legend != "none" {
		p.Legend.Top = true
	}

	for k, j := range series {
		vals := make(plotter.Values, n)
		hl := make(plotter.Values, n)
		for i := range vals {
			if x, ok := v.Value(i, j).(float64); ok && finite(x) {
				vals[i] = x
				if isSelected[i] {
					hl[i] = x
				}
			}
		}
		offset := barWidth * vg.Length(float64(k)-float64(len(series)-1)/2)

		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return err
		}
		bars.Horizontal = true
		bars.Offset = offset
		bars.Color = plotutil.Color(k)
		bars.LineStyle.Width = 0
		p.Add(bars)
		if opts.Legend != "none" {
			p.Legend.Add(v.Column(j).Label, bars)
		}

		if len(selected) > 0 {
			sel, err := plotter.NewBarChart(hl, barWidth)
			if err != nil {
				return err
			}
			sel.Horizontal = true
			sel.Offset = offset
			sel.Color = highlight
			sel.LineStyle.Width = 0
			p.Add(sel)
		}
	}
	return nil
}

// buildScatter plots the first two plotted columns as X and Y. Rows
// with a non-finite coordinate are left out.
func buildScatter(p *plot.Plot, v *benchview.View, selected []int) error {
	plotted := v.Plotted()
	if len(plotted) < 2 {
		return fmt.Errorf("scatter view %s needs two value columns", v.ID)
	}
	tip := -1
	for j, c := range v.Columns {
		if c.Role == benchview.RoleTooltip {
			tip = j
			break
		}
	}

	point := func(i int) (plotter.XY, bool) {
		x, _ := v.Value(i, plotted[0]).(float64)
		y, _ := v.Value(i, plotted[1]).(float64)
		return plotter.XY{X: x, Y: y}, finite(x) && finite(y)
	}

	var xys plotter.XYs
	for i := 0; i < v.Len(); i++ {
		if pt, ok := point(i); ok {
			xys = append(xys, pt)
		}
	}
	if len(xys) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	var sel plotter.XYLabels
	for _, i := range selected {
		if i < 0 || i >= v.Len() {
			continue
		}
		pt, ok := point(i)
		if !ok {
			continue
		}
		sel.XYs = append(sel.XYs, pt)
		label := ""
		if tip >= 0 {
			label = fmt.Sprint(v.Value(i, tip))
		}
		sel.Labels = append(sel.Labels, label)
	}
	if len(sel.XYs) == 0 {
		return nil
	}
	hs, err := plotter.NewScatter(sel.XYs)
	if err != nil {
		return err
	}
	hs.GlyphStyle.Color = highlight
	hs.GlyphStyle.Radius = vg.Points(5)
	hs.GlyphStyle.Shape = draw.CircleGlyph{}
	labels, err := plotter.NewLabels(sel)
	if err != nil {
		return err
	}
	p.Add(hs, labels)
	return nil
}
