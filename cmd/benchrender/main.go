// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchrender draws compression benchmark results without a browser.
//
// Usage:
//
//	benchrender [-o dir] [-format png|svg|pdf] [-width pixels]
//	            [-dataset name] [-select rows] source
//
// For each dataset of the results at source (or only the -dataset one),
// benchrender prints the results table to standard output and writes
// each chart to dir as <dataset>-<view>.<format>. With -select, the
// given rows of the table are selected and the selection is relayed to
// every chart before it is written.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/squashbench/benchview/benchtab"
	"github.com/squashbench/benchview/internal/config"
	"github.com/squashbench/benchview/internal/texttab"
	"github.com/squashbench/benchview/panel"
	"github.com/squashbench/benchview/render"
	"github.com/squashbench/benchview/selection"
)

var (
	configFile = flag.String("config", "", "read settings from `file`")
	outDir     = flag.String("o", ".", "write charts to `dir`")
	format     = flag.String("format", "png", "chart `format`: png, svg or pdf")
	width      = flag.Int("width", render.DefaultWidth, "panel width in `pixels`")
	dataset    = flag.String("dataset", "", "render only dataset `name`")
	rows       = flag.String("select", "", "select comma-separated table `rows`")
	summary    = flag.Bool("summary", false, "print a summary of each dataset")
)

var logger = logrus.StandardLogger()

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of benchrender:
	benchrender [flags] source
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchrender: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 || *width <= 0 {
		flag.Usage()
	}
	sel, err := parseRows(*rows)
	if err != nil {
		log.Fatal(err)
	}

	// Flags of this command are not config keys.
	cfg, err := config.Load(*configFile, nil)
	if err != nil {
		log.Fatal(err)
	}
	logger, err = config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	doc, err := cfg.Loader().Load(ctx, flag.Arg(0))
	if err != nil {
		logger.Fatal(err)
	}
	data := panel.NewContext(doc)
	defer data.Close()
	for _, w := range data.Warnings() {
		logger.WithFields(logrus.Fields{"dataset": w.Dataset, "row": w.Row, "column": w.Column}).Warn("non-finite value")
	}

	names := data.Datasets()
	if *dataset != "" {
		names = []string{*dataset}
	}
	if err := os.MkdirAll(*outDir, 0777); err != nil {
		logger.Fatal(err)
	}

	p := panel.New(data, render.New)
	failed := false
	for i, name := range names {
		if i > 0 {
			fmt.Println()
		}
		if err := renderDataset(p, data, name, sel); err != nil {
			logger.WithField("dataset", name).Error(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func renderDataset(p *panel.Panel, data *panel.Context, name string, sel selection.Selection) error {
	handles, err := p.RenderDataset(name, *width)
	if err != nil {
		return err
	}
	if len(sel) > 0 {
		// The table is view 0; the panel relays to the charts.
		if _, err := p.Select(p.Generation(), 0, sel); err != nil {
			return err
		}
		if len(handles) > 0 && handles[0].Err == nil {
			handles[0].Vis.SetSelection(sel)
		}
	}

	fmt.Printf("%s Results\n\n", name)
	for _, h := range handles {
		if h.Err != nil {
			logger.Error(h.Err)
			continue
		}
		switch vis := h.Vis.(type) {
		case *render.TextTable:
			if err := vis.Format(os.Stdout); err != nil {
				return err
			}
		case *render.Chart:
			file := filepath.Join(*outDir, fileName(name)+"-"+h.View.ID+"."+*format)
			if err := writeChart(vis, file); err != nil {
				return err
			}
		}
	}
	if *summary {
		t, _ := data.Table(name)
		printSummary(t.Summary())
	}
	return nil
}

func writeChart(c *render.Chart, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := c.Encode(f, *format); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", file, err)
	}
	return f.Close()
}

func printSummary(s benchtab.Summary) {
	var tab texttab.Table
	tab.Sep = "  "
	num := func(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }
	tab.Row().Cell("codecs").Cell(strconv.Itoa(s.Rows), texttab.Right)
	if s.HasRatio {
		tab.Row().Cell("geomean ratio").Cell(num(s.GeoMeanRatio), texttab.Right)
	}
	tab.Row().Cell("mean compress KB/s").Cell(num(s.MeanCompress), texttab.Right)
	tab.Row().Cell("mean decompress KB/s").Cell(num(s.MeanDecompress), texttab.Right)
	tab.Row().Cell("best ratio").Cell(s.BestRatio)
	tab.Row().Cell("fastest compress").Cell(s.FastestCompress)
	tab.Row().Cell("fastest decompress").Cell(s.FastestDecompress)
	fmt.Println()
	tab.Format(os.Stdout)
}

// fileName makes a dataset name usable as a file name.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator || r < ' ' {
			return '_'
		}
		return r
	}, name)
}

func parseRows(s string) (selection.Selection, error) {
	if s == "" {
		return nil, nil
	}
	var rows []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad row %q in -select", f)
		}
		rows = append(rows, n)
	}
	return selection.Rows(rows...), nil
}
