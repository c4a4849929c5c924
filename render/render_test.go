// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/squashbench/benchview/benchdata"
	"github.com/squashbench/benchview/benchtab"
	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/panel"
	"github.com/squashbench/benchview/selection"
)

func testDataset() *benchdata.Dataset {
	return &benchdata.Dataset{
		Name:             "t",
		UncompressedSize: 1000,
		Records: []benchdata.Record{
			{Plugin: "zlib", Codec: "gzip", Size: 500, CompressCPU: 100, DecompressCPU: 50},
			{Plugin: "copy", Codec: "copy", Size: 0, CompressCPU: 1, DecompressCPU: 1},
		},
	}
}

func TestTextTable(t *testing.T) {
	v := benchview.SelectViews(benchtab.Project(testDataset()))[0]
	var tt TextTable
	if err := tt.Format(new(bytes.Buffer)); !errors.Is(err, ErrNotDrawn) {
		t.Errorf("Format before Draw = %v, want ErrNotDrawn", err)
	}
	if err := tt.Draw(v, v.Options(800)); err != nil {
		t.Fatal(err)
	}
	if err := tt.SetSelection(selection.Rows(1)); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tt.Format(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	for i, want := range [][]string{
		{"Plugin", "Codec", "Compression", "Ratio", "Compression", "Speed", "(KB/s)", "Decompress", "Speed", "(KB/s)"},
		nil,
		{"zlib", "gzip", "2", "0.01", "0.02"},
		{"*", "copy", "copy", "+Inf", "0.98", "0.98"},
	} {
		if want == nil {
			continue
		}
		if diff := cmp.Diff(want, strings.Fields(lines[i])); diff != "" {
			t.Errorf("line %d differs (-want +got):\n%s", i, diff)
		}
	}
	if !strings.HasPrefix(lines[1], "-  ------  -----") {
		t.Errorf("rule = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], " ") || !strings.HasSuffix(lines[2], " 0.02") {
		t.Errorf("row 0 = %q, want unmarked and right-aligned numbers", lines[2])
	}
}

func TestChartEncode(t *testing.T) {
	magic := map[string]string{"png": "\x89PNG", "svg": "<?xml", "pdf": "%PDF"}
	for _, v := range benchview.SelectViews(benchtab.Project(testDataset()))[1:] {
		t.Run(v.ID, func(t *testing.T) {
			var c Chart
			if err := c.Encode(new(bytes.Buffer), "png"); !errors.Is(err, ErrNotDrawn) {
				t.Errorf("Encode before Draw = %v, want ErrNotDrawn", err)
			}
			if err := c.Draw(v, v.Options(640)); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			if w, h := c.Size(); w != 640 || h != 360 {
				t.Errorf("Size() = %v, %v; want 640, 360", w, h)
			}
			if err := c.SetSelection(selection.Rows(0, 1, 99)); err != nil {
				t.Fatalf("SetSelection: %v", err)
			}
			for format, prefix := range magic {
				var buf bytes.Buffer
				if err := c.Encode(&buf, format); err != nil {
					t.Errorf("Encode(%s): %v", format, err)
					continue
				}
				if !bytes.HasPrefix(buf.Bytes(), []byte(prefix)) {
					t.Errorf("Encode(%s) output starts with %q", format, buf.Bytes()[:min(8, buf.Len())])
				}
			}
			if err := c.Encode(new(bytes.Buffer), "gif"); err == nil {
				t.Error("Encode(gif) succeeded")
			}
		})
	}
}

func TestChartEmpty(t *testing.T) {
	tab := benchtab.Project(&benchdata.Dataset{Name: "empty", UncompressedSize: 1})
	for _, v := range benchview.SelectViews(tab)[1:] {
		var c Chart
		if err := c.Draw(v, v.Options(320)); err != nil {
			t.Errorf("Draw(%s) of empty table: %v", v.ID, err)
		}
	}
}

func TestChartRejectsTable(t *testing.T) {
	v := benchview.SelectViews(benchtab.Project(testDataset()))[0]
	var c Chart
	if err := c.Draw(v, v.Options(320)); err == nil {
		t.Error("Chart drew a table view")
	}
}

func TestPanel(t *testing.T) {
	doc, err := benchdata.NewDocument(testDataset())
	if err != nil {
		t.Fatal(err)
	}
	p := panel.New(panel.NewContext(doc), New)
	handles, err := p.RenderDataset("t", 480)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range handles {
		if h.Err != nil {
			t.Errorf("%s: %v", h.View.ID, h.Err)
		}
	}
	if _, ok := handles[0].Vis.(*TextTable); !ok {
		t.Errorf("table view rendered by %T", handles[0].Vis)
	}
	if n, err := p.Select(p.Generation(), 0, selection.Rows(0)); n != 5 || err != nil {
		t.Errorf("Select = %d, %v; want 5, nil", n, err)
	}
}
