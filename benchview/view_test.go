// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchview

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/squashbench/benchview/benchdata"
	"github.com/squashbench/benchview/benchtab"
)

func testTable() *benchtab.Table {
	return benchtab.Project(&benchdata.Dataset{
		Name:             "t",
		UncompressedSize: 1000,
		Records: []benchdata.Record{
			{Plugin: "zlib", Codec: "gzip", Size: 500, CompressCPU: 100, DecompressCPU: 50},
			{Plugin: "copy", Codec: "copy", Size: 0, CompressCPU: 1, DecompressCPU: 1},
		},
	})
}

func TestSelectViews(t *testing.T) {
	views := SelectViews(testTable())
	type shape struct {
		ID      string
		Kind    Kind
		Columns []ColumnRef
	}
	var got []shape
	for _, v := range views {
		got = append(got, shape{v.ID, v.Kind, v.Columns})
	}
	tip := ColumnRef{Source: 1, Role: RoleTooltip}
	want := []shape{
		{"table", KindTable, []ColumnRef{{Source: 0}, {Source: 1}, {Source: 2}, {Source: 3}, {Source: 4}}},
		{"ratio", KindBar, []ColumnRef{{Source: 1}, {Source: 2}}},
		{"speed", KindBar, []ColumnRef{{Source: 1}, {Source: 3}, {Source: 4}}},
		{"ratio-vs-compress", KindScatter, []ColumnRef{{Source: 3}, {Source: 2}, tip}},
		{"ratio-vs-decompress", KindScatter, []ColumnRef{{Source: 4}, {Source: 2}, tip}},
		{"speed-compare", KindScatter, []ColumnRef{{Source: 3}, {Source: 4}, tip}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("views differ (-want +got):\n%s", diff)
	}

	for _, v := range views {
		if v.Table != views[0].Table {
			t.Errorf("view %s has a different table", v.ID)
		}
	}
	if got := views[3].Plotted(); !cmp.Equal(got, []int{0, 1}) {
		t.Errorf("Plotted() = %v, want [0 1]", got)
	}
	if v, ok := SelectView(views[0].Table, "speed"); !ok || v.Spec != &Specs[2] {
		t.Errorf("SelectView(speed) = %v, %v", v, ok)
	}
	if _, ok := SelectView(views[0].Table, "nope"); ok {
		t.Error("SelectView(nope) succeeded")
	}
}

func TestOptions(t *testing.T) {
	views := SelectViews(testTable())
	if h := views[0].Options(1600).Height; h != 0 {
		t.Errorf("table height = %v, want 0", h)
	}
	for _, v := range views[1:] {
		if h := v.Options(1600).Height; h != 900 {
			t.Errorf("%s height = %v, want 900", v.ID, h)
		}
	}

	data, err := json.Marshal(views[3].Options(800))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"Compression Ratio vs. Compression Speed","legend":"none","hAxis":{"title":"Speed (KB/s)","minValue":0},"vAxis":{"title":"Ratio","minValue":0},"height":450}`
	if string(data) != want {
		t.Errorf("options = %s, want %s", data, want)
	}

	data, err = json.Marshal(views[1].Options(100))
	if err != nil {
		t.Fatal(err)
	}
	want = `{"title":"Compression Ratio","legend":"none","vAxis":{"title":"Codecs"},"height":56.25}`
	if string(data) != want {
		t.Errorf("options = %s, want %s", data, want)
	}
}

func TestDataTable(t *testing.T) {
	v := SelectViews(testTable())[3]
	data, err := json.Marshal(v.DataTable())
	if err != nil {
		t.Fatalf("marshal DataTable with Inf cell: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("invalid JSON: %s", data)
	}
	want := `{"cols":[` +
		`{"id":"compress-speed","label":"Compression Speed (KB/s)","type":"number"},` +
		`{"id":"ratio","label":"Compression Ratio","type":"number"},` +
		`{"id":"codec-tooltip","label":"Codec","type":"string","role":"tooltip"}],` +
		`"rows":[` +
		`{"c":[{"v":0.01},{"v":2},{"v":"gzip"}]},` +
		`{"c":[{"v":0.98},{"v":null,"f":"Infinity"},{"v":"copy"}]}]}`
	if string(data) != want {
		t.Errorf("DataTable =\n%s\nwant\n%s", data, want)
	}
}
