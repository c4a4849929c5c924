// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the header line written by the benchmark program in CSV
// mode.
var csvHeader = []string{
	"Dataset",
	"Plugin",
	"Codec",
	"Uncompressed Size",
	"Compressed Size",
	"Compression CPU Time",
	"Compression Wall Clock Time",
	"Decompression CPU Time",
	"Decompression Wall Clock Time",
}

// ParseCSV reads a results document in CSV form from r. Each line
// holds one record and the name and size of its dataset; datasets are
// ordered by first appearance.
func ParseCSV(r io.Reader) (*Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV document")
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), csvHeader[i]) {
			return nil, fmt.Errorf("CSV column %d is %q, want %q", i+1, h, csvHeader[i])
		}
	}

	var g grouper
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		var nums [6]float64
		for i := range nums {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[3+i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, csvHeader[3+i], err)
			}
			nums[i] = v
		}
		r := Record{
			Plugin:         rec[1],
			Codec:          rec[2],
			Size:           nums[1],
			CompressCPU:    nums[2],
			CompressWall:   nums[3],
			DecompressCPU:  nums[4],
			DecompressWall: nums[5],
		}
		if err := g.add(rec[0], nums[0], r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return &g.doc, nil
}
