// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdata loads compression benchmark results.
//
// A results document maps dataset names to the measurements taken
// while compressing and decompressing that dataset with every codec of
// every plugin:
//
//	{
//	  "enwik8": {
//	    "uncompressed-size": 100000000,
//	    "data": [
//	      {"plugin": "zlib", "codec": "gzip", "size": 36445475,
//	       "compress_cpu": 5.1, "compress_wall": 5.2,
//	       "decompress_cpu": 0.4, "decompress_wall": 0.4},
//	      ...
//	    ]
//	  },
//	  ...
//	}
//
// Documents are read from local files, HTTP(S) URLs, Google Cloud
// Storage, Amazon S3 or a SQL database; see Loader.
package benchdata

import (
	"fmt"
)

// A Record is one measurement: the result of compressing and then
// decompressing a dataset with a single codec.
type Record struct {
	Plugin string `json:"plugin"`
	Codec  string `json:"codec"`
	// Size is the compressed size in bytes.
	Size float64 `json:"size"`
	// CPU and wall clock times are in seconds.
	CompressCPU    float64 `json:"compress_cpu"`
	CompressWall   float64 `json:"compress_wall,omitempty"`
	DecompressCPU  float64 `json:"decompress_cpu"`
	DecompressWall float64 `json:"decompress_wall,omitempty"`
}

// A Dataset is the set of records measured against one input.
type Dataset struct {
	Name string
	// UncompressedSize is the size of the input in bytes. Ratios and
	// speeds are computed relative to it.
	UncompressedSize float64
	Records          []Record
}

// A Document is an ordered collection of datasets with distinct names.
// The order is the order in which the datasets appear in the source.
type Document struct {
	Datasets []*Dataset

	index map[string]int
}

// NewDocument returns a Document holding datasets in the given order.
func NewDocument(datasets ...*Dataset) (*Document, error) {
	doc := new(Document)
	for _, ds := range datasets {
		if err := doc.add(ds); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) add(ds *Dataset) error {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if _, ok := d.index[ds.Name]; ok {
		return fmt.Errorf("duplicate dataset %q", ds.Name)
	}
	d.index[ds.Name] = len(d.Datasets)
	d.Datasets = append(d.Datasets, ds)
	return nil
}

// Names returns the dataset names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Datasets))
	for i, ds := range d.Datasets {
		names[i] = ds.Name
	}
	return names
}

// Dataset returns the named dataset, or nil if there is none.
func (d *Document) Dataset(name string) *Dataset {
	i, ok := d.index[name]
	if !ok {
		return nil
	}
	return d.Datasets[i]
}

// grouper assembles a Document from flat rows that carry their dataset
// name, as produced by the CSV and SQL sources.
type grouper struct {
	doc Document
}

func (g *grouper) add(name string, uncompressed float64, r Record) error {
	ds := g.doc.Dataset(name)
	if ds == nil {
		ds = &Dataset{Name: name, UncompressedSize: uncompressed}
		if err := g.doc.add(ds); err != nil {
			return err
		}
	} else if ds.UncompressedSize != uncompressed {
		return fmt.Errorf("dataset %q: conflicting uncompressed sizes %v and %v", name, ds.UncompressedSize, uncompressed)
	}
	ds.Records = append(ds.Records, r)
	return nil
}
