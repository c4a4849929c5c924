// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
)

// statementPrefix matches the "var benchmark_data =" that the benchmark
// program writes in front of the document so that it can be included
// directly by a <script> tag.
var statementPrefix = regexp.MustCompile(`^\s*(?:(?:var|let|const)\s+)?[A-Za-z_$][A-Za-z0-9_$]*\s*=\s*$`)

// Parse reads a JSON results document from r.
//
// Dataset order is taken from the order of the keys in the document.
// A JavaScript assignment around the document ("var x = {...};") is
// ignored. Datasets in the pre-aggregated form (an array of records
// carrying ratio and cpu fields instead of an object with
// "uncompressed-size" and "data") are rejected.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = trimStatement(data)
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("document must be a JSON object, found %v", tok)
	}

	doc := new(Document)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		ds, err := parseDataset(name, raw)
		if err != nil {
			return nil, err
		}
		if err := doc.add(ds); err != nil {
			return nil, err
		}
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after document")
	}
	return doc, nil
}

func parseDataset(name string, raw json.RawMessage) (*Dataset, error) {
	if t := bytes.TrimLeft(raw, " \t\r\n"); len(t) > 0 && t[0] == '[' {
		return nil, fmt.Errorf(`dataset %q: pre-aggregated record arrays are not supported, want {"uncompressed-size": ..., "data": [...]}`, name)
	}
	var v struct {
		UncompressedSize *float64 `json:"uncompressed-size"`
		Data             *[]Record `json:"data"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	switch {
	case v.UncompressedSize == nil:
		return nil, fmt.Errorf("dataset %q: missing uncompressed-size", name)
	case v.Data == nil:
		return nil, fmt.Errorf("dataset %q: missing data", name)
	}
	return &Dataset{
		Name:             name,
		UncompressedSize: *v.UncompressedSize,
		Records:          *v.Data,
	}, nil
}

// trimStatement strips a UTF-8 byte order mark, a leading JavaScript
// assignment and a trailing semicolon from data.
func trimStatement(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimSpace(data)
	if i := bytes.IndexAny(data, "{["); i > 0 && statementPrefix.Match(data[:i]) {
		data = data[i:]
	}
	data = bytes.TrimSuffix(data, []byte(";"))
	return bytes.TrimSpace(data)
}
