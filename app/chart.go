// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/panel"
	"github.com/squashbench/benchview/render"
	"github.com/squashbench/benchview/selection"
)

var contentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

// chart serves one chart view as an image, for pages without
// JavaScript. Query parameters:
//
//	dataset  dataset name
//	view     view ID, e.g. "ratio"
//	format   png (default), svg or pdf
//	width    image width in pixels
//	select   comma-separated rows to highlight
func (a *App) chart(w http.ResponseWriter, r *http.Request) {
	a.init()
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	format := r.Form.Get("format")
	if format == "" {
		format = "png"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, fmt.Sprintf("unsupported format %q", format), 400)
		return
	}
	width, err := a.parseWidth(r.Form.Get("width"))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	rows, err := parseRows(r.Form.Get("select"))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	ctx := requestContext(r)
	res, err := a.results(ctx)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	name, viewID := r.Form.Get("dataset"), r.Form.Get("view")
	t, ok := res.Table(name)
	if !ok {
		http.Error(w, fmt.Sprintf("%v %q", panel.ErrUnknownDataset, name), 404)
		return
	}
	v, ok := benchview.SelectView(t, viewID)
	if !ok || v.Kind == benchview.KindTable {
		http.Error(w, fmt.Sprintf("no chart view %q", viewID), 404)
		return
	}

	key := strings.Join([]string{name, viewID, format, strconv.Itoa(width), r.Form.Get("select")}, "\x00")
	img, hit := a.Cache.Get(key)
	a.Metrics.cacheLookup(hit)
	if !hit {
		var c render.Chart
		var buf bytes.Buffer
		err := c.Draw(v, v.Options(width))
		if err == nil {
			err = c.SetSelection(selection.Rows(rows...))
		}
		if err == nil {
			err = c.Encode(&buf, format)
		}
		a.Metrics.render(err == nil)
		if err != nil {
			a.errorf(ctx, "chart %s/%s: %v", name, viewID, err)
			http.Error(w, err.Error(), 500)
			return
		}
		img = buf.Bytes()
		a.Cache.Set(key, img, cache.DefaultExpiration)
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(img.([]byte))
}

func parseRows(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var rows []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad row %q in select", f)
		}
		rows = append(rows, n)
	}
	return rows, nil
}
