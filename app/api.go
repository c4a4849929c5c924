// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/squashbench/benchview/benchtab"
	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/panel"
)

// maxWidth bounds requested panel widths.
const maxWidth = 4096

type bootstrapData struct {
	Datasets   []string `json:"datasets"`
	AutoSelect string   `json:"autoselect,omitempty"`
	Error      string   `json:"error,omitempty"`
	Prefill    prefill  `json:"prefill"`
}

type prefill struct {
	Email string `json:"email,omitempty"`
}

// bootstrap serves what the page needs before drawing anything: the
// dataset names, the dataset to show right away if there is only one,
// and the form values passed in the query string.
func (a *App) bootstrap(w http.ResponseWriter, r *http.Request) {
	ctx := requestContext(r)
	data := bootstrapData{Datasets: []string{}}
	// Only the first email value is used, as given.
	if email := r.URL.Query()["email"]; len(email) > 0 {
		data.Prefill.Email = email[0]
	}

	if res, err := a.results(ctx); err != nil {
		data.Error = err.Error()
	} else {
		data.Datasets = res.Datasets()
		data.AutoSelect, _ = res.AutoSelect()
	}
	writeJSON(w, data)
}

type viewData struct {
	ID        string               `json:"id"`
	Kind      benchview.Kind       `json:"kind"`
	DataTable *benchview.DataTable `json:"dataTable"`
	Options   benchview.Options    `json:"options"`
}

type warningData struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

type datasetData struct {
	Name     string           `json:"name"`
	Summary  benchtab.Summary `json:"summary"`
	Warnings []warningData    `json:"warnings"`
	Views    []viewData       `json:"views"`
}

// dataset serves every view of one dataset as DataTable JSON with its
// chart options, for clients that draw without a websocket.
func (a *App) dataset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	width, err := a.parseWidth(r.Form.Get("width"))
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
	name := r.Form.Get("name")
	t, ok := res.Table(name)
	if !ok {
		http.Error(w, fmt.Sprintf("%v %q", panel.ErrUnknownDataset, name), 404)
		return
	}

	data := datasetData{
		Name:     name,
		Summary:  t.Summary(),
		Warnings: []warningData{},
	}
	for _, pw := range t.Warnings() {
		data.Warnings = append(data.Warnings, warningData{pw.Row, pw.Column, strconv.FormatFloat(pw.Value, 'g', -1, 64)})
	}
	for _, v := range benchview.SelectViews(t) {
		data.Views = append(data.Views, viewData{
			ID:        v.ID,
			Kind:      v.Kind,
			DataTable: v.DataTable(),
			Options:   v.Options(width),
		})
	}
	writeJSON(w, data)
}

var errBadWidth = errors.New("width must be an integer between 1 and 4096")

// parseWidth parses a width form value; "" means the app default.
func (a *App) parseWidth(s string) (int, error) {
	if s == "" {
		return a.width(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxWidth {
		return 0, errBadWidth
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
