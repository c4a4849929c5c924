// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"net/http"

	"github.com/google/safehtml/template"
)

// pageHTML is the results page. Dataset names and the load error are
// only ever placed in text nodes.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Squash Compression Benchmark</title>
<style>
body { font-family: sans-serif; margin: 0 2em; }
#datasets-list li { cursor: pointer; color: #1a0dab; display: inline-block; margin-right: 1em; }
#datasets-list li.current { font-weight: bold; }
.error { color: #c00; }
.summary { color: #555; }
</style>
</head>
<body>
<h1>Squash Compression Benchmark</h1>
<ul id="datasets-list">
{{- range .Datasets}}
<li>{{.}}</li>
{{- end}}
</ul>
<div id="results">
{{- if .Error}}
<p class="error">Unable to load benchmark results: {{.Error}}</p>
{{- else if and (not .Datasets) (not .Single)}}
<p>No benchmark results.</p>
{{- end}}
</div>
<form id="announce" method="get" action="https://groups.google.com/forum/#!forum/squash-compression">
<label for="email">Get notified of new results:</label>
<input type="email" name="email" id="email">
<input type="submit" value="Subscribe">
</form>
<script src="https://www.gstatic.com/charts/loader.js"></script>
<script src="/static/benchview.js"></script>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	// Datasets is the navigation list. A single dataset is not listed;
	// it is rendered right away.
	Datasets []string
	Single   bool
	Error    string
}

// index serves the results page. It loads the results if they are not
// loaded yet; a failure is shown in the results panel, without a
// dataset list.
func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx := requestContext(r)

	var data pageData
	if res, err := a.results(ctx); err != nil {
		data.Error = err.Error()
	} else {
		if _, ok := res.AutoSelect(); ok {
			data.Single = true
		} else {
			data.Datasets = res.Datasets()
		}
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		a.errorf(ctx, "page: %v", err)
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
