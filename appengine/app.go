// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package appengine contains an AppEngine app serving benchmark results.
package appengine

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/squashbench/benchview/app"
	"google.golang.org/appengine"
	aelog "google.golang.org/appengine/log"
)

// source returns the results source set in app.yaml. If
// BENCHVIEW_SOURCE is set (a gs:// object, usually), it is used as is.
// Otherwise CLOUDSQL_CONNECTION_NAME, CLOUDSQL_USER, and
// CLOUDSQL_DATABASE must point to the Cloud SQL instance holding the
// Results table. CLOUDSQL_PASSWORD can be set if needed.
//
// The second result is the source with the password hidden, for logs.
func source(getenv func(string) string) (src, redacted string, err error) {
	if s := getenv("BENCHVIEW_SOURCE"); s != "" {
		return s, s, nil
	}
	var missing []string
	get := func(k string) string {
		v := getenv(k)
		if v == "" {
			missing = append(missing, k)
		}
		return v
	}
	var (
		connectionName = get("CLOUDSQL_CONNECTION_NAME")
		user           = get("CLOUDSQL_USER")
		password       = getenv("CLOUDSQL_PASSWORD") // NOTE: password may be empty
		dbName         = get("CLOUDSQL_DATABASE")
	)
	if len(missing) > 0 {
		return "", "", fmt.Errorf("BENCHVIEW_SOURCE not set, and neither is %s", strings.Join(missing, ", "))
	}
	src = fmt.Sprintf("mysql:%s:%s@cloudsql(%s)/%s", user, password, connectionName, dbName)
	redacted = src
	if password != "" {
		redacted = fmt.Sprintf("mysql:%s:***@cloudsql(%s)/%s", user, connectionName, dbName)
	}
	return src, redacted, nil
}

// newHandler builds the app from the environment.
func newHandler(getenv func(string) string) (http.Handler, string, error) {
	src, redacted, err := source(getenv)
	if err != nil {
		return nil, "", err
	}
	a := &app.App{
		Source:  src,
		Metrics: app.NewMetrics(prometheus.NewRegistry()),
	}
	mux := http.NewServeMux()
	a.RegisterOnMux(mux)
	return mux, redacted, nil
}

var (
	handler   http.Handler
	redacted  string
	configErr error
	logOnce   sync.Once
)

// appHandler is the default handler, registered to serve "/". The App
// is built once, in init; it keeps the loaded results for the lifetime
// of the instance. A configuration error fails every request.
func appHandler(w http.ResponseWriter, r *http.Request) {
	ctx := appengine.NewContext(r)
	if configErr != nil {
		aelog.Errorf(ctx, "configuration: %v", configErr)
		http.Error(w, configErr.Error(), 500)
		return
	}
	logOnce.Do(func() {
		aelog.Infof(ctx, "serving results from %s", redacted)
	})
	handler.ServeHTTP(w, r)
}

func init() {
	handler, redacted, configErr = newHandler(os.Getenv)
	http.HandleFunc("/", appHandler)
}
