// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the benchmark results viewer. Combine an App
// with a results source to get an HTTP server.
//
// The page itself is static; the browser fetches the dataset list from
// /api/bootstrap and renders datasets over a websocket on /ws. Each
// connection owns a panel.Panel whose visualizations forward draw and
// selection calls to the browser, so selections made in one chart are
// relayed by the server to the other charts of the same dataset.
package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/squashbench/benchview/benchdata"
	"github.com/squashbench/benchview/panel"
	"golang.org/x/net/context"
	"golang.org/x/sync/singleflight"
)

// DefaultWidth is the panel width in pixels assumed when a request does
// not give one.
const DefaultWidth = 960

// DefaultCacheTTL is how long rendered chart images are kept when
// App.Cache is nil.
const DefaultCacheTTL = 10 * time.Minute

// App manages the viewer logic. Construct an App instance using a
// literal with a Source and call RegisterOnMux to connect it with an
// HTTP server.
type App struct {
	// Source is the location of the results document; see
	// benchdata.Loader for the accepted forms.
	Source string

	// Loader fetches Source. If nil, a zero benchdata.Loader is used.
	Loader *benchdata.Loader

	// Width is the default panel width in pixels.
	Width int

	// Log receives request and load logs. If nil, the logrus
	// standard logger is used.
	Log *logrus.Logger

	// Metrics, if non-nil, is updated by the app and served on
	// /metrics.
	Metrics *Metrics

	// Cache holds rendered chart images. If nil, one is created with
	// DefaultCacheTTL.
	Cache *cache.Cache

	mu    sync.Mutex
	data  *panel.Context
	loads singleflight.Group

	initOnce sync.Once
}

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/", a.index)
	mux.HandleFunc("/api/bootstrap", a.bootstrap)
	mux.HandleFunc("/api/dataset", a.dataset)
	mux.HandleFunc("/chart", a.chart)
	mux.HandleFunc("/ws", a.ws)
	mux.HandleFunc("/static/benchview.js", a.script)
	if a.Metrics != nil {
		mux.Handle("/metrics", a.Metrics.Handler())
	}
}

func (a *App) init() {
	a.initOnce.Do(func() {
		if a.Cache == nil {
			a.Cache = cache.New(DefaultCacheTTL, 2*DefaultCacheTTL)
		}
	})
}

func (a *App) width() int {
	if a.Width > 0 {
		return a.Width
	}
	return DefaultWidth
}

// results returns the loaded results, loading them first if needed.
// A successful load is kept for the lifetime of a; a failed load is
// attempted again by the next call. Concurrent callers share one load.
func (a *App) results(ctx context.Context) (*panel.Context, error) {
	a.mu.Lock()
	data := a.data
	a.mu.Unlock()
	if data != nil {
		return data, nil
	}
	v, err, _ := a.loads.Do("results", func() (interface{}, error) {
		return a.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*panel.Context), nil
}

// load fetches and projects the results. ctx is only used for logging:
// the load is shared by every waiting request and must not fail because
// the first of them went away. Loader.Timeout bounds it instead.
func (a *App) load(ctx context.Context) (*panel.Context, error) {
	a.mu.Lock()
	data := a.data
	a.mu.Unlock()
	if data != nil {
		return data, nil
	}

	l := a.Loader
	if l == nil {
		l = new(benchdata.Loader)
	}
	start := time.Now()
	doc, err := l.Load(context.Background(), a.Source)
	if err != nil {
		a.Metrics.load(false)
		a.errorf(ctx, "%v", err)
		return nil, err
	}
	a.Metrics.load(true)

	data = panel.NewContext(doc)
	for _, w := range data.Warnings() {
		a.logger().WithFields(logrus.Fields{
			"dataset": w.Dataset,
			"row":     w.Row,
			"column":  w.Column,
		}).Warnf("non-finite value %v", w.Value)
		a.Metrics.warning()
	}
	a.infof(ctx, "loaded %d datasets from %s in %v", len(doc.Datasets), a.Source, time.Since(start))

	a.mu.Lock()
	a.data = data
	a.mu.Unlock()
	return data, nil
}

// Close releases the loaded results. Later requests load them again.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.data != nil {
		a.data.Close()
		a.data = nil
	}
	if a.Cache != nil {
		a.Cache.Flush()
	}
}
