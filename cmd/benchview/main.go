// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchview serves compression benchmark results as a web page.
//
// Usage:
//
//	benchview [-config file] [-addr address] [-source source] [flags]
//
// Settings come from the config file, then BENCHVIEW_* environment
// variables, then flags. The results are loaded from the source on the
// first request; see benchdata.Loader for the accepted sources.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/squashbench/benchview/app"
	"github.com/squashbench/benchview/internal/config"
)

var configFile = flag.String("config", "", "read settings from `file` (yaml, toml or json)")

func init() {
	// Only flags set on the command line override the config; their
	// names are config keys.
	flag.String("addr", "", "serve HTTP on `address` (default localhost:8080)")
	flag.String("source", "", "load results from `source` (default data.json)")
	flag.String("width", "", "default panel width in `pixels` (default 960)")
	flag.String("timeout", "", "bound each results load by `duration`")
	flag.String("token", "", "OAuth2 bearer `token` for HTTP(S) sources")
	flag.String("log.level", "", "log `level` (default info)")
	flag.String("log.file", "", "log to `file` instead of stderr")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of benchview:
	benchview [flags]
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchview: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	cfg, err := config.Load(*configFile, flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a := &app.App{
		Source:  cfg.Source,
		Loader:  cfg.Loader(),
		Width:   cfg.Width,
		Log:     logger,
		Metrics: app.NewMetrics(reg),
		Cache:   cache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL),
	}
	a.RegisterOnMux(http.DefaultServeMux)

	logger.Infof("Listening on %s", cfg.Addr)

	logger.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
