// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/squashbench/benchview/benchdata"
)

func TestDefaults(t *testing.T) {
	c, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Addr:    "localhost:8080",
		Source:  "data.json",
		Width:   960,
		Timeout: benchdata.DefaultTimeout,
		Cache:   CacheConfig{TTL: 10 * time.Minute},
		Log:     LogConfig{Level: "info", Format: "text", MaxSize: 100, MaxBackups: 7, MaxAge: 30, Compress: true},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("defaults differ (-want +got):\n%s", diff)
	}
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "benchview.yaml")
	data := "addr: \":9000\"\nsource: gs://bucket/data.json\nwidth: 1200\nlog:\n  level: debug\ns3:\n  region: eu-west-1\n"
	if err := os.WriteFile(file, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BENCHVIEW_WIDTH", "1400")
	t.Setenv("BENCHVIEW_CACHE_TTL", "1m")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("addr", "localhost:8080", "")
	fs.String("source", "", "")
	if err := fs.Parse([]string{"-addr", ":7000"}); err != nil {
		t.Fatal(err)
	}

	c, err := Load(file, fs)
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":7000" {
		t.Errorf("Addr = %q, want flag value :7000", c.Addr)
	}
	if c.Source != "gs://bucket/data.json" {
		t.Errorf("Source = %q, want file value (flag was not set)", c.Source)
	}
	if c.Width != 1400 {
		t.Errorf("Width = %d, want env value 1400", c.Width)
	}
	if c.Cache.TTL != time.Minute {
		t.Errorf("Cache.TTL = %v, want 1m", c.Cache.TTL)
	}
	if c.Log.Level != "debug" || c.S3.Region != "eu-west-1" {
		t.Errorf("Log.Level = %q, S3.Region = %q", c.Log.Level, c.S3.Region)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Error("Load of missing file succeeded")
	}
	t.Setenv("BENCHVIEW_WIDTH", "0")
	if _, err := Load("", nil); err == nil {
		t.Error("Load with width 0 succeeded")
	}
}

func TestLoader(t *testing.T) {
	c := &Config{Timeout: time.Second, Token: "tok", GCS: GCSConfig{Credentials: "key.json"}, S3: S3Config{Endpoint: "http://minio:9000"}}
	l := c.Loader()
	if l.Timeout != time.Second || l.TokenSource == nil || len(l.GCSOptions) != 1 || l.S3.Endpoint != "http://minio:9000" {
		t.Errorf("Loader() = %+v", l)
	}
	tok, err := l.TokenSource.Token()
	if err != nil || tok.AccessToken != "tok" {
		t.Errorf("Token() = %v, %v", tok, err)
	}
}

func TestNewLogger(t *testing.T) {
	file := filepath.Join(t.TempDir(), "benchview.log")
	log, err := NewLogger(LogConfig{Level: "warn", Format: "json", File: file, MaxSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", log.GetLevel())
	}
	log.Info("dropped")
	log.Warn("kept")
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); !strings.Contains(got, `"msg":"kept"`) || strings.Contains(got, "dropped") {
		t.Errorf("log file = %q", got)
	}

	if _, err := NewLogger(LogConfig{Level: "loud"}); err == nil {
		t.Error("NewLogger accepted level loud")
	}
	if _, err := NewLogger(LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("NewLogger accepted format xml")
	}
}
