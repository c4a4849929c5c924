// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides results databases for tests of SQL sources.
package dbtest

import (
	"bytes"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"text/template"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/squashbench/benchview/benchdata"
)

var cloud = flag.Bool("cloud", false, "connect to Cloud SQL database instead of a temporary SQLite file")
var cloudsql = flag.String("cloudsql", "squash-benchmark:us-central1:results", "name of Cloud SQL instance to run tests on")

// createTmpl is the template used to prepare the CREATE statements for
// the Results table. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Results (
	Seq {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Dataset VARCHAR(255) NOT NULL,
	UncompressedSize DOUBLE NOT NULL,
	Plugin VARCHAR(255) NOT NULL,
	Codec VARCHAR(255) NOT NULL,
	Size DOUBLE NOT NULL,
	CompressCPU DOUBLE NOT NULL,
	CompressWall DOUBLE,
	DecompressCPU DOUBLE NOT NULL,
	DecompressWall DOUBLE
);
`))

// A DB is an empty Results database. Source returns a string that
// benchdata.Loader accepts.
type DB struct {
	*sql.DB
	Driver string
	DSN    string
}

// Source returns the loader source naming d.
func (d *DB) Source() string {
	return d.Driver + ":" + d.DSN
}

// createEmptyCloudDB makes a new, empty database for the test.
func createEmptyCloudDB(t *testing.T) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}

	name := "benchview-test-" + base64.RawURLEncoding.EncodeToString(buf)

	prefix := fmt.Sprintf("root:@cloudsql(%s)/", *cloudsql)

	db, err := sql.Open("mysql", prefix)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}

	t.Logf("Using database %q", name)

	return prefix + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB makes a connection to a testing database, either a SQLite file
// in a temporary directory or Cloud SQL depending on the -cloud flag.
// cleanup must be called when done with the testing database, instead
// of calling db.Close().
func NewDB(t *testing.T) (*DB, func()) {
	driverName, dataSourceName := "sqlite3", filepath.Join(t.TempDir(), "results.db")
	var cloudCleanup func()
	if *cloud {
		driverName = "mysql"
		dataSourceName, cloudCleanup = createEmptyCloudDB(t)
	}
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		if cloudCleanup != nil {
			cloudCleanup()
		}
		t.Fatalf("open database: %v", err)
	}
	cleanup := func() {
		db.Close()
		if cloudCleanup != nil {
			cloudCleanup()
		}
	}

	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		cleanup()
		t.Fatal(err)
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			cleanup()
			t.Fatalf("create table: %v", err)
		}
	}

	// Make sure the database really is empty.
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM Results").Scan(&n); err != nil {
		cleanup()
		t.Fatal(err)
	}
	if n != 0 {
		cleanup()
		t.Fatalf("found %d row(s) in Results, want 0", n)
	}
	return &DB{DB: db, Driver: driverName, DSN: dataSourceName}, cleanup
}

// Insert appends the records of datasets to d in order.
func (d *DB) Insert(t *testing.T, datasets ...*benchdata.Dataset) {
	t.Helper()
	for _, ds := range datasets {
		for _, r := range ds.Records {
			_, err := d.Exec("INSERT INTO Results(Dataset, UncompressedSize, Plugin, Codec, Size, CompressCPU, CompressWall, DecompressCPU, DecompressWall) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
				ds.Name, ds.UncompressedSize, r.Plugin, r.Codec, r.Size, r.CompressCPU, r.CompressWall, r.DecompressCPU, r.DecompressWall)
			if err != nil {
				t.Fatalf("insert %s %s:%s: %v", ds.Name, r.Plugin, r.Codec, err)
			}
		}
	}
}
