// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"context"
	"database/sql"
	"strings"
)

// SQL sources hold one row per record in a Results table:
//
//	Results(Seq, Dataset, UncompressedSize, Plugin, Codec, Size,
//	        CompressCPU, CompressWall, DecompressCPU, DecompressWall)
//
// Seq orders the rows; datasets are ordered by their first row. The
// wall clock columns may be NULL. The database is only read.
const selectResults = `SELECT Dataset, UncompressedSize, Plugin, Codec, Size, CompressCPU, CompressWall, DecompressCPU, DecompressWall FROM Results ORDER BY Seq`

// sqlDrivers are the driver names accepted as source prefixes. The
// drivers themselves are registered by the importing program.
var sqlDrivers = []string{"sqlite3", "mysql"}

// sqlSource splits a "driver:dsn" source.
func sqlSource(source string) (driver, dsn string, ok bool) {
	prefix, rest, found := strings.Cut(source, ":")
	if !found {
		return "", "", false
	}
	for _, d := range sqlDrivers {
		if prefix == d {
			return d, rest, true
		}
	}
	return "", "", false
}

func (l *Loader) loadSQL(ctx context.Context, driver, dsn string) (*Document, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return QuerySQL(ctx, db)
}

// QuerySQL reads a results document from the Results table of db.
func QuerySQL(ctx context.Context, db *sql.DB) (*Document, error) {
	rows, err := db.QueryContext(ctx, selectResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var g grouper
	for rows.Next() {
		var (
			name         string
			uncompressed float64
			r            Record
			cwall, dwall sql.NullFloat64
		)
		if err := rows.Scan(&name, &uncompressed, &r.Plugin, &r.Codec, &r.Size, &r.CompressCPU, &cwall, &r.DecompressCPU, &dwall); err != nil {
			return nil, err
		}
		r.CompressWall = cwall.Float64
		r.DecompressWall = dwall.Float64
		if err := g.add(name, uncompressed, r); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &g.doc, nil
}
