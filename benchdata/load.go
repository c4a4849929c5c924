// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// DefaultTimeout bounds a Load when Loader.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// A LoadError reports a failure to fetch or parse a results document.
// No part of the document is usable after a LoadError.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// A Loader fetches results documents. The zero value loads local files,
// HTTP(S) URLs and SQL sources, and uses default credentials for Cloud
// Storage and S3.
//
// Sources are written as:
//
//	path/to/results.json      local file (also file:///abs/path)
//	https://host/results.json HTTP GET
//	gs://bucket/results.json  Google Cloud Storage object
//	s3://bucket/results.json  Amazon S3 object
//	sqlite3:results.db        SQL database (also mysql:<dsn>)
//
// Sources whose path ends in ".csv" are parsed with ParseCSV, all other
// files with Parse.
type Loader struct {
	// Timeout bounds the whole load, fetch and parse. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// Client is used for HTTP(S) sources. If nil, http.DefaultClient
	// is used.
	Client *http.Client

	// TokenSource, if non-nil, authorizes HTTP(S) requests with an
	// OAuth2 bearer token.
	TokenSource oauth2.TokenSource

	// GCSOptions are passed to the Cloud Storage client.
	GCSOptions []option.ClientOption

	// S3 configures the S3 client.
	S3 S3Config
}

// Load reads the document at source using a zero Loader.
func Load(ctx context.Context, source string) (*Document, error) {
	return new(Loader).Load(ctx, source)
}

// Load fetches and parses the document at source. All errors are of
// type *LoadError; a load that runs out of time wraps
// context.DeadlineExceeded.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	doc, err := l.load(ctx, source)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil && !errors.Is(err, cerr) {
			err = fmt.Errorf("%w: %v", cerr, err)
		}
		return nil, &LoadError{Source: source, Err: err}
	}
	return doc, nil
}

func (l *Loader) load(ctx context.Context, source string) (*Document, error) {
	if driver, dsn, ok := sqlSource(source); ok {
		return l.loadSQL(ctx, driver, dsn)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	rc, err := l.open(ctx, source, u)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if strings.EqualFold(path.Ext(u.Path), ".csv") {
		return ParseCSV(rc)
	}
	return Parse(rc)
}

// open returns a reader for the bytes at source.
func (l *Loader) open(ctx context.Context, source string, u *url.URL) (io.ReadCloser, error) {
	switch u.Scheme {
	case "":
		return os.Open(source)
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		return l.openHTTP(ctx, source)
	case "gs":
		return l.openGCS(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	case "s3":
		return l.openS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	}
	return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
}

func (l *Loader) openHTTP(ctx context.Context, source string) (io.ReadCloser, error) {
	hc := l.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	if l.TokenSource != nil {
		hc = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, hc), l.TokenSource)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", source, resp.Status)
	}
	return resp.Body, nil
}
