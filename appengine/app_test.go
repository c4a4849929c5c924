// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package appengine

import (
	"strings"
	"testing"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestSource(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		src, redact string
		wantErr     string
	}{
		{
			name:   "explicit",
			env:    map[string]string{"BENCHVIEW_SOURCE": "gs://bucket/data.json", "CLOUDSQL_USER": "u"},
			src:    "gs://bucket/data.json",
			redact: "gs://bucket/data.json",
		},
		{
			name:   "cloudsql",
			env:    map[string]string{"CLOUDSQL_CONNECTION_NAME": "p:r:i", "CLOUDSQL_USER": "u", "CLOUDSQL_PASSWORD": "pw", "CLOUDSQL_DATABASE": "squash"},
			src:    "mysql:u:pw@cloudsql(p:r:i)/squash",
			redact: "mysql:u:***@cloudsql(p:r:i)/squash",
		},
		{
			name:   "no password",
			env:    map[string]string{"CLOUDSQL_CONNECTION_NAME": "p:r:i", "CLOUDSQL_USER": "u", "CLOUDSQL_DATABASE": "squash"},
			src:    "mysql:u:@cloudsql(p:r:i)/squash",
			redact: "mysql:u:@cloudsql(p:r:i)/squash",
		},
		{
			name:    "missing",
			env:     map[string]string{"CLOUDSQL_USER": "u"},
			wantErr: "CLOUDSQL_CONNECTION_NAME, CLOUDSQL_DATABASE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, redact, err := source(env(tt.env))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("source() error = %v, want one naming %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if src != tt.src || redact != tt.redact {
				t.Errorf("source() = %q, %q, want %q, %q", src, redact, tt.src, tt.redact)
			}
		})
	}
}

func TestNewHandler(t *testing.T) {
	// A missing configuration is an error, not a panic or a nil handler.
	h, _, err := newHandler(env(nil))
	if err == nil || h != nil {
		t.Errorf("newHandler with no environment = %v, %v; want nil, error", h, err)
	}

	h, _, err = newHandler(env(map[string]string{"BENCHVIEW_SOURCE": "data.json"}))
	if err != nil || h == nil {
		t.Errorf("newHandler = %v, %v; want a handler", h, err)
	}
}
