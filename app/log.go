// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// requestContext returns the Context object for a given HTTP request.
func requestContext(r *http.Request) context.Context {
	return r.Context()
}

func (a *App) logger() *logrus.Logger {
	if a.Log != nil {
		return a.Log
	}
	return logrus.StandardLogger()
}

// infof is used for logging informational messages.
func (a *App) infof(ctx context.Context, format string, args ...interface{}) {
	a.logger().WithContext(ctx).Infof(format, args...)
}

// errorf is used for logging error messages.
func (a *App) errorf(ctx context.Context, format string, args ...interface{}) {
	a.logger().WithContext(ctx).Errorf(format, args...)
}
