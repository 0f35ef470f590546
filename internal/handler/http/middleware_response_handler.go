// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
)

// responseWriter is a thin decorator around [http.ResponseWriter] that
// records the status code and the number of body bytes written, so that
// withLogging can report them after the downstream handler returns.
//
// WriteHeader is forwarded to the underlying writer exactly once.
type responseWriter struct {
	http.ResponseWriter

	// status is zero until WriteHeader (or an implicit WriteHeader via Write)
	// is called.
	status      int
	wroteHeader bool

	// size is the running total of bytes written to the body.
	size int

	// ctx is the request context seen by the innermost handler that called
	// setContext. The auth middleware stores the authenticated user there,
	// which the outer logging middleware cannot otherwise observe.
	ctx context.Context
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) setContext(ctx context.Context) {
	w.ctx = ctx
}

// contextSetter is implemented by writers that want to see the final request
// context.
type contextSetter interface {
	setContext(ctx context.Context)
}

// publishContext hands ctx to every contextSetter in the writer chain.
func publishContext(w http.ResponseWriter, ctx context.Context) {
	for w != nil {
		if s, ok := w.(contextSetter); ok {
			s.setContext(ctx)
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return
		}
		w = u.Unwrap()
	}
}
