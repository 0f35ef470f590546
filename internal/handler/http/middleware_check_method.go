// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/go-chi/chi/v5"
)

// probedMethods are the methods CheckHTTPMethod offers in the Allow header.
var probedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// It answers 405 with a JSON message body, like every other error of the
// API, and lists the methods the matched route does serve in the Allow
// header. Parameterised patterns such as /users/{id} are matched with
// [chi.Mux.Match], so the header is correct for them too.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := make([]string, 0, len(probedMethods))
		for _, method := range probedMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteMessage(w, app.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}
