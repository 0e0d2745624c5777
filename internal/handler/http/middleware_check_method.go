// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/logger"
)

// CheckHTTPMethod returns the handler registered with
// [chi.Mux.MethodNotAllowed]. A known path requested with a method it does
// not serve is answered with 404 instead of 405, so the response does not
// reveal which routes exist.
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("method is not registered for route")
		http.NotFound(w, r)
	}
}
