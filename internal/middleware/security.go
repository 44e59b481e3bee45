// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// pagePolicy is the Content-Security-Policy of rendered layouts. Element
// images may come from any HTTPS origin and the active custom theme is an
// inline style block. Pages run no scripts.
var pagePolicy = strings.Join([]string{
	"default-src 'self'",
	"img-src 'self' https: data:",
	"style-src 'self' 'unsafe-inline'",
	"script-src 'none'",
	"frame-ancestors 'self'",
}, "; ")

// baseHeaders are set on every response.
var baseHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"X-XSS-Protection", "0"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()"},
	{"Content-Security-Policy", pagePolicy},
}

// SecureHeaders sets the browser hardening headers. API responses carry
// per-client state and are additionally marked uncacheable.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range baseHeaders {
			h.Set(kv[0], kv[1])
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h.Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}
