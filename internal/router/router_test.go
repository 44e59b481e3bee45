// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/persist"
	"storefront/internal/render"
	"storefront/internal/session"
	"storefront/internal/storefront"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestHealthHandlerMethods(t *testing.T) {
	// Health endpoint only accepts GET.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	cat := catalog.Default()
	hub := storefront.NewHub(persist.NewAdapter(persist.NewMemoryBackend(), "sf"), cat, notify.Fanout{})
	rn, err := render.New(cat)
	require.NoError(t, err)
	return New(session.NewManager(false), handlers.NewAPI(hub, rn), Options{Limiter: limiter})
}

// cookiesFrom returns the client and CSRF cookies issued by a first visit.
func cookiesFrom(t *testing.T, h http.Handler) (client, csrf *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case session.CookieName:
			client = c
		case middleware.CSRFCookieName:
			csrf = c
		}
	}
	require.NotNil(t, client, "client cookie")
	require.NotNil(t, csrf, "csrf cookie")
	return client, csrf
}

func TestHealthSetsNoCookies(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestAPIRequiresCSRFForWrites(t *testing.T) {
	h := newTestRouter(t, nil)
	client, csrf := cookiesFrom(t, h)

	post := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId":"1"}`))
		req.AddCookie(client)
		req.AddCookie(csrf)
		if token != "" {
			req.Header.Set(middleware.CSRFHeaderName, token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusForbidden, post("").Code)

	rec := post(csrf.Value)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), `"toasts"`)
}

func TestClientCookieScopesState(t *testing.T) {
	h := newTestRouter(t, nil)
	client, csrf := cookiesFrom(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/landing/edit", nil)
	req.AddCookie(client)
	req.AddCookie(csrf)
	req.Header.Set(middleware.CSRFHeaderName, csrf.Value)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Same cookie: the landing surface is editing.
	req = httptest.NewRequest(http.MethodGet, "/api/layouts/landing", nil)
	req.AddCookie(client)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"mode":"editing"`)

	// No cookie: a fresh client.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layouts/landing", nil))
	assert.Contains(t, rec.Body.String(), `"mode":"viewing"`)
}

func TestPagesRoute(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/product", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestStaticStylesheet(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/storefront.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css"))
	assert.Contains(t, rec.Body.String(), ".animate-marquee")
	assert.Empty(t, rec.Result().Cookies())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/landing", nil))
	assert.Contains(t, rec.Body.String(), `href="/static/storefront.css"`)
}

func TestAPIRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	h := newTestRouter(t, limiter)
	client, csrf := cookiesFrom(t, h)

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/wishlist", strings.NewReader(`{"productId":"2"}`))
		req.AddCookie(client)
		req.AddCookie(csrf)
		req.Header.Set(middleware.CSRFHeaderName, csrf.Value)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
