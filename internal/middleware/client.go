// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// ClientKey is the context key for the client id.
	ClientKey contextKey = "client"
	// NewClientKey marks requests whose client id was issued by this request.
	NewClientKey contextKey = "new_client"
)

// LoadClient resolves the client id from the client cookie, issuing a new
// one for first-time visitors, and stores it in the request context.
// Downstream handlers read it with ClientFromCtx.
func LoadClient(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, isNew, err := m.ClientID(w, r)
			if err != nil {
				slog.Error("client id", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			ctx := context.WithValue(r.Context(), ClientKey, id)
			if isNew {
				slog.Debug("new client", "client", id)
				ctx = context.WithValue(ctx, NewClientKey, true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientFromCtx extracts the client id from the request context. Returns
// "" if LoadClient did not run.
func ClientFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ClientKey).(string)
	return id
}

// IsNewClient reports whether LoadClient issued the client id on this
// request rather than reading it from the cookie.
func IsNewClient(ctx context.Context) bool {
	isNew, _ := ctx.Value(NewClientKey).(bool)
	return isNew
}

// WithClient returns a context carrying id as the client id.
func WithClient(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ClientKey, id)
}
