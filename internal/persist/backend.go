// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package persist stores storefront state as JSON strings in a key-value
// backend. Every client gets its own key namespace, which gives the same
// isolation browser local storage gives: nothing is shared between clients.
package persist

import "context"

// Backend is a string key-value store. Get reports absent keys with
// ok=false and a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
