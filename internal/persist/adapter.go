// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"
	"strings"

	"storefront/internal/models"
)

// nsSep separates namespace segments from the key.
const nsSep = ":"

// Adapter serializes values to JSON and reads and writes them under a
// namespaced key in a Backend. Writes overwrite unconditionally.
type Adapter struct {
	backend   Backend
	namespace string
}

// NewAdapter creates an adapter writing under namespace.
func NewAdapter(backend Backend, namespace string) *Adapter {
	return &Adapter{backend: backend, namespace: namespace}
}

// Sub returns an adapter scoped to a child namespace sharing the backend.
func (a *Adapter) Sub(name string) *Adapter {
	return &Adapter{backend: a.backend, namespace: a.key(name)}
}

// Namespace returns the adapter's key prefix without the trailing separator.
func (a *Adapter) Namespace() string { return a.namespace }

func (a *Adapter) key(k string) string {
	if a.namespace == "" {
		return k
	}
	return a.namespace + nsSep + k
}

// Save marshals value to JSON and writes it under key.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &models.StorageError{Op: "save", Key: key, Err: err}
	}
	return a.SaveString(ctx, key, string(data))
}

// SaveString writes a raw string under key. Scalar preferences are stored
// this way, without JSON quoting.
func (a *Adapter) SaveString(ctx context.Context, key, value string) error {
	if err := a.backend.Set(ctx, a.key(key), value); err != nil {
		return &models.StorageError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Load reads key and unmarshals it into dst, which must be a pointer. It
// reports false when the key is absent. A value that fails to parse is
// logged and reported as absent, with dst reset to its zero value, so a
// corrupt entry falls back to defaults instead of failing the caller.
func (a *Adapter) Load(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := a.LoadString(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("discarding unreadable stored value",
			"namespace", a.namespace,
			"key", key,
			"error", err,
		)
		if v := reflect.ValueOf(dst); v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().SetZero()
		}
		return false, nil
	}
	return true, nil
}

// LoadString reads the raw string stored under key.
func (a *Adapter) LoadString(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := a.backend.Get(ctx, a.key(key))
	if err != nil {
		return "", false, &models.StorageError{Op: "load", Key: key, Err: err}
	}
	return raw, ok, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	if err := a.backend.Delete(ctx, a.key(key)); err != nil {
		return &models.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Keys lists the keys stored in this namespace, without the namespace
// prefix. Keys of child namespaces are included with their sub-prefix.
func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	prefix := ""
	if a.namespace != "" {
		prefix = a.namespace + nsSep
	}
	keys, err := a.backend.Keys(ctx, prefix)
	if err != nil {
		return nil, &models.StorageError{Op: "list", Key: prefix + "*", Err: err}
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, prefix)
	}
	return keys, nil
}

// Clear deletes every key in the namespace.
func (a *Adapter) Clear(ctx context.Context) error {
	keys, err := a.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := a.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
