// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port), "db", db)
	return client, nil
}

// ValkeyBackend stores each key as a plain Valkey string under keyPrefix.
// Keys never expire; a client's state lives until it is cleared.
type ValkeyBackend struct {
	client    *redis.Client
	keyPrefix string
}

// NewValkeyBackend creates a backend on client. keyPrefix keeps storefront
// keys apart from anything else in the same logical database.
func NewValkeyBackend(client *redis.Client, keyPrefix string) *ValkeyBackend {
	return &ValkeyBackend{client: client, keyPrefix: keyPrefix}
}

func (v *ValkeyBackend) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, v.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return val, true, nil
}

func (v *ValkeyBackend) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, v.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

func (v *ValkeyBackend) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, v.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

// Keys walks the keyspace with SCAN so large databases are never blocked
// by a KEYS call.
func (v *ValkeyBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		cursor uint64
		out    []string
	)
	pattern := escapeGlob(v.keyPrefix+prefix) + "*"
	for {
		keys, next, err := v.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("valkey scan: %w", err)
		}
		for _, k := range keys {
			out = append(out, strings.TrimPrefix(k, v.keyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return out, nil
}

// globReplacer escapes the characters SCAN MATCH treats as wildcards.
var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globReplacer.Replace(s) }
