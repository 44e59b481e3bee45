// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/persist"
)

// Namespace is the root key namespace client state is stored under.
const Namespace = "sf"

// clientIDPattern keeps client ids from escaping their storage namespace.
var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidClientID reports whether id may name a client namespace.
func ValidClientID(id string) bool { return clientIDPattern.MatchString(id) }

// DefaultIdleTTL is how long a client's State stays cached after its last
// use. Evicted clients reopen from the backend on their next call.
const DefaultIdleTTL = 30 * time.Minute

// Hub owns one State per client. States are opened lazily from a
// namespace of the root adapter, and every call for the same client runs
// under that client's lock. Different clients proceed in parallel.
//
// Client entries idle for longer than the TTL are dropped by Evict, which
// StartEviction runs on a ticker until Stop is called. State is written
// through on every change, so eviction only loses what is never persisted:
// the editing mode and an in-flight drag.
type Hub struct {
	root     *persist.Adapter
	catalog  *catalog.Catalog
	notifier notify.Notifier
	idleTTL  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	clients map[string]*client

	stopCh chan struct{}
	once   sync.Once
}

type client struct {
	mu       sync.Mutex
	state    *State
	gone     bool      // removed from the map; callers must look up again
	lastUsed time.Time // guarded by Hub.mu
}

// NewHub creates a hub storing client state under root.
func NewHub(root *persist.Adapter, cat *catalog.Catalog, notifier notify.Notifier) *Hub {
	return &Hub{
		root:     root,
		catalog:  cat,
		notifier: notifier,
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
		clients:  make(map[string]*client),
		stopCh:   make(chan struct{}),
	}
}

// Catalog returns the shared product catalog.
func (h *Hub) Catalog() *catalog.Catalog { return h.catalog }

// SetIdleTTL changes how long idle clients stay cached. Call it before the
// hub is shared.
func (h *Hub) SetIdleTTL(ttl time.Duration) { h.idleTTL = ttl }

// StartEviction sweeps idle clients every interval until Stop is called.
func (h *Hub) StartEviction(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := h.Evict(); n > 0 {
					slog.Debug("idle clients evicted", "count", n, "cached", h.Len())
				}
			case <-h.stopCh:
				return
			}
		}
	}()
}

// Stop ends the eviction goroutine. It is safe to call more than once.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.stopCh) })
}

// Evict drops every client unused for longer than the idle TTL and
// returns how many were dropped. Clients with a call in progress are kept.
func (h *Hub) Evict() int {
	cutoff := h.now().Add(-h.idleTTL)

	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for id, c := range h.clients {
		if !c.lastUsed.Before(cutoff) || !c.mu.TryLock() {
			continue
		}
		c.gone = true
		c.mu.Unlock()
		delete(h.clients, id)
		n++
	}
	return n
}

// acquire returns the client's entry locked, creating it if needed.
func (h *Hub) acquire(id string) *client {
	for {
		h.mu.Lock()
		c, ok := h.clients[id]
		if !ok {
			c = &client{}
			h.clients[id] = c
		}
		c.lastUsed = h.now()
		h.mu.Unlock()

		c.mu.Lock()
		if !c.gone {
			return c
		}
		c.mu.Unlock()
	}
}

// forget removes c, which the caller holds locked, from the map.
func (h *Hub) forget(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.gone = true
	if h.clients[id] == c {
		delete(h.clients, id)
	}
}

// Do runs fn with the client's State, opening it first if needed. A State
// that fails to open is not cached, so the next call retries.
func (h *Hub) Do(ctx context.Context, clientID string, fn func(*State) error) error {
	if !ValidClientID(clientID) {
		return &models.ValidationError{Field: "client", Message: "invalid client id"}
	}
	c := h.acquire(clientID)
	defer c.mu.Unlock()

	if c.state == nil {
		st, err := Open(ctx, h.root.Sub(clientID), h.catalog, h.notifier)
		if err != nil {
			h.forget(clientID, c)
			return fmt.Errorf("hub: %w", err)
		}
		c.state = st
		slog.Debug("client state opened", "client", clientID)
	}
	return fn(c.state)
}

// Reset deletes everything stored for the client and forgets its State.
func (h *Hub) Reset(ctx context.Context, clientID string) error {
	if !ValidClientID(clientID) {
		return &models.ValidationError{Field: "client", Message: "invalid client id"}
	}
	c := h.acquire(clientID)
	defer c.mu.Unlock()

	if err := h.root.Sub(clientID).Clear(ctx); err != nil {
		return fmt.Errorf("hub: reset %s: %w", clientID, err)
	}
	c.state = nil
	return nil
}

// Len returns the number of clients with a cached entry.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
