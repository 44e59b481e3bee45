// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storefront is the per-client application context. A State owns
// every piece of client state (preferences, cart, wishlist, themes and the
// two layout surfaces). Each mutating action applies its transition,
// writes the affected keys through the persistence adapter and then emits
// a toast. A failed write rolls the transition back.
package storefront

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/persist"
)

// Default preferences applied when nothing is stored.
const (
	DefaultLandingLayout = models.LandingHeroCentric
	DefaultProductLayout = models.ProductGrid
)

// State is one client's storefront. It is not safe for concurrent use;
// the Hub serializes access per client.
type State struct {
	adapter  *persist.Adapter
	catalog  *catalog.Catalog
	notifier notify.Notifier

	theme         string
	landingLayout models.LandingLayout
	productLayout models.ProductLayout
	cart          []models.CartItem
	wishlist      []models.Product
	themes        []models.CustomTheme

	landing     *Surface
	productView *Surface
}

// Open builds a State by loading every persisted key from adapter and then
// applying defaults for whatever is missing or unreadable. Only backend
// failures are returned; corrupt values fall back to defaults.
func Open(ctx context.Context, adapter *persist.Adapter, cat *catalog.Catalog, notifier notify.Notifier) (*State, error) {
	if notifier == nil {
		notifier = notify.Log{}
	}
	s := &State{
		adapter:  adapter,
		catalog:  cat,
		notifier: notifier,
		cart:     []models.CartItem{},
		wishlist: []models.Product{},
		themes:   []models.CustomTheme{},
	}
	s.landing = newSurface(s, SurfaceLanding)
	s.productView = newSurface(s, SurfaceProduct)

	if err := s.load(ctx); err != nil {
		return nil, fmt.Errorf("open state %s: %w", adapter.Namespace(), err)
	}
	s.applyDefaults()
	return s, nil
}

func (s *State) load(ctx context.Context) error {
	theme, _, err := s.adapter.LoadString(ctx, persist.KeyTheme)
	if err != nil {
		return err
	}
	s.theme = strings.TrimSpace(theme)

	landing, _, err := s.adapter.LoadString(ctx, persist.KeyLandingLayout)
	if err != nil {
		return err
	}
	s.landingLayout = models.LandingLayout(strings.TrimSpace(landing))

	product, _, err := s.adapter.LoadString(ctx, persist.KeyProductLayout)
	if err != nil {
		return err
	}
	s.productLayout = models.ProductLayout(strings.TrimSpace(product))

	var cart []models.CartItem
	if _, err := s.adapter.Load(ctx, persist.KeyCartItems, &cart); err != nil {
		return err
	}
	s.cart = mergeCart(cart)

	var wishlist []models.Product
	if _, err := s.adapter.Load(ctx, persist.KeyWishlistItems, &wishlist); err != nil {
		return err
	}
	if wishlist != nil {
		s.wishlist = wishlist
	}

	var themes []models.CustomTheme
	if _, err := s.adapter.Load(ctx, persist.KeyCustomThemes, &themes); err != nil {
		return err
	}
	if themes != nil {
		s.themes = themes
	}

	if err := s.landing.load(ctx); err != nil {
		return err
	}
	return s.productView.load(ctx)
}

func (s *State) applyDefaults() {
	if s.theme == "" {
		s.theme = models.DefaultTheme
	}
	if !s.landingLayout.Valid() {
		s.landingLayout = DefaultLandingLayout
	}
	if !s.productLayout.Valid() {
		s.productLayout = DefaultProductLayout
	}
}

// Catalog returns the product catalog the state resolves ids against.
func (s *State) Catalog() *catalog.Catalog { return s.catalog }

// Landing returns the landing page layout surface.
func (s *State) Landing() *Surface { return s.landing }

// ProductView returns the product view layout surface.
func (s *State) ProductView() *Surface { return s.productView }

// Surface returns the surface called name.
func (s *State) Surface(name SurfaceName) (*Surface, error) {
	switch name {
	case SurfaceLanding:
		return s.landing, nil
	case SurfaceProduct:
		return s.productView, nil
	}
	return nil, &models.NotFoundError{Kind: "surface", ID: string(name)}
}

// Theme returns the active theme identifier.
func (s *State) Theme() string { return s.theme }

// LandingLayout returns the selected landing page arrangement.
func (s *State) LandingLayout() models.LandingLayout { return s.landingLayout }

// ProductLayout returns the selected product listing arrangement.
func (s *State) ProductLayout() models.ProductLayout { return s.productLayout }

// SetTheme selects a built-in theme or an existing custom theme by its
// theme key.
func (s *State) SetTheme(ctx context.Context, theme string) error {
	theme = strings.TrimSpace(theme)
	if id, ok := strings.CutPrefix(theme, models.CustomThemePrefix); ok {
		if s.indexTheme(id) < 0 {
			return s.reject(ctx, "Theme not found", &models.NotFoundError{Kind: "theme", ID: id})
		}
	} else if !slices.Contains(models.BuiltinThemes, theme) {
		return s.reject(ctx, "Unknown theme", &models.ValidationError{Field: "theme", Message: "unknown theme " + theme})
	}
	if err := s.adapter.SaveString(ctx, persist.KeyTheme, theme); err != nil {
		return s.reject(ctx, "Could not save theme", err)
	}
	s.theme = theme
	s.toast(ctx, "Theme updated", "Your store theme has been changed")
	return nil
}

// SetLandingLayout selects the landing page arrangement.
func (s *State) SetLandingLayout(ctx context.Context, l models.LandingLayout) error {
	if !l.Valid() {
		return s.reject(ctx, "Unknown layout", &models.ValidationError{Field: "landingLayout", Message: "unknown landing layout " + string(l)})
	}
	if err := s.adapter.SaveString(ctx, persist.KeyLandingLayout, string(l)); err != nil {
		return s.reject(ctx, "Could not save layout", err)
	}
	s.landingLayout = l
	s.toast(ctx, "Layout updated", "Landing page layout set to "+string(l))
	return nil
}

// SetProductLayout selects the product listing arrangement.
func (s *State) SetProductLayout(ctx context.Context, l models.ProductLayout) error {
	if !l.Valid() {
		return s.reject(ctx, "Unknown layout", &models.ValidationError{Field: "productLayout", Message: "unknown product layout " + string(l)})
	}
	if err := s.adapter.SaveString(ctx, persist.KeyProductLayout, string(l)); err != nil {
		return s.reject(ctx, "Could not save layout", err)
	}
	s.productLayout = l
	s.toast(ctx, "Layout updated", "Product layout set to "+string(l))
	return nil
}

// Snapshot is a read-only copy of the whole client state.
type Snapshot struct {
	Theme         string               `json:"theme"`
	LandingLayout models.LandingLayout `json:"landingLayout"`
	ProductLayout models.ProductLayout `json:"productLayout"`
	Cart          []models.CartItem    `json:"cartItems"`
	CartTotal     float64              `json:"cartTotal"`
	CartCount     int                  `json:"cartCount"`
	Wishlist      []models.Product     `json:"wishlistItems"`
	CustomThemes  []models.CustomTheme `json:"customThemes"`
	Landing       SurfaceSnapshot      `json:"landing"`
	ProductView   SurfaceSnapshot      `json:"productView"`
}

// Snapshot returns a deep copy of the client state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Theme:         s.theme,
		LandingLayout: s.landingLayout,
		ProductLayout: s.productLayout,
		Cart:          s.Cart(),
		CartTotal:     s.CartTotal(),
		CartCount:     s.CartCount(),
		Wishlist:      s.Wishlist(),
		CustomThemes:  s.CustomThemes(),
		Landing:       s.landing.Snapshot(),
		ProductView:   s.productView.Snapshot(),
	}
}

func (s *State) toast(ctx context.Context, title, description string) {
	s.notifier.Notify(ctx, notify.Toast{Title: title, Description: description, Variant: notify.VariantDefault})
}

// reject emits a destructive toast for err and returns it unchanged.
func (s *State) reject(ctx context.Context, title string, err error) error {
	s.notifier.Notify(ctx, notify.Toast{Title: title, Description: err.Error(), Variant: notify.VariantDestructive})
	return err
}
