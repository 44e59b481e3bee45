// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog provides the read-only product catalog the storefront
// browses, filters and renders into product elements.
package catalog

import (
	"slices"
	"strings"

	"storefront/internal/models"
)

// featuredCount is how many products GetFeatured returns.
const featuredCount = 4

// Catalog is an immutable, in-memory product list.
type Catalog struct {
	products []models.Product
}

// New creates a catalog over a copy of products, preserving their order.
func New(products []models.Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Default returns the catalog seeded with the demo products.
func Default() *Catalog {
	return New(demoProducts)
}

// GetAll returns every product.
func (c *Catalog) GetAll() []models.Product {
	return slices.Clone(c.products)
}

// GetByID returns the product with the given id.
func (c *Catalog) GetByID(id string) (models.Product, bool) {
	i := slices.IndexFunc(c.products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, false
	}
	return c.products[i], true
}

// GetByCategory returns the products in category, matched exactly.
func (c *Catalog) GetByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// GetFeatured returns the first products of the catalog.
func (c *Catalog) GetFeatured() []models.Product {
	return slices.Clone(c.products[:min(featuredCount, len(c.products))])
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, p := range c.products {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

// Filter narrows the shop listing.
type Filter struct {
	Query      string   // case-insensitive match on name or description
	MinPrice   float64  // inclusive
	MaxPrice   float64  // inclusive; 0 means no upper bound
	Categories []string // any of; empty means all
}

// Search returns the products matching every criterion of f.
func (c *Catalog) Search(f Filter) []models.Product {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.Product{}
	for _, p := range c.products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, p.Category) {
			continue
		}
		out = append(out, p)
	}
	return out
}
