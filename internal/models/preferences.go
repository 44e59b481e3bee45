// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// LandingLayout selects the landing page arrangement.
type LandingLayout string

const (
	LandingHeroCentric     LandingLayout = "hero-centric"
	LandingProductShowcase LandingLayout = "product-showcase"
	LandingMinimalist      LandingLayout = "minimalist"
	LandingStoryDriven     LandingLayout = "story-driven"
	LandingCustom          LandingLayout = "custom"
)

// Valid reports whether l is a known landing layout.
func (l LandingLayout) Valid() bool {
	switch l {
	case LandingHeroCentric, LandingProductShowcase, LandingMinimalist, LandingStoryDriven, LandingCustom:
		return true
	}
	return false
}

// ProductLayout selects how product listings are arranged.
type ProductLayout string

const (
	ProductGrid     ProductLayout = "grid"
	ProductList     ProductLayout = "list"
	ProductMasonry  ProductLayout = "masonry"
	ProductCarousel ProductLayout = "carousel"
)

// Valid reports whether p is a known product layout.
func (p ProductLayout) Valid() bool {
	switch p {
	case ProductGrid, ProductList, ProductMasonry, ProductCarousel:
		return true
	}
	return false
}
