// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"context"
	"math"
	"slices"

	"storefront/internal/models"
	"storefront/internal/persist"
)

// Cart returns a copy of the cart lines.
func (s *State) Cart() []models.CartItem { return slices.Clone(s.cart) }

// CartCount returns the number of units in the cart.
func (s *State) CartCount() int {
	n := 0
	for _, it := range s.cart {
		n += it.Quantity
	}
	return n
}

// CartTotal returns the sum of line subtotals rounded to cents.
func (s *State) CartTotal() float64 {
	return cartTotal(s.cart)
}

func cartTotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return roundCents(total)
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

// AddToCart adds one unit of the product to the cart.
func (s *State) AddToCart(ctx context.Context, productID string) (models.CartItem, error) {
	p, ok := s.catalog.GetByID(productID)
	if !ok {
		return models.CartItem{}, s.reject(ctx, "Product not found", &models.NotFoundError{Kind: "product", ID: productID})
	}
	cart := slices.Clone(s.cart)
	i := indexCart(cart, productID)
	if i < 0 {
		cart = append(cart, models.CartItem{Product: p, Quantity: 1})
		i = len(cart) - 1
	} else {
		cart[i].Quantity++
	}
	if err := s.saveCart(ctx, cart); err != nil {
		return models.CartItem{}, s.reject(ctx, "Could not update cart", err)
	}
	s.toast(ctx, "Added to cart", p.Name+" has been added to your cart")
	return cart[i], nil
}

// RemoveFromCart drops the product's line from the cart. It reports false
// when the product was not in the cart.
func (s *State) RemoveFromCart(ctx context.Context, productID string) (bool, error) {
	i := indexCart(s.cart, productID)
	if i < 0 {
		return false, nil
	}
	name := s.cart[i].Product.Name
	cart := slices.Delete(slices.Clone(s.cart), i, i+1)
	if err := s.saveCart(ctx, cart); err != nil {
		return false, s.reject(ctx, "Could not update cart", err)
	}
	s.toast(ctx, "Removed from cart", name+" has been removed from your cart")
	return true, nil
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line.
func (s *State) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	i := indexCart(s.cart, productID)
	if i < 0 {
		return s.reject(ctx, "Not in cart", &models.NotFoundError{Kind: "cart item", ID: productID})
	}
	if qty <= 0 {
		_, err := s.RemoveFromCart(ctx, productID)
		return err
	}
	cart := slices.Clone(s.cart)
	cart[i].Quantity = qty
	if err := s.saveCart(ctx, cart); err != nil {
		return s.reject(ctx, "Could not update cart", err)
	}
	s.toast(ctx, "Cart updated", cart[i].Product.Name+" quantity updated")
	return nil
}

// ClearCart empties the cart.
func (s *State) ClearCart(ctx context.Context) error {
	if err := s.saveCart(ctx, []models.CartItem{}); err != nil {
		return s.reject(ctx, "Could not update cart", err)
	}
	s.toast(ctx, "Cart cleared", "All items have been removed from your cart")
	return nil
}

// saveCart writes cart through and installs it as the current cart.
func (s *State) saveCart(ctx context.Context, cart []models.CartItem) error {
	if err := s.adapter.Save(ctx, persist.KeyCartItems, cart); err != nil {
		return err
	}
	s.cart = cart
	return nil
}

func indexCart(cart []models.CartItem, productID string) int {
	return slices.IndexFunc(cart, func(it models.CartItem) bool { return it.Product.ID == productID })
}

// mergeCart folds lines for the same product into one, keeping first
// appearance order. Carts stored one entry per unit load this way.
func mergeCart(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.Product.ID == "" || it.Quantity <= 0 {
			continue
		}
		if i := indexCart(out, it.Product.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

// Wishlist returns a copy of the wishlist.
func (s *State) Wishlist() []models.Product { return slices.Clone(s.wishlist) }

// InWishlist reports whether the product is on the wishlist.
func (s *State) InWishlist(productID string) bool {
	return indexProduct(s.wishlist, productID) >= 0
}

// AddToWishlist puts the product on the wishlist. Adding a product that is
// already there reports false and writes nothing.
func (s *State) AddToWishlist(ctx context.Context, productID string) (bool, error) {
	p, ok := s.catalog.GetByID(productID)
	if !ok {
		return false, s.reject(ctx, "Product not found", &models.NotFoundError{Kind: "product", ID: productID})
	}
	if s.InWishlist(productID) {
		return false, nil
	}
	wishlist := append(slices.Clone(s.wishlist), p)
	if err := s.saveWishlist(ctx, wishlist); err != nil {
		return false, s.reject(ctx, "Could not update wishlist", err)
	}
	s.toast(ctx, "Added to wishlist", p.Name+" has been added to your wishlist")
	return true, nil
}

// RemoveFromWishlist takes the product off the wishlist. It reports false
// when the product was not there.
func (s *State) RemoveFromWishlist(ctx context.Context, productID string) (bool, error) {
	i := indexProduct(s.wishlist, productID)
	if i < 0 {
		return false, nil
	}
	wishlist := slices.Delete(slices.Clone(s.wishlist), i, i+1)
	if err := s.saveWishlist(ctx, wishlist); err != nil {
		return false, s.reject(ctx, "Could not update wishlist", err)
	}
	s.toast(ctx, "Removed from wishlist", "The item has been removed from your wishlist")
	return true, nil
}

// MoveWishlistToCart adds one unit of a wishlisted product to the cart and
// takes it off the wishlist. Both keys are written; if the second write
// fails the first is reverted.
func (s *State) MoveWishlistToCart(ctx context.Context, productID string) (models.CartItem, error) {
	i := indexProduct(s.wishlist, productID)
	if i < 0 {
		return models.CartItem{}, s.reject(ctx, "Not in wishlist", &models.NotFoundError{Kind: "wishlist item", ID: productID})
	}
	p := s.wishlist[i]

	prevCart := s.cart
	cart := slices.Clone(s.cart)
	j := indexCart(cart, productID)
	if j < 0 {
		cart = append(cart, models.CartItem{Product: p, Quantity: 1})
		j = len(cart) - 1
	} else {
		cart[j].Quantity++
	}
	if err := s.saveCart(ctx, cart); err != nil {
		return models.CartItem{}, s.reject(ctx, "Could not update cart", err)
	}
	wishlist := slices.Delete(slices.Clone(s.wishlist), i, i+1)
	if err := s.saveWishlist(ctx, wishlist); err != nil {
		// Best effort; the in-memory cart is restored either way.
		_ = s.adapter.Save(ctx, persist.KeyCartItems, prevCart)
		s.cart = prevCart
		return models.CartItem{}, s.reject(ctx, "Could not update wishlist", err)
	}
	s.toast(ctx, "Added to cart", p.Name+" has been added to your cart")
	return cart[j], nil
}

func (s *State) saveWishlist(ctx context.Context, wishlist []models.Product) error {
	if err := s.adapter.Save(ctx, persist.KeyWishlistItems, wishlist); err != nil {
		return err
	}
	s.wishlist = wishlist
	return nil
}

func indexProduct(products []models.Product, id string) int {
	return slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id })
}
