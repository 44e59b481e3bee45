// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/models"
	"storefront/internal/storefront"
)

type productRequest struct {
	ProductID string `json:"productId"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartView is the cart as returned by every cart endpoint.
type cartView struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func viewCart(st *storefront.State) cartView {
	return cartView{Items: st.Cart(), Total: st.CartTotal(), Count: st.CartCount()}
}

// Cart returns the cart lines and totals.
func (a *API) Cart(w http.ResponseWriter, r *http.Request) {
	a.do(w, r, http.StatusOK, func(_ context.Context, st *storefront.State) (any, error) {
		return viewCart(st), nil
	})
}

// CartAdd adds one unit of a product to the cart.
func (a *API) CartAdd(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if _, err := st.AddToCart(ctx, req.ProductID); err != nil {
			return nil, err
		}
		return viewCart(st), nil
	})
}

// CartUpdate sets a line's quantity. Zero or less removes the line.
func (a *API) CartUpdate(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	id := chi.URLParam(r, "productId")
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if err := st.UpdateQuantity(ctx, id, req.Quantity); err != nil {
			return nil, err
		}
		return viewCart(st), nil
	})
}

// CartRemove drops a line from the cart. Removing an absent line is not
// an error.
func (a *API) CartRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if _, err := st.RemoveFromCart(ctx, id); err != nil {
			return nil, err
		}
		return viewCart(st), nil
	})
}

// Wishlist returns the saved products.
func (a *API) Wishlist(w http.ResponseWriter, r *http.Request) {
	a.do(w, r, http.StatusOK, func(_ context.Context, st *storefront.State) (any, error) {
		return st.Wishlist(), nil
	})
}

// WishlistAdd saves a product. Adding a saved product again changes nothing.
func (a *API) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if _, err := st.AddToWishlist(ctx, req.ProductID); err != nil {
			return nil, err
		}
		return st.Wishlist(), nil
	})
}

// WishlistRemove drops a saved product.
func (a *API) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if _, err := st.RemoveFromWishlist(ctx, id); err != nil {
			return nil, err
		}
		return st.Wishlist(), nil
	})
}

// WishlistMove moves a saved product into the cart.
func (a *API) WishlistMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if _, err := st.MoveWishlistToCart(ctx, id); err != nil {
			return nil, err
		}
		return struct {
			Cart     cartView         `json:"cart"`
			Wishlist []models.Product `json:"wishlist"`
		}{viewCart(st), st.Wishlist()}, nil
	})
}

// Checkout places an order for the cart contents and empties the cart.
func (a *API) Checkout(w http.ResponseWriter, r *http.Request) {
	var form storefront.CheckoutForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.do(w, r, http.StatusCreated, func(ctx context.Context, st *storefront.State) (any, error) {
		return st.Checkout(ctx, form)
	})
}
