// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// Product is a catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Category    string  `json:"category,omitempty"`
}

// CartItem is a product with the quantity in the cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity.
func (c CartItem) Subtotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}

// UnmarshalJSON also accepts a bare product, the format older carts were
// stored in (one array entry per unit). Such entries get quantity 1.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Product  *Product `json:"product"`
		Quantity int      `json:"quantity"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Product != nil {
		c.Product = *wrapped.Product
		c.Quantity = max(wrapped.Quantity, 1)
		return nil
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	c.Product = p
	c.Quantity = 1
	return nil
}
