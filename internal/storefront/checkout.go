// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// Order pricing. Nothing is charged; the totals are for the summary only.
const (
	ShippingFlat = 10.00
	TaxRate      = 0.08

	defaultCountry = "United States"
)

// CheckoutForm is the shipping and payment form.
type CheckoutForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
	cardPattern   = regexp.MustCompile(`^[0-9]{13,19}$`)
)

// Validate checks the form and returns the first problem found. Spaces and
// dashes in the card number are ignored. Country defaults to the United
// States when left blank.
func (f *CheckoutForm) Validate() error {
	for _, p := range []*string{&f.FirstName, &f.LastName, &f.Address, &f.City, &f.State, &f.ZipCode, &f.Country, &f.CardName, &f.CardNumber, &f.Expiry, &f.CVV} {
		*p = strings.TrimSpace(*p)
	}
	if f.Country == "" {
		f.Country = defaultCountry
	}

	required := []struct{ field, value, label string }{
		{"firstName", f.FirstName, "First name"},
		{"lastName", f.LastName, "Last name"},
		{"address", f.Address, "Street address"},
		{"city", f.City, "City"},
		{"state", f.State, "State"},
		{"zipCode", f.ZipCode, "ZIP code"},
		{"cardName", f.CardName, "Cardholder name"},
		{"cardNumber", f.CardNumber, "Card number"},
		{"expiry", f.Expiry, "Expiry date"},
		{"cvv", f.CVV, "CVV"},
	}
	for _, r := range required {
		if r.value == "" {
			return &models.ValidationError{Field: r.field, Message: r.label + " is required"}
		}
	}

	f.CardNumber = strings.NewReplacer(" ", "", "-", "").Replace(f.CardNumber)
	if !cardPattern.MatchString(f.CardNumber) {
		return &models.ValidationError{Field: "cardNumber", Message: "card number must be 13 to 19 digits"}
	}
	if !expiryPattern.MatchString(f.Expiry) {
		return &models.ValidationError{Field: "expiry", Message: "expiry must be MM/YY"}
	}
	if !cvvPattern.MatchString(f.CVV) {
		return &models.ValidationError{Field: "cvv", Message: "CVV must be 3 or 4 digits"}
	}
	return nil
}

// Order is the confirmation summary of a placed order.
type Order struct {
	ID       string            `json:"id"`
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Shipping float64           `json:"shipping"`
	Tax      float64           `json:"tax"`
	Total    float64           `json:"total"`
	ShipTo   string            `json:"shipTo"`
	CardLast string            `json:"cardLast4"`
	PlacedAt time.Time         `json:"placedAt"`
}

// Checkout validates the form, summarizes the cart as an order and empties
// the cart.
func (s *State) Checkout(ctx context.Context, form CheckoutForm) (Order, error) {
	if len(s.cart) == 0 {
		return Order{}, s.reject(ctx, "Your cart is empty", &models.ValidationError{Field: "cart", Message: "add some products to your cart to proceed to checkout"})
	}
	if err := form.Validate(); err != nil {
		return Order{}, s.reject(ctx, "Check your details", err)
	}

	subtotal := cartTotal(s.cart)
	tax := roundCents(subtotal * TaxRate)
	order := Order{
		ID:       uuid.NewString(),
		Items:    s.Cart(),
		Subtotal: subtotal,
		Shipping: ShippingFlat,
		Tax:      tax,
		Total:    roundCents(subtotal + ShippingFlat + tax),
		ShipTo:   strings.Join([]string{form.FirstName + " " + form.LastName, form.Address, form.City + ", " + form.State + " " + form.ZipCode, form.Country}, "\n"),
		CardLast: form.CardNumber[len(form.CardNumber)-4:],
		PlacedAt: time.Now().UTC(),
	}

	if err := s.saveCart(ctx, []models.CartItem{}); err != nil {
		return Order{}, s.reject(ctx, "Could not place order", err)
	}
	s.toast(ctx, "Thank you for your order!", "Your order has been successfully placed")
	return order, nil
}
