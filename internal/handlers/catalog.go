// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

// Products lists the catalog, narrowed by the q, min, max and category
// query parameters. category may repeat or hold a comma-separated list.
func (a *API) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{Query: q.Get("q")}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("min")); err != nil {
		writeError(w, r, &models.ValidationError{Field: "min", Message: "must be a non-negative number"}, nil)
		return
	}
	if f.MaxPrice, err = parsePrice(q.Get("max")); err != nil {
		writeError(w, r, &models.ValidationError{Field: "max", Message: "must be a non-negative number"}, nil)
		return
	}
	for _, c := range q["category"] {
		for _, part := range strings.Split(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				f.Categories = append(f.Categories, part)
			}
		}
	}

	writeJSON(w, http.StatusOK, response{Data: a.catalog().Search(f)})
}

// Product returns one product by id.
func (a *API) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := a.catalog().GetByID(id)
	if !ok {
		writeError(w, r, &models.NotFoundError{Kind: "product", ID: id}, nil)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: p})
}

// Featured returns the products shown by products elements.
func (a *API) Featured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: a.catalog().GetFeatured()})
}

// Categories returns the distinct product categories.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: a.catalog().Categories()})
}

func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
