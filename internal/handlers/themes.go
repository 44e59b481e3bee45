// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/storefront"
)

type themeRequest struct {
	Name            string `json:"name"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// themesView lists the saved themes alongside the active theme key.
type themesView struct {
	Active  string               `json:"active"`
	Builtin []string             `json:"builtin"`
	Custom  []models.CustomTheme `json:"custom"`
}

func viewThemes(st *storefront.State) themesView {
	return themesView{Active: st.Theme(), Builtin: models.BuiltinThemes, Custom: st.CustomThemes()}
}

// Themes lists built-in and custom themes.
func (a *API) Themes(w http.ResponseWriter, r *http.Request) {
	a.do(w, r, http.StatusOK, func(_ context.Context, st *storefront.State) (any, error) {
		return viewThemes(st), nil
	})
}

// ThemeCreate saves a new custom theme without applying it.
func (a *API) ThemeCreate(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.do(w, r, http.StatusCreated, func(ctx context.Context, st *storefront.State) (any, error) {
		if msg := validateThemeName(req.Name); msg != "" {
			return nil, invalid(ctx, "name", msg)
		}
		return st.AddCustomTheme(ctx, models.CustomTheme{
			Name:            req.Name,
			PrimaryColor:    req.PrimaryColor,
			SecondaryColor:  req.SecondaryColor,
			AccentColor:     req.AccentColor,
			BackgroundColor: req.BackgroundColor,
			TextColor:       req.TextColor,
		})
	})
}

// ThemeDelete removes a custom theme.
func (a *API) ThemeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if err := st.DeleteCustomTheme(ctx, id); err != nil {
			return nil, err
		}
		return viewThemes(st), nil
	})
}

// ThemeApply makes a custom theme the active theme.
func (a *API) ThemeApply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		if err := st.ApplyCustomTheme(ctx, id); err != nil {
			return nil, err
		}
		return viewThemes(st), nil
	})
}

// ThemeCSS serves the active custom theme as CSS custom properties. The
// body is empty when a built-in theme is active.
func (a *API) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	var css string
	err := a.hub.Do(r.Context(), middleware.ClientFromCtx(r.Context()), func(st *storefront.State) error {
		css = st.ThemeCSS()
		return nil
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(css))
}
