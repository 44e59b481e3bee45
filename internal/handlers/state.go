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

// State returns a snapshot of everything the client owns.
func (a *API) State(w http.ResponseWriter, r *http.Request) {
	a.do(w, r, http.StatusOK, func(_ context.Context, st *storefront.State) (any, error) {
		return st.Snapshot(), nil
	})
}

// ResetState deletes everything stored for the client. The client id is
// kept; the next request starts from the defaults.
func (a *API) ResetState(w http.ResponseWriter, r *http.Request) {
	if err := a.hub.Reset(r.Context(), middleware.ClientFromCtx(r.Context())); err != nil {
		writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type valueRequest struct {
	Value string `json:"value"`
}

// SetPreference updates one of the theme, landing or product preferences.
func (a *API) SetPreference(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	key := chi.URLParam(r, "key")

	a.do(w, r, http.StatusOK, func(ctx context.Context, st *storefront.State) (any, error) {
		var err error
		switch key {
		case "theme":
			err = st.SetTheme(ctx, req.Value)
		case "landing":
			err = st.SetLandingLayout(ctx, models.LandingLayout(req.Value))
		case "product":
			err = st.SetProductLayout(ctx, models.ProductLayout(req.Value))
		default:
			return nil, &models.NotFoundError{Kind: "preference", ID: key}
		}
		if err != nil {
			return nil, err
		}
		return preferences{
			Theme:         st.Theme(),
			LandingLayout: st.LandingLayout(),
			ProductLayout: st.ProductLayout(),
		}, nil
	})
}

type preferences struct {
	Theme         string               `json:"theme"`
	LandingLayout models.LandingLayout `json:"landingLayout"`
	ProductLayout models.ProductLayout `json:"productLayout"`
}
