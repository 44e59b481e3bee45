// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the storefront HTTP API. Every request acts
// on the state of the client named by middleware.LoadClient; the hub
// serializes requests from the same client. Responses are JSON envelopes
// carrying the result and any toasts the action produced.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/render"
	"storefront/internal/storefront"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// API groups the storefront JSON and page handlers.
type API struct {
	hub      *storefront.Hub
	renderer *render.Renderer
}

// NewAPI creates the handler group. The hub's notifier should be a
// notify.Fanout so toasts reach the per-request recorder.
func NewAPI(hub *storefront.Hub, renderer *render.Renderer) *API {
	return &API{hub: hub, renderer: renderer}
}

// response is the envelope of every API reply.
type response struct {
	Data   any            `json:"data,omitempty"`
	Error  string         `json:"error,omitempty"`
	Field  string         `json:"field,omitempty"`
	Toasts []notify.Toast `json:"toasts,omitempty"`
}

// do runs fn against the caller's state and writes the result with status,
// or the mapped error. Toasts raised while fn ran are returned either way.
func (a *API) do(w http.ResponseWriter, r *http.Request, status int, fn func(context.Context, *storefront.State) (any, error)) {
	rec := &notify.Recorder{}
	ctx := notify.WithRecorder(r.Context(), rec)
	clientID := middleware.ClientFromCtx(ctx)

	var data any
	err := a.hub.Do(ctx, clientID, func(st *storefront.State) error {
		var err error
		data, err = fn(ctx, st)
		return err
	})
	if err != nil {
		writeError(w, r, err, rec.Drain())
		return
	}
	writeJSON(w, status, response{Data: data, Toasts: rec.Drain()})
}

// surface resolves the {surface} URL parameter against st.
func surface(r *http.Request, st *storefront.State) (*storefront.Surface, error) {
	name, err := storefront.ParseSurface(chi.URLParam(r, "surface"))
	if err != nil {
		return nil, err
	}
	return st.Surface(name)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
		index      *models.IndexError
		state      *models.StateError
		bad        *badRequestError
	)
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &index):
		return http.StatusBadRequest
	case errors.As(err, &state):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, toasts []notify.Toast) {
	status := statusFor(err)
	resp := response{Error: err.Error(), Toasts: toasts}
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"client", middleware.ClientFromCtx(r.Context()),
			"error", err,
		)
		resp.Error = "Internal Server Error"
	}
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		resp.Field = validation.Field
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// badRequestError reports a body that could not be decoded.
type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return "invalid request body: " + e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// decode reads a JSON body into dst. Unknown fields and trailing data are
// rejected.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return &badRequestError{err: err}
	}
	if dec.More() {
		return &badRequestError{err: fmt.Errorf("unexpected data after JSON value")}
	}
	return nil
}

// invalid turns a validator message into a ValidationError and a toast.
func invalid(ctx context.Context, field, msg string) error {
	rejectToast(ctx, "Invalid input", msg)
	return &models.ValidationError{Field: field, Message: msg}
}

func rejectToast(ctx context.Context, title, description string) {
	notify.Fanout{}.Notify(ctx, notify.Toast{Title: title, Description: description, Variant: notify.VariantDestructive})
}

// catalog returns the shared product catalog.
func (a *API) catalog() *catalog.Catalog { return a.hub.Catalog() }
