// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/render"
	"storefront/internal/storefront"
)

type nameRequest struct {
	Name string `json:"name"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type indexRequest struct {
	Index int `json:"index"`
}

// onSurface runs fn against the {surface} of the caller's state and
// replies with the surface snapshot taken afterwards.
func (a *API) onSurface(w http.ResponseWriter, r *http.Request, status int, fn func(context.Context, *storefront.Surface) error) {
	a.do(w, r, status, func(ctx context.Context, st *storefront.State) (any, error) {
		s, err := surface(r, st)
		if err != nil {
			return nil, err
		}
		if err := fn(ctx, s); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

// Layout returns the surface buffer, mode and named layouts.
func (a *API) Layout(w http.ResponseWriter, r *http.Request) {
	a.onSurface(w, r, http.StatusOK, func(context.Context, *storefront.Surface) error { return nil })
}

// LayoutEdit enters edit mode.
func (a *API) LayoutEdit(w http.ResponseWriter, r *http.Request) {
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		return s.EnterEdit(ctx)
	})
}

// LayoutSave leaves edit mode, saving the buffer as a named layout. The
// name may be empty when re-saving the active named layout.
func (a *API) LayoutSave(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
	}
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		if err := checkName(ctx, req.Name); err != nil {
			return err
		}
		_, err := s.Save(ctx, req.Name)
		return err
	})
}

// LayoutDiscard leaves edit mode, restoring the buffer.
func (a *API) LayoutDiscard(w http.ResponseWriter, r *http.Request) {
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		return s.Discard(ctx)
	})
}

// ElementAdd appends a new element to the buffer and returns it.
func (a *API) ElementAdd(w http.ResponseWriter, r *http.Request) {
	var spec models.ElementSpec
	if err := decode(w, r, &spec); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.do(w, r, http.StatusCreated, func(ctx context.Context, st *storefront.State) (any, error) {
		s, err := surface(r, st)
		if err != nil {
			return nil, err
		}
		if msg := validateElementSpec(spec); msg != "" {
			return nil, invalid(ctx, "element", msg)
		}
		return s.AddElement(ctx, spec)
	})
}

// ElementRemove drops an element from the buffer. Unknown ids leave the
// buffer as it was.
func (a *API) ElementRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		_, err := s.RemoveElement(ctx, id)
		return err
	})
}

// ElementsImport replaces the buffer with the elements of a layout
// document, as produced by ElementsExport, and leaves the surface editing.
func (a *API) ElementsImport(w http.ResponseWriter, r *http.Request) {
	var doc models.CustomLayout
	if err := decode(w, r, &doc); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		if msg := validateImport(doc.Elements); msg != "" {
			return invalid(ctx, "elements", msg)
		}
		return s.Import(ctx, doc.Elements)
	})
}

// ElementsExport returns the buffer as a layout document.
func (a *API) ElementsExport(w http.ResponseWriter, r *http.Request) {
	a.do(w, r, http.StatusOK, func(_ context.Context, st *storefront.State) (any, error) {
		s, err := surface(r, st)
		if err != nil {
			return nil, err
		}
		doc := models.CustomLayout{Name: string(s.Name()), Elements: s.Elements()}
		if active, ok := s.ActiveNamed(); ok {
			doc.ID, doc.Name, doc.CreatedAt = active.ID, active.Name, active.CreatedAt
		}
		return doc, nil
	})
}

// Reorder moves one element of the buffer.
func (a *API) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		return s.Reorder(ctx, req.From, req.To)
	})
}

// DragStart marks the element at index as dragged.
func (a *API) DragStart(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		return s.DragStart(ctx, req.Index)
	})
}

// DragOver moves the dragged element to index.
func (a *API) DragOver(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		_, err := s.DragOver(ctx, req.Index)
		return err
	})
}

// DragEnd drops the dragged element where it is.
func (a *API) DragEnd(w http.ResponseWriter, r *http.Request) {
	a.onSurface(w, r, http.StatusOK, func(_ context.Context, s *storefront.Surface) error {
		s.DragEnd()
		return nil
	})
}

// NamedList returns the named layouts of the surface.
func (a *API) NamedList(w http.ResponseWriter, r *http.Request) {
	a.do(w, r, http.StatusOK, func(_ context.Context, st *storefront.State) (any, error) {
		s, err := surface(r, st)
		if err != nil {
			return nil, err
		}
		return s.Named(), nil
	})
}

// NamedCreate snapshots the buffer as a new named layout.
func (a *API) NamedCreate(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	a.do(w, r, http.StatusCreated, func(ctx context.Context, st *storefront.State) (any, error) {
		s, err := surface(r, st)
		if err != nil {
			return nil, err
		}
		if err := checkName(ctx, req.Name); err != nil {
			return nil, err
		}
		return s.SaveAsNamed(ctx, req.Name)
	})
}

// NamedLoad copies a named layout into the buffer.
func (a *API) NamedLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		return s.LoadNamed(ctx, id)
	})
}

// NamedDelete removes a named layout.
func (a *API) NamedDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.onSurface(w, r, http.StatusOK, func(ctx context.Context, s *storefront.Surface) error {
		return s.DeleteNamed(ctx, id)
	})
}

// Page renders the surface buffer as HTML under the client's theme.
func (a *API) Page(w http.ResponseWriter, r *http.Request) {
	var (
		doc      render.Document
		elements []models.LayoutElement
	)
	err := a.hub.Do(r.Context(), middleware.ClientFromCtx(r.Context()), func(st *storefront.State) error {
		s, err := surface(r, st)
		if err != nil {
			return err
		}
		elements = s.Elements()
		doc = render.Document{
			Title:    pageTitle(s.Name()),
			Theme:    st.Theme(),
			ThemeCSS: template.CSS(st.ThemeCSS()),
		}
		return nil
	})
	if err != nil {
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	a.renderer.Serve(w, r, doc, elements)
}

// checkName bounds a layout name. Blank names pass; the surface decides
// whether it needs one.
func checkName(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if msg := validateLayoutName(name); msg != "" {
		return invalid(ctx, "name", msg)
	}
	return nil
}

func pageTitle(name storefront.SurfaceName) string {
	switch name {
	case storefront.SurfaceProduct:
		return "Product"
	default:
		return "Home"
	}
}
