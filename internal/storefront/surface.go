// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/layout"
	"storefront/internal/models"
	"storefront/internal/persist"
)

// SurfaceName identifies an independently editable layout.
type SurfaceName string

const (
	SurfaceLanding SurfaceName = "landing"
	SurfaceProduct SurfaceName = "product"
)

// Surfaces lists every surface in display order.
var Surfaces = []SurfaceName{SurfaceLanding, SurfaceProduct}

// ParseSurface validates a surface name taken from user input.
func ParseSurface(s string) (SurfaceName, error) {
	switch n := SurfaceName(s); n {
	case SurfaceLanding, SurfaceProduct:
		return n, nil
	}
	return "", &models.NotFoundError{Kind: "surface", ID: s}
}

const defaultHeroBackground = "bg-gradient-to-r from-primary/20 to-secondary/20"

// LandingDefaults seed the landing surface the first time it is edited.
var LandingDefaults = []models.ElementSpec{
	{Type: models.ElementHero, Size: models.SizeFull, Content: "Welcome to Your Custom Layout", Background: defaultHeroBackground},
	{Type: models.ElementText, Size: models.SizeMedium, Content: "Start customizing by adding new elements or editing existing ones."},
}

// ProductViewDefaults seed the product view surface the first time it is
// edited.
var ProductViewDefaults = []models.ElementSpec{
	{Type: models.ElementHero, Size: models.SizeFull, Content: "Our Products", Background: defaultHeroBackground},
	{Type: models.ElementProducts, Size: models.SizeFull},
}

// Surface is one layout surface of a State: a layout store, its drag
// controller and the storage keys it writes through to.
type Surface struct {
	name        SurfaceName
	label       string
	bufferKey   string
	registryKey string

	state *State
	store *layout.Store
	drag  *layout.DragController
}

// reorderFunc adapts a function to layout.Reorderer.
type reorderFunc func(from, to int) error

func (f reorderFunc) Reorder(from, to int) error { return f(from, to) }

func newSurface(st *State, name SurfaceName) *Surface {
	s := &Surface{name: name, state: st}
	switch name {
	case SurfaceLanding:
		s.label = "layout"
		s.bufferKey = persist.KeyCustomLayout
		s.registryKey = persist.KeySavedCustomLayouts
		s.store = layout.NewStore(LandingDefaults)
	case SurfaceProduct:
		s.label = "product view layout"
		s.bufferKey = persist.KeyProductViewLayout
		s.registryKey = persist.KeySavedProductLayouts
		s.store = layout.NewStore(ProductViewDefaults)
	}
	// The controller must always see the current store, which is swapped
	// out when a write fails and the transition is rolled back.
	s.drag = layout.NewDragController(reorderFunc(func(from, to int) error {
		return s.store.Reorder(from, to)
	}))
	return s
}

func (s *Surface) load(ctx context.Context) error {
	var elements []models.LayoutElement
	if _, err := s.state.adapter.Load(ctx, s.bufferKey, &elements); err != nil {
		return err
	}
	var named []models.CustomLayout
	if _, err := s.state.adapter.Load(ctx, s.registryKey, &named); err != nil {
		return err
	}
	s.store.Restore(elements, named)
	return nil
}

// Name returns the surface name.
func (s *Surface) Name() SurfaceName { return s.name }

// Elements returns a copy of the in-progress buffer.
func (s *Surface) Elements() []models.LayoutElement { return s.store.Elements() }

// Named returns copies of the saved layouts.
func (s *Surface) Named() []models.CustomLayout { return s.store.Named() }

// ActiveNamed returns the active named layout, if any.
func (s *Surface) ActiveNamed() (models.CustomLayout, bool) { return s.store.ActiveNamed() }

// Mode returns the editing state.
func (s *Surface) Mode() layout.Mode { return s.store.Mode() }

// SurfaceSnapshot is a read-only copy of a surface.
type SurfaceSnapshot struct {
	Surface  SurfaceName            `json:"surface"`
	Mode     layout.Mode            `json:"mode"`
	Elements []models.LayoutElement `json:"elements"`
	Named    []models.CustomLayout  `json:"named"`
	ActiveID string                 `json:"activeId,omitempty"`
	DragFrom *int                   `json:"dragFrom,omitempty"`
}

// Snapshot returns a deep copy of the surface.
func (s *Surface) Snapshot() SurfaceSnapshot {
	snap := SurfaceSnapshot{
		Surface:  s.name,
		Mode:     s.store.Mode(),
		Elements: s.store.Elements(),
		Named:    s.store.Named(),
	}
	if active, ok := s.store.ActiveNamed(); ok {
		snap.ActiveID = active.ID
	}
	if src, ok := s.drag.Source(); ok {
		snap.DragFrom = &src
	}
	return snap
}

// errNoChange lets a mutation report that it accepted the call without
// changing anything, so nothing is written.
var errNoChange = errors.New("no change")

// mutate runs fn against the store and writes keys through. When fn
// rejects or the write fails, the store is rolled back to its state before
// fn, so multi-step mutations never leave a partial result.
func (s *Surface) mutate(ctx context.Context, fn func(*layout.Store) error, keys ...string) error {
	backup := s.store.Clone()
	if err := fn(s.store); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		s.store = backup
		return err
	}
	if err := s.persist(ctx, keys...); err != nil {
		s.store = backup
		return err
	}
	return nil
}

func (s *Surface) persist(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		var value any
		switch key {
		case s.bufferKey:
			value = s.store.Elements()
		case s.registryKey:
			value = s.store.Named()
		default:
			return fmt.Errorf("surface %s: unknown key %q", s.name, key)
		}
		if err := s.state.adapter.Save(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// AddElement validates spec and appends a new element to the buffer.
func (s *Surface) AddElement(ctx context.Context, spec models.ElementSpec) (models.LayoutElement, error) {
	var el models.LayoutElement
	err := s.mutate(ctx, func(st *layout.Store) error {
		var err error
		el, err = st.AddElement(spec)
		return err
	}, s.bufferKey)
	if err != nil {
		return models.LayoutElement{}, s.state.reject(ctx, "Could not add element", err)
	}
	s.state.toast(ctx, "Element added", "New element has been added to your "+s.label)
	return el, nil
}

// RemoveElement drops the element with id. Removing an unknown id reports
// false and writes nothing.
func (s *Surface) RemoveElement(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.mutate(ctx, func(st *layout.Store) error {
		var err error
		if removed, err = st.RemoveElement(id); err == nil && !removed {
			return errNoChange
		}
		return err
	}, s.bufferKey)
	if err != nil {
		return false, s.state.reject(ctx, "Could not remove element", err)
	}
	if removed {
		s.state.toast(ctx, "Element removed", "Element has been removed from your layout")
	}
	return removed, nil
}

// Reorder moves the element at from to position to.
func (s *Surface) Reorder(ctx context.Context, from, to int) error {
	err := s.mutate(ctx, func(st *layout.Store) error {
		return st.Reorder(from, to)
	}, s.bufferKey)
	if err != nil {
		return s.state.reject(ctx, "Could not move element", err)
	}
	return nil
}

// DragStart records index as the dragged element. Dragging is only
// possible while editing.
func (s *Surface) DragStart(ctx context.Context, index int) error {
	if s.store.Mode() != layout.ModeEditing {
		return s.state.reject(ctx, "Not editing", &models.StateError{Op: "drag", Mode: string(s.store.Mode())})
	}
	if n := s.store.Len(); index < 0 || index >= n {
		return s.state.reject(ctx, "Could not move element", &models.IndexError{Index: index, Len: n})
	}
	s.drag.Start(index)
	return nil
}

// DragOver moves the dragged element to target and reports whether it
// moved.
func (s *Surface) DragOver(ctx context.Context, target int) (bool, error) {
	src, dragging := s.drag.Source()
	var moved bool
	err := s.mutate(ctx, func(*layout.Store) error {
		var err error
		if moved, err = s.drag.Over(target); err == nil && !moved {
			return errNoChange
		}
		return err
	}, s.bufferKey)
	if err != nil {
		if dragging {
			s.drag.Start(src)
		}
		return false, s.state.reject(ctx, "Could not move element", err)
	}
	return moved, nil
}

// DragEnd clears the drag source.
func (s *Surface) DragEnd() { s.drag.End() }

// EnterEdit switches the surface to editing, seeding the defaults into an
// empty buffer.
func (s *Surface) EnterEdit(ctx context.Context) error {
	if s.store.Mode() == layout.ModeEditing {
		return nil
	}
	if err := s.mutate(ctx, (*layout.Store).EnterEdit, s.bufferKey); err != nil {
		return s.state.reject(ctx, "Could not start editing", err)
	}
	s.state.toast(ctx, "Edit mode", "Drag elements to rearrange your "+s.label)
	return nil
}

// Save leaves editing mode, storing the buffer as a named layout. With an
// active named layout that layout is re-saved in place.
func (s *Surface) Save(ctx context.Context, name string) (models.CustomLayout, error) {
	var saved models.CustomLayout
	err := s.mutate(ctx, func(st *layout.Store) error {
		var err error
		saved, err = st.Save(name)
		return err
	}, s.bufferKey, s.registryKey)
	if err != nil {
		return models.CustomLayout{}, s.state.reject(ctx, "Could not save changes", err)
	}
	s.drag.End()
	s.state.toast(ctx, "Changes saved", fmt.Sprintf("%q has been saved to your layouts", saved.Name))
	return saved, nil
}

// Discard leaves editing mode and restores the buffer from before
// EnterEdit.
func (s *Surface) Discard(ctx context.Context) error {
	if err := s.mutate(ctx, (*layout.Store).Discard, s.bufferKey); err != nil {
		return s.state.reject(ctx, "Could not discard changes", err)
	}
	s.drag.End()
	s.state.toast(ctx, "Changes discarded", "Your "+s.label+" has been restored")
	return nil
}

// SaveAsNamed snapshots the buffer under name and makes it active.
func (s *Surface) SaveAsNamed(ctx context.Context, name string) (models.CustomLayout, error) {
	var saved models.CustomLayout
	err := s.mutate(ctx, func(st *layout.Store) error {
		var err error
		saved, err = st.SaveAsNamed(name)
		return err
	}, s.registryKey)
	if err != nil {
		title := "Could not save layout"
		if isValidation(err) {
			title = "Name required"
		}
		return models.CustomLayout{}, s.state.reject(ctx, title, err)
	}
	s.state.toast(ctx, "Layout saved", fmt.Sprintf("%q has been saved to your layouts", saved.Name))
	return saved, nil
}

// LoadNamed replaces the buffer with a copy of the named layout.
func (s *Surface) LoadNamed(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(st *layout.Store) error {
		return st.LoadNamed(id)
	}, s.bufferKey)
	if err != nil {
		return s.state.reject(ctx, "Could not load layout", err)
	}
	s.drag.End()
	s.state.toast(ctx, "Layout loaded", "Selected layout has been loaded")
	return nil
}

// DeleteNamed removes a named layout. The buffer is untouched.
func (s *Surface) DeleteNamed(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(st *layout.Store) error {
		return st.DeleteNamed(id)
	}, s.registryKey)
	if err != nil {
		return s.state.reject(ctx, "Could not delete layout", err)
	}
	s.state.toast(ctx, "Layout deleted", "Layout has been deleted")
	return nil
}

// Import replaces the buffer wholesale, entering edit mode first when
// needed. The surface stays in editing mode so the import can be reviewed
// and then saved or discarded.
func (s *Surface) Import(ctx context.Context, elements []models.LayoutElement) error {
	err := s.mutate(ctx, func(st *layout.Store) error {
		if err := st.EnterEdit(); err != nil {
			return err
		}
		return st.Replace(elements)
	}, s.bufferKey)
	if err != nil {
		return s.state.reject(ctx, "Could not import layout", err)
	}
	s.drag.End()
	s.state.toast(ctx, "Layout imported", fmt.Sprintf("%d elements imported into your %s", len(elements), s.label))
	return nil
}

func isValidation(err error) bool {
	var verr *models.ValidationError
	return errors.As(err, &verr)
}
