// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout holds the custom layout builder core: the in-progress
// element buffer, the registry of named layouts, and the drag controller
// that turns pointer events into reorders. It performs no I/O; callers
// persist the state after each accepted transition.
package layout

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// Mode is the editing state of the buffer.
type Mode string

const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

// Store is the single source of truth for one layout surface: the
// in-progress element buffer and its named layouts.
//
// Element mutations (add, remove, reorder) are only accepted in
// ModeEditing. Every rejected call leaves the store unchanged.
type Store struct {
	elements   []models.LayoutElement
	named      []models.CustomLayout
	activeID   string
	mode       Mode
	checkpoint []models.LayoutElement
	defaults   []models.ElementSpec

	now func() time.Time
}

// NewStore creates an empty store in viewing mode. defaults are seeded into
// the buffer the first time editing starts on an empty buffer.
func NewStore(defaults []models.ElementSpec) *Store {
	return &Store{
		elements: []models.LayoutElement{},
		named:    []models.CustomLayout{},
		mode:     ModeViewing,
		defaults: defaults,
		now:      time.Now,
	}
}

// Restore replaces the buffer and registry with previously persisted
// state. Elements are sorted by their stored order and renumbered, so a
// damaged order sequence heals on load.
func (s *Store) Restore(elements []models.LayoutElement, named []models.CustomLayout) {
	els := models.CloneElements(elements)
	slices.SortStableFunc(els, func(a, b models.LayoutElement) int {
		return cmp.Compare(a.Order, b.Order)
	})
	renumber(els)
	s.elements = els

	s.named = make([]models.CustomLayout, len(named))
	for i, l := range named {
		s.named[i] = l.Clone()
	}
	if s.activeID != "" && s.indexNamed(s.activeID) < 0 {
		s.activeID = ""
	}
}

// Clone returns an independent deep copy of the store, including its mode
// and edit checkpoint.
func (s *Store) Clone() *Store {
	cp := *s
	cp.elements = models.CloneElements(s.elements)
	cp.named = s.Named()
	if s.checkpoint != nil {
		cp.checkpoint = models.CloneElements(s.checkpoint)
	}
	return &cp
}

// Elements returns a deep copy of the buffer in order.
func (s *Store) Elements() []models.LayoutElement {
	return models.CloneElements(s.elements)
}

// Len returns the number of elements in the buffer.
func (s *Store) Len() int { return len(s.elements) }

// Named returns deep copies of the saved layouts in creation order.
func (s *Store) Named() []models.CustomLayout {
	out := make([]models.CustomLayout, len(s.named))
	for i, l := range s.named {
		out[i] = l.Clone()
	}
	return out
}

// ActiveNamed returns the active named layout, if any.
func (s *Store) ActiveNamed() (models.CustomLayout, bool) {
	if i := s.indexNamed(s.activeID); i >= 0 {
		return s.named[i].Clone(), true
	}
	return models.CustomLayout{}, false
}

// Mode returns the current editing state.
func (s *Store) Mode() Mode { return s.mode }

// AddElement validates spec and appends the new element with
// order = current length.
func (s *Store) AddElement(spec models.ElementSpec) (models.LayoutElement, error) {
	if err := s.requireEditing("add element"); err != nil {
		return models.LayoutElement{}, err
	}
	el, err := models.NewElement(spec)
	if err != nil {
		return models.LayoutElement{}, err
	}
	el.Order = len(s.elements)
	s.elements = append(s.elements, el)
	return el.Clone(), nil
}

// RemoveElement drops the element with the given id and renumbers the
// rest. An unknown id is a no-op; the result reports whether anything was
// removed.
func (s *Store) RemoveElement(id string) (bool, error) {
	if err := s.requireEditing("remove element"); err != nil {
		return false, err
	}
	i := slices.IndexFunc(s.elements, func(el models.LayoutElement) bool { return el.ID == id })
	if i < 0 {
		return false, nil
	}
	s.elements = slices.Delete(s.elements, i, i+1)
	renumber(s.elements)
	return true, nil
}

// Reorder moves the element at from to position to, shifting the elements
// in between by one. Both indices must lie in [0, Len()).
func (s *Store) Reorder(from, to int) error {
	if err := s.requireEditing("reorder"); err != nil {
		return err
	}
	n := len(s.elements)
	if from < 0 || from >= n {
		return &models.IndexError{Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return &models.IndexError{Index: to, Len: n}
	}
	if from == to {
		return nil
	}
	el := s.elements[from]
	s.elements = slices.Delete(s.elements, from, from+1)
	s.elements = slices.Insert(s.elements, to, el)
	renumber(s.elements)
	return nil
}

// Replace swaps the whole buffer for elements, renumbering them in the
// given sequence. Used for imports. Every element must pass
// models.ValidateElement; elements without an id get a fresh one and a
// repeated id is refused. On error the buffer is unchanged.
func (s *Store) Replace(elements []models.LayoutElement) error {
	if err := s.requireEditing("replace elements"); err != nil {
		return err
	}
	els := models.CloneElements(elements)
	seen := make(map[string]struct{}, len(els))
	for i := range els {
		el := &els[i]
		if err := models.ValidateElement(*el); err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				return &models.ValidationError{Field: fmt.Sprintf("elements[%d].%s", i, verr.Field), Message: verr.Message}
			}
			return err
		}
		if el.ID == "" {
			el.ID = uuid.NewString()
		}
		if _, dup := seen[el.ID]; dup {
			return &models.ValidationError{Field: fmt.Sprintf("elements[%d].id", i), Message: "duplicate element id " + el.ID}
		}
		seen[el.ID] = struct{}{}
	}
	renumber(els)
	s.elements = els
	return nil
}

// SaveAsNamed snapshots the buffer under name and makes the snapshot the
// active named layout.
func (s *Store) SaveAsNamed(name string) (models.CustomLayout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CustomLayout{}, &models.ValidationError{Field: "name", Message: "layout name is required"}
	}
	l := models.CustomLayout{
		ID:        uuid.NewString(),
		Name:      name,
		Elements:  models.CloneElements(s.elements),
		CreatedAt: s.now().UTC(),
	}
	s.named = append(s.named, l)
	s.activeID = l.ID
	return l.Clone(), nil
}

// LoadNamed replaces the buffer with a copy of the named layout and makes
// it active. It is accepted in either mode.
func (s *Store) LoadNamed(id string) error {
	i := s.indexNamed(id)
	if i < 0 {
		return &models.NotFoundError{Kind: "layout", ID: id}
	}
	els := models.CloneElements(s.named[i].Elements)
	renumber(els)
	s.elements = els
	s.activeID = id
	return nil
}

// DeleteNamed removes a named layout. The buffer is left untouched; if the
// deleted layout was active, no layout is active afterwards.
func (s *Store) DeleteNamed(id string) error {
	i := s.indexNamed(id)
	if i < 0 {
		return &models.NotFoundError{Kind: "layout", ID: id}
	}
	s.named = slices.Delete(s.named, i, i+1)
	if s.activeID == id {
		s.activeID = ""
	}
	return nil
}

// EnterEdit switches to editing and remembers the buffer so Discard can
// restore it. An empty buffer is seeded with the store defaults. Calling it
// while already editing does nothing.
func (s *Store) EnterEdit() error {
	if s.mode == ModeEditing {
		return nil
	}
	seeded := make([]models.LayoutElement, 0, len(s.defaults))
	if len(s.elements) == 0 {
		for i, spec := range s.defaults {
			el, err := models.NewElement(spec)
			if err != nil {
				return err
			}
			el.Order = i
			seeded = append(seeded, el)
		}
	}
	s.checkpoint = models.CloneElements(s.elements)
	if len(seeded) > 0 {
		s.elements = seeded
	}
	s.mode = ModeEditing
	return nil
}

// Save leaves editing mode and persists the buffer into the registry. With
// no active named layout the buffer is saved as a new one called name;
// otherwise the active layout is re-saved under its id, renamed when name
// is not blank. On error the store stays in editing mode.
func (s *Store) Save(name string) (models.CustomLayout, error) {
	if s.mode != ModeEditing {
		return models.CustomLayout{}, &models.StateError{Op: "save", Mode: string(s.mode)}
	}

	var saved models.CustomLayout
	if i := s.indexNamed(s.activeID); i >= 0 {
		l := &s.named[i]
		l.Elements = models.CloneElements(s.elements)
		if n := strings.TrimSpace(name); n != "" {
			l.Name = n
		}
		saved = l.Clone()
	} else {
		l, err := s.SaveAsNamed(name)
		if err != nil {
			return models.CustomLayout{}, err
		}
		saved = l
	}

	s.mode = ModeViewing
	s.checkpoint = nil
	return saved, nil
}

// Discard leaves editing mode and restores the buffer captured by
// EnterEdit.
func (s *Store) Discard() error {
	if s.mode != ModeEditing {
		return &models.StateError{Op: "discard", Mode: string(s.mode)}
	}
	s.elements = s.checkpoint
	if s.elements == nil {
		s.elements = []models.LayoutElement{}
	}
	s.checkpoint = nil
	s.mode = ModeViewing
	return nil
}

func (s *Store) requireEditing(op string) error {
	if s.mode != ModeEditing {
		return &models.StateError{Op: op, Mode: string(s.mode)}
	}
	return nil
}

func (s *Store) indexNamed(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.named, func(l models.CustomLayout) bool { return l.ID == id })
}

// renumber rewrites Order to each element's index.
func renumber(els []models.LayoutElement) {
	for i := range els {
		els[i].Order = i
	}
}
