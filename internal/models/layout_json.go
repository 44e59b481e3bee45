// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
)

// wireElement is the flat, type-tagged JSON shape of a layout element. It
// matches the format the storefront has always written to local storage.
type wireElement struct {
	ID         string       `json:"id"`
	Type       ElementType  `json:"type"`
	Order      int          `json:"order"`
	Size       Size         `json:"size,omitempty"`
	Content    string       `json:"content,omitempty"`
	ImageURL   string       `json:"imageUrl,omitempty"`
	Background string       `json:"background,omitempty"`
	Items      []LayoutItem `json:"items,omitempty"`
	Columns    int          `json:"columns,omitempty"`
}

// MarshalJSON flattens the variant body into the tagged wire shape.
func (e LayoutElement) MarshalJSON() ([]byte, error) {
	w := wireElement{
		ID:         e.ID,
		Type:       e.Type(),
		Order:      e.Order,
		Size:       e.Size,
		Background: e.Background,
	}
	switch b := e.Body.(type) {
	case HeroBody:
		w.Content = b.Content
	case TextBody:
		w.Content = b.Content
	case ImageBody:
		w.ImageURL = b.ImageURL
	case GridBody:
		w.Items = b.Items
		w.Columns = b.Columns
	case BentoBody:
		w.Items = b.Items
	case MarqueeBody:
		w.Items = b.Items
	case CarouselBody:
		w.Items = b.Items
	case nil:
		return nil, fmt.Errorf("marshal layout element %s: missing body", e.ID)
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the variant body from the tagged wire shape.
// Fields that do not belong to the variant are dropped. Decoding is lenient
// about per-type requirements so previously saved layouts keep loading.
func (e *LayoutElement) UnmarshalJSON(data []byte) error {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("layout element %s: unknown type %q", w.ID, w.Type)
	}
	if w.Size == "" || !w.Size.Valid() {
		w.Size = SizeMedium
	}
	*e = LayoutElement{
		ID:         w.ID,
		Order:      w.Order,
		Size:       w.Size,
		Background: w.Background,
		Body:       buildBody(w.Type, w.Content, w.ImageURL, w.Items, w.Columns),
	}
	return nil
}
