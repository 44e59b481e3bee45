// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// CustomLayout is a named snapshot of a layout element collection. It is
// immutable once saved; re-saving under the same id replaces it whole.
type CustomLayout struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Elements  []LayoutElement `json:"elements"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Clone returns a deep copy of the layout.
func (l CustomLayout) Clone() CustomLayout {
	l.Elements = CloneElements(l.Elements)
	return l
}

// UnmarshalJSON accepts the legacy "sections" field when "elements" is
// absent. Only "elements" is ever written.
func (l *CustomLayout) UnmarshalJSON(data []byte) error {
	type plain CustomLayout
	var aux struct {
		plain
		Sections []LayoutElement `json:"sections"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = CustomLayout(aux.plain)
	if l.Elements == nil && aux.Sections != nil {
		l.Elements = aux.Sections
	}
	if l.Elements == nil {
		l.Elements = []LayoutElement{}
	}
	return nil
}
