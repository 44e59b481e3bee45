// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"regexp"
	"strings"
	"time"
)

// Built-in theme identifiers. Custom themes are selected as
// CustomThemePrefix + theme id.
const (
	ThemeLightFrost   = "theme-light-frost"
	ThemeDarkNebula   = "theme-dark-nebula"
	ThemeTwilightGlow = "theme-twilight-glow"

	CustomThemePrefix = "theme-custom-"

	DefaultTheme = ThemeLightFrost
)

// BuiltinThemes lists the themes that ship with the storefront.
var BuiltinThemes = []string{ThemeLightFrost, ThemeDarkNebula, ThemeTwilightGlow}

// CustomTheme is a user-defined color palette.
type CustomTheme struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PrimaryColor    string    `json:"primaryColor"`
	SecondaryColor  string    `json:"secondaryColor"`
	AccentColor     string    `json:"accentColor"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ThemeKey returns the theme identifier that selects this palette.
func (t CustomTheme) ThemeKey() string {
	return CustomThemePrefix + t.ID
}

// hexColor matches #rgb and #rrggbb.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the name and the five palette colors.
func (t CustomTheme) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Message: "theme name is required"}
	}
	colors := []struct{ field, value string }{
		{"primaryColor", t.PrimaryColor},
		{"secondaryColor", t.SecondaryColor},
		{"accentColor", t.AccentColor},
		{"backgroundColor", t.BackgroundColor},
		{"textColor", t.TextColor},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return &ValidationError{Field: c.field, Message: "must be a hex color like #8B5CF6"}
		}
	}
	return nil
}
