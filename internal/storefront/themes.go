// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/persist"
)

// CustomThemes returns copies of the saved custom themes in creation order.
func (s *State) CustomThemes() []models.CustomTheme { return slices.Clone(s.themes) }

// AddCustomTheme validates t, assigns it an id and creation time, and
// appends it to the saved themes. The theme is not applied.
func (s *State) AddCustomTheme(ctx context.Context, t models.CustomTheme) (models.CustomTheme, error) {
	t.Name = strings.TrimSpace(t.Name)
	if err := t.Validate(); err != nil {
		title := "Invalid theme"
		var verr *models.ValidationError
		if errors.As(err, &verr) && verr.Field == "name" {
			title = "Name required"
		}
		return models.CustomTheme{}, s.reject(ctx, title, err)
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	themes := append(slices.Clone(s.themes), t)
	if err := s.saveThemes(ctx, themes); err != nil {
		return models.CustomTheme{}, s.reject(ctx, "Could not save theme", err)
	}
	s.toast(ctx, "Theme created", fmt.Sprintf("%q has been added to your themes", t.Name))
	return t, nil
}

// DeleteCustomTheme removes a saved theme. Deleting the active theme
// switches the store back to the default theme.
func (s *State) DeleteCustomTheme(ctx context.Context, id string) error {
	i := s.indexTheme(id)
	if i < 0 {
		return s.reject(ctx, "Theme not found", &models.NotFoundError{Kind: "theme", ID: id})
	}
	removed := s.themes[i]
	prev := s.themes
	if err := s.saveThemes(ctx, slices.Delete(slices.Clone(s.themes), i, i+1)); err != nil {
		return s.reject(ctx, "Could not delete theme", err)
	}
	if s.theme == removed.ThemeKey() {
		if err := s.adapter.SaveString(ctx, persist.KeyTheme, models.DefaultTheme); err != nil {
			_ = s.adapter.Save(ctx, persist.KeyCustomThemes, prev)
			s.themes = prev
			return s.reject(ctx, "Could not delete theme", err)
		}
		s.theme = models.DefaultTheme
	}
	s.toast(ctx, "Theme deleted", fmt.Sprintf("%q has been deleted", removed.Name))
	return nil
}

// ApplyCustomTheme makes the saved theme with id the active theme.
func (s *State) ApplyCustomTheme(ctx context.Context, id string) error {
	i := s.indexTheme(id)
	if i < 0 {
		return s.reject(ctx, "Theme not found", &models.NotFoundError{Kind: "theme", ID: id})
	}
	t := s.themes[i]
	if err := s.adapter.SaveString(ctx, persist.KeyTheme, t.ThemeKey()); err != nil {
		return s.reject(ctx, "Could not apply theme", err)
	}
	s.theme = t.ThemeKey()
	s.toast(ctx, "Theme applied", fmt.Sprintf("%q has been applied to your store", t.Name))
	return nil
}

// ActiveCustomTheme returns the custom theme selected by the current theme
// identifier, if the identifier names one.
func (s *State) ActiveCustomTheme() (models.CustomTheme, bool) {
	id, ok := strings.CutPrefix(s.theme, models.CustomThemePrefix)
	if !ok {
		return models.CustomTheme{}, false
	}
	i := s.indexTheme(id)
	if i < 0 {
		return models.CustomTheme{}, false
	}
	return s.themes[i], true
}

// ThemeCSS returns a :root rule declaring the active custom theme's colors
// as CSS custom properties. It is empty when no custom theme is active.
func (s *State) ThemeCSS() string {
	t, ok := s.ActiveCustomTheme()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --custom-primary: %s;\n", t.PrimaryColor)
	fmt.Fprintf(&b, "  --custom-secondary: %s;\n", t.SecondaryColor)
	fmt.Fprintf(&b, "  --custom-accent: %s;\n", t.AccentColor)
	fmt.Fprintf(&b, "  --custom-background: %s;\n", t.BackgroundColor)
	fmt.Fprintf(&b, "  --custom-text: %s;\n", t.TextColor)
	b.WriteString("}\n")
	return b.String()
}

func (s *State) saveThemes(ctx context.Context, themes []models.CustomTheme) error {
	if err := s.adapter.Save(ctx, persist.KeyCustomThemes, themes); err != nil {
		return err
	}
	s.themes = themes
	return nil
}

func (s *State) indexTheme(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.themes, func(t models.CustomTheme) bool { return t.ID == id })
}
