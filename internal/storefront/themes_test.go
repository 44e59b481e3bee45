package storefront

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/models"
)

func sunset() models.CustomTheme {
	return models.CustomTheme{
		Name:            "Sunset",
		PrimaryColor:    "#F97316",
		SecondaryColor:  "#FB7185",
		AccentColor:     "#FACC15",
		BackgroundColor: "#FFF7ED",
		TextColor:       "#1C1917",
	}
}

func TestCustomThemeLifecycle(t *testing.T) {
	st, backend, _ := testState(t)
	ctx := context.Background()

	theme, err := st.AddCustomTheme(ctx, sunset())
	if err != nil {
		t.Fatalf("AddCustomTheme: %v", err)
	}
	if theme.ID == "" || theme.CreatedAt.IsZero() {
		t.Errorf("theme should get id and timestamp: %+v", theme)
	}
	if st.ThemeCSS() != "" {
		t.Error("adding a theme must not apply it")
	}

	if err := st.ApplyCustomTheme(ctx, theme.ID); err != nil {
		t.Fatalf("ApplyCustomTheme: %v", err)
	}
	if st.Theme() != "theme-custom-"+theme.ID {
		t.Errorf("theme: got %q", st.Theme())
	}
	css := st.ThemeCSS()
	for _, want := range []string{":root {", "--custom-primary: #F97316;", "--custom-text: #1C1917;"} {
		if !strings.Contains(css, want) {
			t.Errorf("ThemeCSS missing %q:\n%s", want, css)
		}
	}

	again := reopen(t, backend)
	if again.Theme() != st.Theme() || again.ThemeCSS() != css {
		t.Error("applied custom theme should survive a reload")
	}

	if err := st.DeleteCustomTheme(ctx, theme.ID); err != nil {
		t.Fatalf("DeleteCustomTheme: %v", err)
	}
	if st.Theme() != models.DefaultTheme {
		t.Errorf("deleting the active theme should restore the default, got %q", st.Theme())
	}
	if len(st.CustomThemes()) != 0 {
		t.Error("theme not removed")
	}
}

func TestCustomThemeValidation(t *testing.T) {
	st, _, rec := testState(t)
	ctx := context.Background()

	nameless := sunset()
	nameless.Name = " "
	var verr *models.ValidationError
	if _, err := st.AddCustomTheme(ctx, nameless); !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("expected name ValidationError, got %v", err)
	}
	if toasts := rec.Drain(); len(toasts) != 1 || toasts[0].Title != "Name required" {
		t.Errorf("toasts: %+v", toasts)
	}

	badColor := sunset()
	badColor.AccentColor = "yellow"
	if _, err := st.AddCustomTheme(ctx, badColor); !errors.As(err, &verr) || verr.Field != "accentColor" {
		t.Errorf("expected accentColor ValidationError, got %v", err)
	}

	var nerr *models.NotFoundError
	if err := st.ApplyCustomTheme(ctx, "nope"); !errors.As(err, &nerr) {
		t.Errorf("ApplyCustomTheme: expected NotFoundError, got %v", err)
	}
	if err := st.DeleteCustomTheme(ctx, "nope"); !errors.As(err, &nerr) {
		t.Errorf("DeleteCustomTheme: expected NotFoundError, got %v", err)
	}
}

func TestSetThemeAcceptsCustomKey(t *testing.T) {
	st, _, _ := testState(t)
	ctx := context.Background()

	theme, err := st.AddCustomTheme(ctx, sunset())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SetTheme(ctx, theme.ThemeKey()); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if _, ok := st.ActiveCustomTheme(); !ok {
		t.Error("custom theme should be active")
	}
}
