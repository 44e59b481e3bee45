package handlers

import (
	"strings"
	"unicode/utf8"

	"storefront/internal/models"
)

// Validation limits for request fields. The domain types check shape;
// these bound size.
const (
	maxLayoutNameLen = 100
	maxContentLen    = 20_000
	maxURLLen        = 2_048
	maxBackgroundLen = 200
	maxItems         = 50
	maxItemTitleLen  = 200
	maxThemeNameLen  = 60
	maxImportLen     = 200
)

// validateLayoutName checks a named-layout name and returns the first error found.
func validateLayoutName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Layout name is required."
	}
	if utf8.RuneCountInString(name) > maxLayoutNameLen {
		return "Layout name is too long (max 100 characters)."
	}
	return ""
}

// validateElementSpec bounds the free-text parts of a new element.
func validateElementSpec(spec models.ElementSpec) string {
	if utf8.RuneCountInString(spec.Content) > maxContentLen {
		return "Content is too long (max 20,000 characters)."
	}
	if len(spec.ImageURL) > maxURLLen {
		return "Image URL is too long (max 2,048 characters)."
	}
	if len(spec.Background) > maxBackgroundLen {
		return "Background is too long (max 200 characters)."
	}
	if len(spec.Items) > maxItems {
		return "Too many items (max 50)."
	}
	for _, it := range spec.Items {
		if utf8.RuneCountInString(it.Title) > maxItemTitleLen {
			return "Item title is too long (max 200 characters)."
		}
		if utf8.RuneCountInString(it.Content) > maxContentLen {
			return "Item content is too long (max 20,000 characters)."
		}
		if len(it.ImageURL) > maxURLLen {
			return "Item image URL is too long (max 2,048 characters)."
		}
	}
	return ""
}

// validateThemeName checks a custom theme name.
func validateThemeName(name string) string {
	if utf8.RuneCountInString(name) > maxThemeNameLen {
		return "Theme name is too long (max 60 characters)."
	}
	return ""
}

// validateImport bounds an imported element list.
func validateImport(elements []models.LayoutElement) string {
	if len(elements) > maxImportLen {
		return "Too many elements (max 200)."
	}
	return ""
}
