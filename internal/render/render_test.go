package render

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New(catalog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rn
}

func mustElement(t *testing.T, spec models.ElementSpec) models.LayoutElement {
	t.Helper()
	el, err := models.NewElement(spec)
	if err != nil {
		t.Fatalf("NewElement(%s): %v", spec.Type, err)
	}
	return el
}

// --------------------------------------------------------------------------
// Element: one template per variant
// --------------------------------------------------------------------------

func TestElementVariants(t *testing.T) {
	rn := newRenderer(t)
	items := []models.LayoutItem{{Title: "Tile one", ImageURL: "https://example.com/a.jpg"}, {Title: "Tile two"}}

	tests := []struct {
		name string
		spec models.ElementSpec
		want []string
	}{
		{"hero", models.ElementSpec{Type: models.ElementHero, Size: models.SizeFull, Content: "Hello **there**"},
			[]string{`data-type="hero"`, "w-full", "<h1", "Hello <strong>there</strong>"}},
		{"text", models.ElementSpec{Type: models.ElementText, Content: "Plain *words*"},
			[]string{`data-type="text"`, "max-w-2xl", "<em>words</em>"}},
		{"image", models.ElementSpec{Type: models.ElementImage, Size: models.SizeSmall, ImageURL: "https://example.com/pic.jpg"},
			[]string{`src="https://example.com/pic.jpg"`, "max-w-md"}},
		{"products", models.ElementSpec{Type: models.ElementProducts},
			[]string{"Featured Products", "Classic Round Glasses", "$129.99"}},
		{"banner", models.ElementSpec{Type: models.ElementBanner, Size: models.SizeLarge},
			[]string{"CUSTOM20", "max-w-4xl"}},
		{"spacer", models.ElementSpec{Type: models.ElementSpacer},
			[]string{"h-16"}},
		{"grid", models.ElementSpec{Type: models.ElementGrid, Items: items, Columns: 2},
			[]string{"md:grid-cols-2", "Tile one", "Tile two", `src="https://example.com/a.jpg"`}},
		{"grid default columns", models.ElementSpec{Type: models.ElementGrid, Items: items},
			[]string{"md:grid-cols-3"}},
		{"bento", models.ElementSpec{Type: models.ElementBento, Items: items},
			[]string{`data-type="bento"`, "md:col-span-2"}},
		{"marquee", models.ElementSpec{Type: models.ElementMarquee, Items: items},
			[]string{"animate-marquee", "Tile two"}},
		{"carousel", models.ElementSpec{Type: models.ElementCarousel, Items: items},
			[]string{"snap-x", "Tile one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := rn.Element(mustElement(t, tt.spec))
			if err != nil {
				t.Fatalf("Element: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(html), want) {
					t.Errorf("output missing %q:\n%s", want, html)
				}
			}
		})
	}
}

func TestProductsShowsFeaturedOnly(t *testing.T) {
	rn := newRenderer(t)
	html, err := rn.Element(mustElement(t, models.ElementSpec{Type: models.ElementProducts}))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(html), "product-card"); n != 4 {
		t.Errorf("product cards: got %d, want 4", n)
	}
}

// --------------------------------------------------------------------------
// Escaping: user content never reaches the page as markup
// --------------------------------------------------------------------------

func TestElementEscapesUserInput(t *testing.T) {
	rn := newRenderer(t)

	text := mustElement(t, models.ElementSpec{Type: models.ElementText, Content: "<script>alert(1)</script>\n\nok"})
	html, err := rn.Element(text)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Errorf("script tag passed through:\n%s", html)
	}

	img := mustElement(t, models.ElementSpec{Type: models.ElementImage, ImageURL: "javascript:alert(1)"})
	html, err = rn.Element(img)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(html), "javascript:") {
		t.Errorf("unsafe URL passed through:\n%s", html)
	}

	bg := mustElement(t, models.ElementSpec{Type: models.ElementSpacer, Background: `x" onclick="evil()`})
	html, err = rn.Element(bg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(html), `onclick="evil()"`) {
		t.Errorf("attribute injection:\n%s", html)
	}
}

// --------------------------------------------------------------------------
// Page and Serve
// --------------------------------------------------------------------------

func TestPageKeepsOrder(t *testing.T) {
	rn := newRenderer(t)
	els := []models.LayoutElement{
		mustElement(t, models.ElementSpec{Type: models.ElementText, Content: "first"}),
		mustElement(t, models.ElementSpec{Type: models.ElementBanner}),
		mustElement(t, models.ElementSpec{Type: models.ElementText, Content: "last"}),
	}
	html, err := rn.Page(els)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	out := string(html)
	a, b, c := strings.Index(out, "first"), strings.Index(out, "CUSTOM20"), strings.Index(out, "last")
	if a < 0 || b < a || c < b {
		t.Errorf("elements out of order:\n%s", out)
	}
}

func TestPageEmpty(t *testing.T) {
	rn := newRenderer(t)
	html, err := rn.Page(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "<main") {
		t.Errorf("empty page should still render the container: %s", html)
	}
}

func TestServe(t *testing.T) {
	rn := newRenderer(t)
	els := []models.LayoutElement{mustElement(t, models.ElementSpec{Type: models.ElementHero, Content: "Hi"})}
	doc := Document{
		Title:    "Landing",
		Theme:    "theme-custom-abc",
		ThemeCSS: template.CSS(":root { --custom-primary: #8B5CF6; }"),
	}

	tests := []struct {
		name     string
		htmx     bool
		want     []string
		wantNone []string
	}{
		{"full document", false, []string{"<!DOCTYPE html>", `class="theme-custom-abc"`, "--custom-primary: #8B5CF6", "<title>Landing</title>", "Hi"}, nil},
		{"htmx fragment", true, []string{"<main", "Hi"}, []string{"<!DOCTYPE html>", "<title>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/pages/landing", nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rec := httptest.NewRecorder()
			rn.Serve(rec, req, doc, els)

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("content type: %q", ct)
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q:\n%s", w, body)
				}
			}
			for _, w := range tt.wantNone {
				if strings.Contains(body, w) {
					t.Errorf("body should not contain %q", w)
				}
			}
		})
	}
}
