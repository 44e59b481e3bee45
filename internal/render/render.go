// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns layout elements into HTML. Each element type has
// its own template; hero and text content goes through the markdown
// package first. Full documents are served for normal requests and bare
// fragments for HTMX requests, detected via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/markdown"
	"storefront/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// sizeClasses maps element sizes to width classes.
var sizeClasses = map[models.Size]string{
	models.SizeSmall:  "max-w-md",
	models.SizeMedium: "max-w-2xl",
	models.SizeLarge:  "max-w-4xl",
	models.SizeFull:   "w-full",
}

// columnClasses maps grid column counts to responsive column classes.
var columnClasses = map[int]string{
	1: "md:grid-cols-1",
	2: "md:grid-cols-2",
	3: "md:grid-cols-3",
	4: "md:grid-cols-2 lg:grid-cols-4",
	5: "md:grid-cols-3 lg:grid-cols-5",
	6: "md:grid-cols-3 lg:grid-cols-6",
}

// defaultColumns applies to grids saved without a column count.
const defaultColumns = 3

// Renderer executes the element templates.
type Renderer struct {
	tmpl    *template.Template
	catalog *catalog.Catalog
}

// New parses the embedded templates. The catalog supplies the products
// shown by products elements.
func New(cat *catalog.Catalog) (*Renderer, error) {
	funcs := template.FuncMap{
		"price": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}
	tmpl, err := template.New("render").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, catalog: cat}, nil
}

// elementView is the data handed to an element template.
type elementView struct {
	ID           string
	Classes      string
	Content      template.HTML
	ImageURL     string
	Items        []models.LayoutItem
	ColumnsClass string
	Products     []models.Product
}

// Element renders one element.
func (r *Renderer) Element(el models.LayoutElement) (template.HTML, error) {
	size := el.Size
	if _, ok := sizeClasses[size]; !ok {
		size = models.SizeMedium
	}
	v := elementView{
		ID:      el.ID,
		Classes: "mb-8 p-6 rounded-2xl mx-auto " + sizeClasses[size],
		Items:   el.Items(),
	}
	if el.Background != "" {
		v.Classes += " " + el.Background
	}

	switch b := el.Body.(type) {
	case models.HeroBody:
		html, err := markdown.Inline(b.Content)
		if err != nil {
			return "", fmt.Errorf("render hero %s: %w", el.ID, err)
		}
		v.Content = template.HTML(html)
	case models.TextBody:
		html, err := markdown.ToHTML(b.Content)
		if err != nil {
			return "", fmt.Errorf("render text %s: %w", el.ID, err)
		}
		v.Content = template.HTML(html)
	case models.ImageBody:
		v.ImageURL = b.ImageURL
	case models.ProductsBody:
		if r.catalog != nil {
			v.Products = r.catalog.GetFeatured()
		}
	case models.GridBody:
		cols := b.Columns
		if cols == 0 {
			cols = defaultColumns
		}
		v.ColumnsClass = columnClasses[cols]
	case nil:
		return "", fmt.Errorf("render element %s: missing body", el.ID)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(el.Type()), v); err != nil {
		return "", fmt.Errorf("render %s %s: %w", el.Type(), el.ID, err)
	}
	return template.HTML(buf.String()), nil
}

// Page renders the elements in order inside the page container.
func (r *Renderer) Page(elements []models.LayoutElement) (template.HTML, error) {
	parts := make([]template.HTML, 0, len(elements))
	for _, el := range elements {
		html, err := r.Element(el)
		if err != nil {
			return "", err
		}
		parts = append(parts, html)
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", parts); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Document is a full HTML page around a rendered layout.
type Document struct {
	Title    string
	Theme    string
	ThemeCSS template.CSS
	Body     template.HTML
}

// Serve renders elements and writes them to w: the bare page fragment for
// HTMX requests, a full document otherwise.
func (r *Renderer) Serve(w http.ResponseWriter, req *http.Request, doc Document, elements []models.LayoutElement) {
	body, err := r.Page(elements)
	if err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(req) {
		w.Write([]byte(body))
		return
	}

	doc.Body = body
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "document", doc); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	buf.WriteTo(w)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
