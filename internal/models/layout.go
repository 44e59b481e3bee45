// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ElementType identifies the visual block a layout element renders as.
type ElementType string

const (
	ElementHero     ElementType = "hero"
	ElementText     ElementType = "text"
	ElementImage    ElementType = "image"
	ElementProducts ElementType = "products"
	ElementBanner   ElementType = "banner"
	ElementSpacer   ElementType = "spacer"
	ElementGrid     ElementType = "grid"
	ElementBento    ElementType = "bento"
	ElementMarquee  ElementType = "marquee"
	ElementCarousel ElementType = "carousel"
)

// ElementTypes lists every element type in builder menu order.
var ElementTypes = []ElementType{
	ElementHero, ElementText, ElementImage, ElementProducts, ElementBanner,
	ElementSpacer, ElementGrid, ElementBento, ElementMarquee, ElementCarousel,
}

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	return slices.Contains(ElementTypes, t)
}

// RequiresItems reports whether elements of this type need a non-empty
// item list.
func (t ElementType) RequiresItems() bool {
	switch t {
	case ElementGrid, ElementBento, ElementMarquee, ElementCarousel:
		return true
	}
	return false
}

// Size controls how wide an element renders.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeFull   Size = "full"
)

// Valid reports whether s is one of the known sizes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeFull:
		return true
	}
	return false
}

// LayoutItem is one entry inside a grid, bento, marquee or carousel element.
type LayoutItem struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Content  string `json:"content,omitempty"`
}

// ElementBody is the type-specific part of a layout element. The set of
// implementations is closed to this package.
type ElementBody interface {
	Type() ElementType
	clone() ElementBody
}

type (
	// HeroBody is a large headline block.
	HeroBody struct{ Content string }
	// TextBody is a paragraph block.
	TextBody struct{ Content string }
	// ImageBody shows a single image.
	ImageBody struct{ ImageURL string }
	// ProductsBody shows the featured products.
	ProductsBody struct{}
	// BannerBody shows the promotional banner.
	BannerBody struct{}
	// SpacerBody adds vertical whitespace.
	SpacerBody struct{}
	// GridBody lays items out in Columns columns (0 means the renderer default).
	GridBody struct {
		Items   []LayoutItem
		Columns int
	}
	// BentoBody lays items out as an asymmetric tile mosaic.
	BentoBody struct{ Items []LayoutItem }
	// MarqueeBody scrolls items horizontally.
	MarqueeBody struct{ Items []LayoutItem }
	// CarouselBody pages through items one at a time.
	CarouselBody struct{ Items []LayoutItem }
)

func (HeroBody) Type() ElementType     { return ElementHero }
func (TextBody) Type() ElementType     { return ElementText }
func (ImageBody) Type() ElementType    { return ElementImage }
func (ProductsBody) Type() ElementType { return ElementProducts }
func (BannerBody) Type() ElementType   { return ElementBanner }
func (SpacerBody) Type() ElementType   { return ElementSpacer }
func (GridBody) Type() ElementType     { return ElementGrid }
func (BentoBody) Type() ElementType    { return ElementBento }
func (MarqueeBody) Type() ElementType  { return ElementMarquee }
func (CarouselBody) Type() ElementType { return ElementCarousel }

func (b HeroBody) clone() ElementBody     { return b }
func (b TextBody) clone() ElementBody     { return b }
func (b ImageBody) clone() ElementBody    { return b }
func (b ProductsBody) clone() ElementBody { return b }
func (b BannerBody) clone() ElementBody   { return b }
func (b SpacerBody) clone() ElementBody   { return b }
func (b GridBody) clone() ElementBody {
	return GridBody{Items: slices.Clone(b.Items), Columns: b.Columns}
}
func (b BentoBody) clone() ElementBody    { return BentoBody{Items: slices.Clone(b.Items)} }
func (b MarqueeBody) clone() ElementBody  { return MarqueeBody{Items: slices.Clone(b.Items)} }
func (b CarouselBody) clone() ElementBody { return CarouselBody{Items: slices.Clone(b.Items)} }

// LayoutElement is one block of a custom layout. Order is its position in
// the owning collection and is maintained by the layout store.
type LayoutElement struct {
	ID         string
	Order      int
	Size       Size
	Background string
	Body       ElementBody
}

// Type returns the element's variant tag.
func (e LayoutElement) Type() ElementType {
	if e.Body == nil {
		return ""
	}
	return e.Body.Type()
}

// Items returns the element's item list, or nil for variants without items.
func (e LayoutElement) Items() []LayoutItem {
	switch b := e.Body.(type) {
	case GridBody:
		return b.Items
	case BentoBody:
		return b.Items
	case MarqueeBody:
		return b.Items
	case CarouselBody:
		return b.Items
	}
	return nil
}

// Clone returns a deep copy of the element.
func (e LayoutElement) Clone() LayoutElement {
	if e.Body != nil {
		e.Body = e.Body.clone()
	}
	return e
}

// CloneElements deep-copies a slice of elements. A nil input yields an
// empty, non-nil slice so serialized collections are always arrays.
func CloneElements(src []LayoutElement) []LayoutElement {
	out := make([]LayoutElement, len(src))
	for i, el := range src {
		out[i] = el.Clone()
	}
	return out
}

// ElementSpec is the caller-supplied description of a new element. Only
// the fields relevant to Type are used.
type ElementSpec struct {
	Type       ElementType  `json:"type"`
	Size       Size         `json:"size,omitempty"`
	Content    string       `json:"content,omitempty"`
	ImageURL   string       `json:"imageUrl,omitempty"`
	Background string       `json:"background,omitempty"`
	Items      []LayoutItem `json:"items,omitempty"`
	Columns    int          `json:"columns,omitempty"`
}

// maxColumns bounds grid columns to what the renderer has classes for.
const maxColumns = 6

// NewElement validates spec and builds an element with a fresh id. Order is
// left at zero; the store assigns it on insertion.
func NewElement(spec ElementSpec) (LayoutElement, error) {
	if spec.Size == "" {
		spec.Size = SizeMedium
	}
	if err := checkFields(spec.Type, spec.Size, spec.ImageURL, spec.Items, spec.Columns); err != nil {
		return LayoutElement{}, err
	}

	return LayoutElement{
		ID:         uuid.NewString(),
		Size:       spec.Size,
		Background: strings.TrimSpace(spec.Background),
		Body:       buildBody(spec.Type, spec.Content, spec.ImageURL, fillItemIDs(spec.Items), spec.Columns),
	}, nil
}

// ValidateElement applies the NewElement rules to an element that already
// exists, such as one decoded from an imported document. The id is not
// checked here; uniqueness is a property of the owning collection.
func ValidateElement(el LayoutElement) error {
	var (
		imageURL string
		columns  int
	)
	switch b := el.Body.(type) {
	case ImageBody:
		imageURL = b.ImageURL
	case GridBody:
		columns = b.Columns
	}
	return checkFields(el.Type(), el.Size, imageURL, el.Items(), columns)
}

func checkFields(t ElementType, size Size, imageURL string, items []LayoutItem, columns int) error {
	if !t.Valid() {
		return &ValidationError{Field: "type", Message: "unknown element type " + string(t)}
	}
	if !size.Valid() {
		return &ValidationError{Field: "size", Message: "unknown size " + string(size)}
	}
	if t.RequiresItems() && len(items) == 0 {
		return &ValidationError{Field: "items", Message: string(t) + " requires at least one item"}
	}
	if t == ElementGrid && (columns < 0 || columns > maxColumns) {
		return &ValidationError{Field: "columns", Message: "must be between 1 and 6"}
	}
	if t == ElementImage && strings.TrimSpace(imageURL) == "" {
		return &ValidationError{Field: "imageUrl", Message: "image requires a URL"}
	}
	return nil
}

// fillItemIDs copies items, giving a fresh id to any item without one.
func fillItemIDs(src []LayoutItem) []LayoutItem {
	items := slices.Clone(src)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
	return items
}

// buildBody maps flat fields onto the variant for t. It performs no
// validation so it can also rebuild previously persisted elements.
func buildBody(t ElementType, content, imageURL string, items []LayoutItem, columns int) ElementBody {
	switch t {
	case ElementHero:
		return HeroBody{Content: content}
	case ElementText:
		return TextBody{Content: content}
	case ElementImage:
		return ImageBody{ImageURL: imageURL}
	case ElementProducts:
		return ProductsBody{}
	case ElementBanner:
		return BannerBody{}
	case ElementSpacer:
		return SpacerBody{}
	case ElementGrid:
		return GridBody{Items: items, Columns: columns}
	case ElementBento:
		return BentoBody{Items: items}
	case ElementMarquee:
		return MarqueeBody{Items: items}
	case ElementCarousel:
		return CarouselBody{Items: items}
	}
	return nil
}
