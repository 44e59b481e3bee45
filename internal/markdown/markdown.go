// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts the Markdown text of layout elements into HTML
// using goldmark. Element content is written by shoppers, so raw HTML in
// the source is never passed through.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks, task lists
		extension.Typographer, // smart quotes and dashes
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML in the source is
// replaced by goldmark's "raw HTML omitted" comment.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Inline converts a single line of Markdown, such as a headline, and
// strips the paragraph wrapper so the result can sit inside another block
// element. Multi-block source is returned as converted.
func Inline(source string) (string, error) {
	out, err := ToHTML(source)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(out)
	inner, ok := strings.CutPrefix(trimmed, "<p>")
	if !ok {
		return out, nil
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok || strings.Contains(inner, "<p>") {
		return out, nil
	}
	return inner, nil
}
