package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"emphasis", "Hello *world*", "<p>Hello <em>world</em></p>"},
		{"heading id", "## Summer sale", `<h2 id="summer-sale">Summer sale</h2>`},
		{"strikethrough", "~~old~~ new", "<del>old</del>"},
		{"autolink", "see https://example.com", `<a href="https://example.com">https://example.com</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.in)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToHTMLDropsRawHTML(t *testing.T) {
	got, err := ToHTML(`<script>alert("x")</script>` + "\n\nafter")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
	if !strings.Contains(got, "after") {
		t.Errorf("surrounding text lost: %q", got)
	}
}

func TestInline(t *testing.T) {
	got, err := Inline("Welcome to **Your** Layout")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Welcome to <strong>Your</strong> Layout" {
		t.Errorf("Inline: got %q", got)
	}

	multi, err := Inline("one\n\ntwo")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(multi, "<p>") != 2 {
		t.Errorf("multi-paragraph source should keep its wrappers: %q", multi)
	}
}
