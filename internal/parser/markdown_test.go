package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docprox/internal/normalize"
)

func TestMarkdownParser_TitleAndWords(t *testing.T) {
	input := `# Shipping Intelligence

The *Mary* was lost off Dover.

## Casualties

- Two seamen drowned.
`
	p := &MarkdownParser{Strategy: normalize.Lowercase}
	doc, err := p.Parse(strings.NewReader(input), "gazette.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Meta.Title != "Shipping Intelligence" {
		t.Errorf("expected title %q, got %q", "Shipping Intelligence", doc.Meta.Title)
	}

	var got []string
	for _, w := range doc.Words {
		got = append(got, w.Canonical)
	}
	want := []string{"shipping", "intelligence", "the", "mary", "was", "lost", "off", "dover", "casualties", "two", "seamen", "drowned"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("expected words %v, got %v", want, got)
	}
}

func TestMarkdownParser_NoHeadingUsesFilename(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Just a paragraph."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", doc.Meta.Title)
	}
	if doc.Len() != 3 {
		t.Errorf("expected 3 words, got %d", doc.Len())
	}
}

func TestMarkdownParser_ParagraphTextNotDuplicated(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("fire ship"), "dup.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", doc.Len())
	}
}
