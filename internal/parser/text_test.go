package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docprox/internal/normalize"
)

func TestTextParser_WordsInReadingOrder(t *testing.T) {
	input := "A FIRE broke out\non board the ship.\n\nNobody was hurt."
	p := &TextParser{Strategy: normalize.Lowercase}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Meta.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Meta.Title)
	}
	want := []string{"A", "FIRE", "broke", "out", "on", "board", "the", "ship.", "Nobody", "was", "hurt."}
	if doc.Len() != len(want) {
		t.Fatalf("expected %d words, got %d", len(want), doc.Len())
	}
	for i, w := range want {
		if doc.Words[i].Text != w {
			t.Errorf("word[%d]: expected %q, got %q", i, w, doc.Words[i].Text)
		}
		if doc.Words[i].Position != i {
			t.Errorf("word[%d]: expected position %d, got %d", i, i, doc.Words[i].Position)
		}
	}
	if doc.Words[7].Canonical != "ship" {
		t.Errorf("expected canonical %q, got %q", "ship", doc.Words[7].Canonical)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Meta.Title)
	}
	if doc.Len() != 0 {
		t.Errorf("expected 0 words for empty input, got %d", doc.Len())
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace contribute no words.
	input := "one\n   \n\t\ntwo"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", doc.Len())
	}
}
