package document

import (
	"testing"

	"github.com/dgallion1/docprox/internal/normalize"
)

func TestNew_AssignsPositionsAndCanonicalForms(t *testing.T) {
	raw := []RawWord{
		{Text: "The"},
		{Absent: true},
		{Text: "Ships,"},
	}
	doc := New("a.xml", Metadata{Title: "Gazette"}, raw, normalize.Lemmatize)

	if doc.Len() != 3 {
		t.Fatalf("expected 3 words, got %d", doc.Len())
	}
	for i, w := range doc.Words {
		if w.Position != i {
			t.Errorf("word %d: expected position %d, got %d", i, i, w.Position)
		}
	}
	if doc.Words[1].Canonical != "" {
		t.Errorf("absent word must have no canonical form, got %q", doc.Words[1].Canonical)
	}
	if doc.Words[2].Canonical != "ship" {
		t.Errorf("expected canonical %q, got %q", "ship", doc.Words[2].Canonical)
	}
	if doc.Words[2].Text != "Ships," {
		t.Errorf("raw text must be preserved, got %q", doc.Words[2].Text)
	}
	if doc.Strategy != normalize.Lemmatize {
		t.Errorf("expected strategy %q, got %q", normalize.Lemmatize, doc.Strategy)
	}
}

func TestSlice_ClampsBounds(t *testing.T) {
	doc := New("a", Metadata{}, []RawWord{{Text: "a"}, {Absent: true}, {Text: "c"}}, normalize.None)

	got := doc.Slice(-5, 10)
	want := []string{"a", "", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d words, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if len(doc.Slice(2, 1)) != 0 {
		t.Error("expected empty slice for inverted bounds")
	}
}

func TestOutcome_Variants(t *testing.T) {
	doc := New("ok.xml", Metadata{}, nil, normalize.None)
	outcomes := []Outcome{
		&Parsed{Doc: doc},
		&Failure{ID: "bad.xml", Kind: FailureSchema, Message: "not an article"},
	}
	var parsed, failed int
	for _, o := range outcomes {
		switch v := o.(type) {
		case *Parsed:
			parsed++
			if v.Source() != "ok.xml" {
				t.Errorf("expected source ok.xml, got %q", v.Source())
			}
		case *Failure:
			failed++
			if v.Source() != "bad.xml" {
				t.Errorf("expected source bad.xml, got %q", v.Source())
			}
		}
	}
	if parsed != 1 || failed != 1 {
		t.Errorf("expected one of each variant, got parsed=%d failed=%d", parsed, failed)
	}
}
