package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docprox/internal/matcher"
	"github.com/dgallion1/docprox/internal/normalize"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadQuery_WithDataFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "words"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "words/accident.yml", "targets:\n  - accident\n  - Accidents\nkeywords:\n  - fire\n  - ships\n")
	path := writeFile(t, dir, "query.yml", "preprocess: lemmatize\ndata: words/accident.yml\nwindow: 5\nkeywords: [storm]\n")

	q, err := LoadQuery(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := q.Matcher
	if m.Strategy != normalize.Lemmatize {
		t.Errorf("expected lemmatize, got %q", m.Strategy)
	}
	if len(m.Targets) != 1 || !m.Targets.Contains("accident") {
		t.Errorf("expected targets {accident}, got %v", m.Targets.Sorted())
	}
	for _, k := range []string{"fire", "ship", "storm"} {
		if !m.Keywords.Contains(k) {
			t.Errorf("expected keyword %q in %v", k, m.Keywords.Sorted())
		}
	}
	if m.Radius != 5 || m.Scope != matcher.ScopeAny || m.Granularity != matcher.GranularityKeyword {
		t.Errorf("unexpected matcher settings %+v", m)
	}
	if !q.Excerpts {
		t.Error("excerpts default to on")
	}
	if len(q.Keywords) != 3 {
		t.Errorf("expected raw keywords to be kept, got %v", q.Keywords)
	}
}

func TestLoadQuery_Inline(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q.yml", `preprocess: normalize
scope: each
granularity: occurrence
excerpts: false
targets: [Ship]
keywords: [Fire]
`)
	q, err := LoadQuery(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Matcher.Strategy != normalize.Lowercase {
		t.Errorf("expected normalize to mean lowercase, got %q", q.Matcher.Strategy)
	}
	if q.Matcher.Scope != matcher.ScopeEach || q.Matcher.Granularity != matcher.GranularityOccurrence {
		t.Errorf("unexpected scope/granularity %q/%q", q.Matcher.Scope, q.Matcher.Granularity)
	}
	if q.Excerpts {
		t.Error("expected excerpts disabled")
	}
}

func TestLoadQuery_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.yml", "targets: []\nkeywords: [fire]\n")

	tests := []struct {
		name    string
		content string
	}{
		{"missing strategy", "targets: [a]\nkeywords: [b]\n"},
		{"unknown strategy", "preprocess: soundex\ntargets: [a]\nkeywords: [b]\n"},
		{"missing data file", "preprocess: none\ndata: nope.yml\n"},
		{"empty targets", "preprocess: none\ndata: empty.yml\n"},
		{"no keywords", "preprocess: none\ntargets: [a]\n"},
		{"punctuation only", "preprocess: lowercase\ntargets: [a]\nkeywords: ['--']\n"},
		{"bad scope", "preprocess: none\nscope: some\ntargets: [a]\nkeywords: [b]\n"},
		{"bad granularity", "preprocess: none\ngranularity: page\ntargets: [a]\nkeywords: [b]\n"},
		{"negative window", "preprocess: none\nwindow: -1\ntargets: [a]\nkeywords: [b]\n"},
		{"malformed yaml", "preprocess: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "query.yml", tt.content)
			_, err := LoadQuery(path)
			if !IsConfigurationError(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}

	if _, err := LoadQuery(filepath.Join(dir, "absent.yml")); !IsConfigurationError(err) {
		t.Errorf("expected configuration error for missing query file, got %v", err)
	}
}
