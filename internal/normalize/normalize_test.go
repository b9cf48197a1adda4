package normalize

import (
	"errors"
	"testing"
)

func TestNormalize_None(t *testing.T) {
	if got := Normalize("Fire,", None); got != "Fire," {
		t.Errorf("expected identity, got %q", got)
	}
}

func TestNormalize_Lowercase(t *testing.T) {
	cases := map[string]string{
		"FIRE":    "fire",
		"Fire,":   "fire",
		"Café":    "cafe",
		"1870.":   "1870",
		"---":     "",
		"o'clock": "oclock",
	}
	for in, want := range cases {
		if got := Normalize(in, Lowercase); got != want {
			t.Errorf("Normalize(%q, lowercase): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalize_Stem(t *testing.T) {
	cases := map[string]string{
		"Running":  "run",
		"ships":    "ship",
		"Fires.":   "fire",
		"accident": "accid",
	}
	for in, want := range cases {
		if got := Normalize(in, Stem); got != want {
			t.Errorf("Normalize(%q, stem): expected %q, got %q", in, want, got)
		}
	}
	if got := Normalize("...", Stem); got != "" {
		t.Errorf("expected empty stem for punctuation, got %q", got)
	}
}

func TestNormalize_Lemmatize(t *testing.T) {
	cases := map[string]string{
		"Ships":    "ship",
		"fires":    "fire",
		"boxes":    "box",
		"churches": "church",
		"cities":   "city",
		"glasses":  "glass",
		"children": "child",
		"wolves":   "wolf",
		"bus":      "bus",
		"crisis":   "crisis",
		"sank":     "sink",
		"fire":     "fire",
		"1870":     "1870",
	}
	for in, want := range cases {
		if got := Normalize(in, Lemmatize); got != want {
			t.Errorf("Normalize(%q, lemmatize): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalize_LemmatizeIrregularPlurals(t *testing.T) {
	cases := map[string]string{
		"heroes":    "hero",
		"Potatoes":  "potato",
		"cargoes":   "cargo",
		"volcanoes": "volcano",
		"wharves":   "wharf",
		"scarves":   "scarf",
		"indices":   "index",
		"aches":     "ache",
	}
	for in, want := range cases {
		if got := Normalize(in, Lemmatize); got != want {
			t.Errorf("Normalize(%q, lemmatize): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalize_LemmatizeVerbs(t *testing.T) {
	cases := map[string]string{
		"killed":   "kill",
		"burned":   "burn",
		"exploded": "explode",
		"drowned":  "drown",
	}
	for in, want := range cases {
		if got := Normalize(in, Lemmatize); got != want {
			t.Errorf("Normalize(%q, lemmatize): expected %q, got %q", in, want, got)
		}
	}
}

func TestLemma_Empty(t *testing.T) {
	if got := Lemma(""); got != "" {
		t.Errorf("expected empty lemma, got %q", got)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	for _, s := range Strategies {
		a := Normalize("Explosions!", s)
		b := Normalize("Explosions!", s)
		if a != b {
			t.Errorf("strategy %s: expected identical output, got %q and %q", s, a, b)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"none":      None,
		"LOWERCASE": Lowercase,
		"normalize": Lowercase,
		" stem ":    Stem,
		"lemmatize": Lemmatize,
		"lemma":     Lemmatize,
	}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		if err != nil {
			t.Fatalf("ParseStrategy(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseStrategy(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseStrategy_Unknown(t *testing.T) {
	_, err := ParseStrategy("soundex")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestNewWordSet(t *testing.T) {
	ws := NewWordSet([]string{"Ship", "ships", "FIRE", "--"}, Lemmatize)
	if len(ws) != 2 {
		t.Fatalf("expected 2 members, got %d: %v", len(ws), ws.Sorted())
	}
	if !ws.Contains("ship") || !ws.Contains("fire") {
		t.Errorf("expected ship and fire, got %v", ws.Sorted())
	}
	if ws.Contains("") {
		t.Error("empty canonical form must never be a member")
	}
	got := ws.Sorted()
	if got[0] != "fire" || got[1] != "ship" {
		t.Errorf("expected sorted [fire ship], got %v", got)
	}
}
