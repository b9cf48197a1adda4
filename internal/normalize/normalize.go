package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Strategy selects how a raw word is mapped to its comparison form.
type Strategy string

const (
	None      Strategy = "none"
	Lowercase Strategy = "lowercase"
	Stem      Strategy = "stem"
	Lemmatize Strategy = "lemmatize"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown preprocessing strategy")

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{None, Lowercase, Stem, Lemmatize}

// ParseStrategy maps a configuration value to a Strategy.
// "normalize" is accepted as an alias for lowercase.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "lowercase", "normalize":
		return Lowercase, nil
	case "stem":
		return Stem, nil
	case "lemmatize", "lemma":
		return Lemmatize, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Normalize returns the canonical form of raw under strategy s.
// Unknown strategies behave like None.
func Normalize(raw string, s Strategy) string {
	switch s {
	case Lowercase:
		return fold(raw)
	case Stem:
		w := fold(raw)
		if w == "" {
			return ""
		}
		return snowballeng.Stem(w, false)
	case Lemmatize:
		return Lemma(fold(raw))
	default:
		return raw
	}
}

// fold case-folds raw, strips accents and drops everything that is not a
// letter or digit, so OCR tokens such as "Fire," compare equal to "fire".
func fold(raw string) string {
	folded := cases.Fold().String(raw)
	// Transformers carry state; build one per call so fold is goroutine-safe.
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripAccents, folded); err == nil {
		folded = stripped
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, folded)
}

// WordSet holds canonical forms for set-membership tests.
type WordSet map[string]struct{}

// NewWordSet normalizes words with s. Words whose canonical form is empty are
// dropped.
func NewWordSet(words []string, s Strategy) WordSet {
	ws := make(WordSet, len(words))
	for _, w := range words {
		if c := Normalize(w, s); c != "" {
			ws[c] = struct{}{}
		}
	}
	return ws
}

// Contains reports whether the canonical form w is in the set.
func (ws WordSet) Contains(w string) bool {
	if w == "" {
		return false
	}
	_, ok := ws[w]
	return ok
}

// Sorted returns the members in lexical order.
func (ws WordSet) Sorted() []string {
	out := make([]string, 0, len(ws))
	for w := range ws {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
