// Package matcher finds, for each keyword occurrence in a document, the
// nearest target word occurrence.
package matcher

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
)

// DefaultRadius is the number of words kept on either side of a matched pair.
const DefaultRadius = 10

// Scope controls which target occurrences a keyword is measured against.
type Scope string

const (
	// ScopeAny pools every target occurrence; one record per keyword.
	ScopeAny Scope = "any"
	// ScopeEach measures each distinct target word separately; one record per
	// (keyword, target word) pair.
	ScopeEach Scope = "each"
)

// Granularity controls how many records a keyword yields per document.
type Granularity string

const (
	// GranularityKeyword keeps only the closest pair for each keyword.
	GranularityKeyword Granularity = "keyword"
	// GranularityOccurrence keeps the closest target for every keyword
	// occurrence.
	GranularityOccurrence Granularity = "occurrence"
)

// ParseScope maps a configuration value to a Scope. Empty means ScopeAny.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAny:
		return ScopeAny, nil
	case ScopeEach:
		return ScopeEach, nil
	default:
		return "", fmt.Errorf("unknown scope %q (want %q or %q)", s, ScopeAny, ScopeEach)
	}
}

// ParseGranularity maps a configuration value to a Granularity. Empty means
// GranularityKeyword.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case "", GranularityKeyword:
		return GranularityKeyword, nil
	case GranularityOccurrence:
		return GranularityOccurrence, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want %q or %q)", s, GranularityKeyword, GranularityOccurrence)
	}
}

// Location is a canonical word at a position within a document.
type Location struct {
	Word     string `json:"word" yaml:"word"`
	Position int    `json:"position" yaml:"position"`
	Source   string `json:"-" yaml:"-"`
}

// Match pairs a keyword occurrence with its nearest target occurrence.
type Match struct {
	Source   string
	Title    string
	Target   Location
	Keyword  Location
	Distance int
	Excerpt  []string
}

// Matcher holds one query's word sets. The zero values of Scope, Granularity
// and Radius select ScopeAny, GranularityKeyword and DefaultRadius.
type Matcher struct {
	Targets     normalize.WordSet
	Keywords    normalize.WordSet
	Strategy    normalize.Strategy
	Scope       Scope
	Granularity Granularity
	Radius      int
}

// FindMatches runs a Matcher with default scope, granularity and radius.
func FindMatches(doc *document.Document, targets, keywords normalize.WordSet, s normalize.Strategy) []Match {
	return Matcher{Targets: targets, Keywords: keywords, Strategy: s}.Find(doc)
}

// Find returns the matches in doc. Keywords appear in order of their first
// occurrence. A document without target occurrences yields nothing.
func (m Matcher) Find(doc *document.Document) []Match {
	if doc == nil || len(m.Targets) == 0 || len(m.Keywords) == 0 {
		return nil
	}

	occurrences := make(map[string][]Location)
	var order []string
	var targets []Location
	for _, w := range doc.Words {
		if w.Absent {
			continue
		}
		canon := w.Canonical
		if doc.Strategy != m.Strategy {
			canon = normalize.Normalize(w.Text, m.Strategy)
		}
		if canon == "" {
			continue
		}
		loc := Location{Word: canon, Position: w.Position, Source: doc.ID}
		if m.Keywords.Contains(canon) {
			if _, ok := occurrences[canon]; !ok {
				order = append(order, canon)
			}
			occurrences[canon] = append(occurrences[canon], loc)
		}
		if m.Targets.Contains(canon) {
			targets = append(targets, loc)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	pools := [][]Location{targets}
	if m.Scope == ScopeEach {
		pools = byWord(targets)
	}

	var out []Match
	for _, kw := range order {
		for _, pool := range pools {
			if m.Granularity == GranularityOccurrence {
				for _, occ := range occurrences[kw] {
					if k, t, d, ok := nearest([]Location{occ}, pool); ok {
						out = append(out, m.record(doc, k, t, d))
					}
				}
				continue
			}
			if k, t, d, ok := nearest(occurrences[kw], pool); ok {
				out = append(out, m.record(doc, k, t, d))
			}
		}
	}
	return out
}

func (m Matcher) record(doc *document.Document, k, t Location, d int) Match {
	return Match{
		Source:   doc.ID,
		Title:    doc.Meta.Title,
		Target:   t,
		Keyword:  k,
		Distance: d,
		Excerpt:  Excerpt(doc, t.Position, k.Position, m.radius()),
	}
}

func (m Matcher) radius() int {
	if m.Radius <= 0 {
		return DefaultRadius
	}
	return m.Radius
}

// nearest scans keyword × target pairs in list order and returns the first
// pair with the smallest distance.
func nearest(keywords, targets []Location) (k, t Location, dist int, ok bool) {
	for _, kl := range keywords {
		for _, tl := range targets {
			d := abs(kl.Position - tl.Position)
			if !ok || d < dist {
				k, t, dist, ok = kl, tl, d, true
			}
		}
	}
	return k, t, dist, ok
}

// byWord splits target occurrences into one list per distinct word, in order
// of first occurrence.
func byWord(targets []Location) [][]Location {
	index := make(map[string]int)
	var pools [][]Location
	for _, t := range targets {
		i, ok := index[t.Word]
		if !ok {
			i = len(pools)
			index[t.Word] = i
			pools = append(pools, nil)
		}
		pools[i] = append(pools[i], t)
	}
	return pools
}

// Excerpt returns the raw words within radius of a target/keyword pair:
// [max(0, min(t,k)-radius), min(len, max(t,k)+radius)).
func Excerpt(doc *document.Document, targetPos, keywordPos, radius int) []string {
	lo, hi := targetPos, keywordPos
	if lo > hi {
		lo, hi = hi, lo
	}
	return doc.Slice(max(0, lo-radius), min(doc.Len(), hi+radius))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
