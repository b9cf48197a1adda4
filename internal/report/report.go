// Package report renders query results as YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml and json. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "application/yaml"
}

// Entry is one match as reported.
type Entry struct {
	Path            string   `json:"path" yaml:"path"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	TargetWord      string   `json:"target_word" yaml:"target_word"`
	Keyword         string   `json:"keyword" yaml:"keyword"`
	Distance        int      `json:"distance" yaml:"distance"`
	TargetPosition  int      `json:"target_position" yaml:"target_position"`
	KeywordPosition int      `json:"keyword_position" yaml:"keyword_position"`
	Excerpt         []string `json:"excerpt,omitempty" yaml:"excerpt,omitempty,flow"`
}

// KeywordResult is the distance-ordered entries for one keyword.
type KeywordResult struct {
	Keyword string  `json:"keyword" yaml:"keyword"`
	Matches []Entry `json:"matches" yaml:"matches"`
}

// Report is the serialized form of a query result.
type Report struct {
	Results  []KeywordResult     `json:"results" yaml:"results"`
	Failures []*document.Failure `json:"failures" yaml:"failures"`
	Summary  pipeline.Summary    `json:"summary" yaml:"summary"`
}

// Options controls report content.
type Options struct {
	Excerpts bool
}

// Build converts a result. "blob:" prefixes are stripped from paths.
func Build(res *pipeline.Result, opts Options) *Report {
	rep := &Report{
		Results:  make([]KeywordResult, 0, len(res.Groups)),
		Failures: res.Failures,
		Summary:  res.Summary,
	}
	if rep.Failures == nil {
		rep.Failures = []*document.Failure{}
	}
	for _, g := range res.Groups {
		kr := KeywordResult{Keyword: g.Keyword, Matches: make([]Entry, 0, len(g.Matches))}
		for _, m := range g.Matches {
			e := Entry{
				Path:            strings.TrimPrefix(m.Source, "blob:"),
				Title:           m.Title,
				TargetWord:      m.Target.Word,
				Keyword:         m.Keyword.Word,
				Distance:        m.Distance,
				TargetPosition:  m.Target.Position,
				KeywordPosition: m.Keyword.Position,
			}
			if opts.Excerpts {
				e.Excerpt = m.Excerpt
			}
			kr.Matches = append(kr.Matches, e)
		}
		rep.Results = append(rep.Results, kr)
	}
	return rep
}

// Write encodes rep to w.
func Write(w io.Writer, rep *Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
	return nil
}
