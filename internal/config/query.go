package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/docprox/internal/matcher"
	"github.com/dgallion1/docprox/internal/normalize"
	"gopkg.in/yaml.v3"
)

// ConfigurationError reports a query that cannot be run. It is raised before
// any corpus work is scheduled.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// IsConfigurationError reports whether err wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// QuerySpec is a query as written by a user, either as a YAML query file:
//
//	preprocess: lemmatize
//	data: accident_words.yml
//	scope: any
//	window: 10
//
// or as the JSON body of a query request. The data file holds
// {targets: [...], keywords: [...]} and is resolved relative to the query
// file. Inline targets and keywords are added to the data file's lists.
type QuerySpec struct {
	Preprocess  string   `yaml:"preprocess" json:"preprocess"`
	Data        string   `yaml:"data,omitempty" json:"-"`
	Scope       string   `yaml:"scope,omitempty" json:"scope,omitempty"`
	Granularity string   `yaml:"granularity,omitempty" json:"granularity,omitempty"`
	Window      int      `yaml:"window,omitempty" json:"window,omitempty"`
	Excerpts    *bool    `yaml:"excerpts,omitempty" json:"excerpts,omitempty"`
	Targets     []string `yaml:"targets,omitempty" json:"targets"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords"`
}

// WordLists is the content of a query's data file.
type WordLists struct {
	Targets  []string `yaml:"targets"`
	Keywords []string `yaml:"keywords"`
}

// Query is a validated QuerySpec ready to run.
type Query struct {
	Matcher  matcher.Matcher
	Excerpts bool

	// As configured, before normalization.
	Targets  []string
	Keywords []string
}

// LoadQuery reads a YAML query file and its data file.
func LoadQuery(path string) (*Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Field: "query", Reason: err.Error()}
	}
	var spec QuerySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &ConfigurationError{Field: "query", Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}

	if spec.Data != "" {
		dataPath := spec.Data
		if !filepath.IsAbs(dataPath) {
			dataPath = filepath.Join(filepath.Dir(path), dataPath)
		}
		lists, err := LoadWordLists(dataPath)
		if err != nil {
			return nil, err
		}
		spec.Targets = append(lists.Targets, spec.Targets...)
		spec.Keywords = append(lists.Keywords, spec.Keywords...)
	}
	return spec.Build()
}

// LoadWordLists reads a {targets, keywords} YAML file.
func LoadWordLists(path string) (WordLists, error) {
	var lists WordLists
	data, err := os.ReadFile(path)
	if err != nil {
		return lists, &ConfigurationError{Field: "data", Reason: err.Error()}
	}
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return lists, &ConfigurationError{Field: "data", Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return lists, nil
}

// Build validates the query and normalizes its word lists.
func (s QuerySpec) Build() (*Query, error) {
	if s.Preprocess == "" {
		return nil, &ConfigurationError{Field: "preprocess", Reason: "a preprocessing strategy is required"}
	}
	strategy, err := normalize.ParseStrategy(s.Preprocess)
	if err != nil {
		return nil, &ConfigurationError{Field: "preprocess", Reason: err.Error()}
	}
	scope, err := matcher.ParseScope(s.Scope)
	if err != nil {
		return nil, &ConfigurationError{Field: "scope", Reason: err.Error()}
	}
	granularity, err := matcher.ParseGranularity(s.Granularity)
	if err != nil {
		return nil, &ConfigurationError{Field: "granularity", Reason: err.Error()}
	}
	if s.Window < 0 {
		return nil, &ConfigurationError{Field: "window", Reason: "must not be negative"}
	}

	targets := normalize.NewWordSet(s.Targets, strategy)
	if len(targets) == 0 {
		return nil, &ConfigurationError{Field: "targets", Reason: "no usable target words"}
	}
	keywords := normalize.NewWordSet(s.Keywords, strategy)
	if len(keywords) == 0 {
		return nil, &ConfigurationError{Field: "keywords", Reason: "no usable keywords"}
	}

	excerpts := true
	if s.Excerpts != nil {
		excerpts = *s.Excerpts
	}

	return &Query{
		Matcher: matcher.Matcher{
			Targets:     targets,
			Keywords:    keywords,
			Strategy:    strategy,
			Scope:       scope,
			Granularity: granularity,
			Radius:      s.Window,
		},
		Excerpts: excerpts,
		Targets:  s.Targets,
		Keywords: s.Keywords,
	}, nil
}
