package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgallion1/docprox/internal/config"
	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/matcher"
	"github.com/dgallion1/docprox/internal/parser"
	"github.com/dgallion1/docprox/internal/source"
	"golang.org/x/sync/errgroup"
)

// Group is every match for one keyword, nearest first.
type Group struct {
	Keyword string
	Matches []matcher.Match
}

// Result is the outcome of one query over a corpus.
type Result struct {
	Groups   []Group             // Ordered by keyword
	Failures []*document.Failure // Corpus order
	Summary  Summary
}

// Matches returns the group for keyword, or nil when it matched nowhere.
func (r *Result) Matches(keyword string) []matcher.Match {
	i, ok := slices.BinarySearchFunc(r.Groups, keyword, func(g Group, k string) int {
		return cmp.Compare(g.Keyword, k)
	})
	if !ok {
		return nil
	}
	return r.Groups[i].Matches
}

// DocumentResult describes one finished document. Failure is nil on success.
type DocumentResult struct {
	Index    int
	ID       string
	Failure  *document.Failure
	Words    int
	Matches  []matcher.Match
	Duration time.Duration
}

// Aggregator runs a query over a corpus: each document is retrieved, parsed
// and matched independently, then matches are grouped by keyword.
type Aggregator struct {
	Source      source.Opener
	Parsers     parser.Options // Strategy is taken from the query
	Concurrency int
	Logger      *slog.Logger
	Stats       *LatencyStats

	// OnDocument, when set, is called from worker goroutines as each
	// document finishes. It must be safe for concurrent use.
	OnDocument func(DocumentResult)
}

// Run processes ids and merges their matches. Per-document failures are
// collected in the result; only context cancellation fails the run.
func (a *Aggregator) Run(ctx context.Context, ids []string, q *config.Query) (*Result, error) {
	if q == nil {
		return nil, &config.ConfigurationError{Reason: "no query"}
	}
	log := a.logger()

	limit := a.Concurrency
	if limit <= 0 {
		limit = 8
	}
	results := make([]DocumentResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := a.process(gctx, i, id, q)
			results[i] = res
			if a.Stats != nil {
				a.Stats.Record(res.Duration)
			}
			if a.OnDocument != nil {
				a.OnDocument(res)
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := merge(results)
	log.Info("query complete",
		"documents", res.Summary.Documents,
		"failed", res.Summary.Failed,
		"matches", res.Summary.Matches,
		"keywords", len(res.Groups),
	)
	return res, nil
}

// Outcome retrieves and parses one document. Every error, including a
// panic inside a parser, becomes a *document.Failure.
func (a *Aggregator) Outcome(ctx context.Context, id string, opts parser.Options) (out document.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = &document.Failure{ID: id, Kind: document.FailurePanic, Message: fmt.Sprint(r)}
		}
	}()

	p, err := parser.ForFile(id, opts)
	if err != nil {
		return &document.Failure{ID: id, Kind: document.FailureParse, Message: err.Error()}
	}
	if a.Source == nil {
		return &document.Failure{ID: id, Kind: document.FailureRetrieval, Message: "no corpus source configured"}
	}
	rc, err := a.Source.Open(ctx, id)
	if err != nil {
		return &document.Failure{ID: id, Kind: document.FailureRetrieval, Message: err.Error()}
	}
	defer rc.Close()

	doc, err := p.Parse(rc, id)
	if err != nil {
		kind := document.FailureParse
		if parser.IsSchemaError(err) {
			kind = document.FailureSchema
		}
		return &document.Failure{ID: id, Kind: kind, Message: err.Error()}
	}
	return &document.Parsed{Doc: doc}
}

func (a *Aggregator) process(ctx context.Context, index int, id string, q *config.Query) (res DocumentResult) {
	start := time.Now()
	res = DocumentResult{Index: index, ID: id}
	log := a.logger().With("doc", id)

	defer func() {
		if r := recover(); r != nil {
			res.Failure = &document.Failure{ID: id, Kind: document.FailurePanic, Message: fmt.Sprint(r)}
			res.Matches = nil
		}
		res.Duration = time.Since(start)
		if res.Failure != nil {
			log.Warn("document failed", "kind", res.Failure.Kind, "error", res.Failure.Message)
		}
	}()

	opts := a.Parsers
	opts.Strategy = q.Matcher.Strategy

	switch o := a.Outcome(ctx, id, opts).(type) {
	case *document.Failure:
		res.Failure = o
	case *document.Parsed:
		res.Words = o.Doc.Len()
		res.Matches = q.Matcher.Find(o.Doc)
		log.Debug("document matched", "words", res.Words, "matches", len(res.Matches))
	}
	return res
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// merge groups matches by keyword and orders each group by distance. Equal
// distances keep corpus order.
func merge(results []DocumentResult) *Result {
	res := &Result{}
	sum := newSummaryBuilder(len(results))
	byKeyword := make(map[string][]matcher.Match)

	for _, r := range results {
		if r.Failure != nil {
			res.Failures = append(res.Failures, r.Failure)
			sum.failed()
			continue
		}
		sum.parsed(r.Words)
		for _, m := range r.Matches {
			byKeyword[m.Keyword.Word] = append(byKeyword[m.Keyword.Word], m)
			sum.match(r.Index, m.Keyword.Word)
		}
	}

	for kw, ms := range byKeyword {
		slices.SortStableFunc(ms, func(a, b matcher.Match) int {
			return cmp.Compare(a.Distance, b.Distance)
		})
		res.Groups = append(res.Groups, Group{Keyword: kw, Matches: ms})
	}
	slices.SortFunc(res.Groups, func(a, b Group) int {
		return cmp.Compare(a.Keyword, b.Keyword)
	})
	res.Summary = sum.build()
	return res
}

// Merge groups per-document match lists the same way Run does.
func Merge(perDocument [][]matcher.Match) []Group {
	results := make([]DocumentResult, len(perDocument))
	for i, ms := range perDocument {
		results[i] = DocumentResult{Index: i, Matches: ms}
	}
	return merge(results).Groups
}
