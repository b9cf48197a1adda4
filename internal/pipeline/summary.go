package pipeline

import (
	"github.com/RoaringBitmap/roaring"
)

// Summary counts what a query covered.
type Summary struct {
	Documents        int               `json:"documents" yaml:"documents"`
	Parsed           int               `json:"parsed" yaml:"parsed"`
	Failed           int               `json:"failed" yaml:"failed"`
	Words            int               `json:"words" yaml:"words"`
	Matches          int               `json:"matches" yaml:"matches"`
	MatchedDocuments uint64            `json:"matched_documents" yaml:"matched_documents"`
	KeywordDocuments map[string]uint64 `json:"keyword_documents" yaml:"keyword_documents"`
}

// summaryBuilder tracks, per keyword, the set of corpus indices that
// produced a match.
type summaryBuilder struct {
	s    Summary
	docs map[string]*roaring.Bitmap
}

func newSummaryBuilder(documents int) *summaryBuilder {
	return &summaryBuilder{
		s:    Summary{Documents: documents},
		docs: make(map[string]*roaring.Bitmap),
	}
}

func (b *summaryBuilder) failed() { b.s.Failed++ }

func (b *summaryBuilder) parsed(words int) {
	b.s.Parsed++
	b.s.Words += words
}

func (b *summaryBuilder) match(index int, keyword string) {
	b.s.Matches++
	bm, ok := b.docs[keyword]
	if !ok {
		bm = roaring.New()
		b.docs[keyword] = bm
	}
	bm.Add(uint32(index))
}

func (b *summaryBuilder) build() Summary {
	s := b.s
	s.KeywordDocuments = make(map[string]uint64, len(b.docs))
	all := make([]*roaring.Bitmap, 0, len(b.docs))
	for kw, bm := range b.docs {
		s.KeywordDocuments[kw] = bm.GetCardinality()
		all = append(all, bm)
	}
	if len(all) > 0 {
		s.MatchedDocuments = roaring.FastOr(all...).GetCardinality()
	}
	return s
}
