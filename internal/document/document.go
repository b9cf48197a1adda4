package document

import (
	"github.com/dgallion1/docprox/internal/normalize"
)

// BoundingBox is a word's rectangle on the source page image.
type BoundingBox struct {
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y2 float64 `json:"y2" yaml:"y2"`
}

// Word is one token of a document in reading order.
type Word struct {
	Text      string       // Raw OCR text; empty when Absent
	Absent    bool         // Unrecognized glyph; keeps its position slot
	Canonical string       // Text under the document's strategy
	Position  int          // 0-based index in Document.Words
	Box       *BoundingBox // nil when the source has no coordinates
}

// RawWord is parser output before positions and canonical forms are assigned.
type RawWord struct {
	Text   string
	Absent bool
	Box    *BoundingBox
}

// TitleChange records a historical name of a publication.
type TitleChange struct {
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// Metadata is descriptive information carried through for reporting.
// Every field is optional.
type Metadata struct {
	Format             string        `json:"format" yaml:"format"`
	Title              string        `json:"title,omitempty" yaml:"title,omitempty"`
	NormalisedTitle    string        `json:"normalised_title,omitempty" yaml:"normalised_title,omitempty"`
	TitleAbbreviation  string        `json:"title_abbreviation,omitempty" yaml:"title_abbreviation,omitempty"`
	PlaceOfPublication string        `json:"place_of_publication,omitempty" yaml:"place_of_publication,omitempty"`
	DatesOfPublication string        `json:"dates_of_publication,omitempty" yaml:"dates_of_publication,omitempty"`
	TypeOfPublication  string        `json:"type_of_publication,omitempty" yaml:"type_of_publication,omitempty"`
	SubCollection      string        `json:"sub_collection,omitempty" yaml:"sub_collection,omitempty"`
	TitleChanges       []TitleChange `json:"title_changes,omitempty" yaml:"title_changes,omitempty"`

	VolumeNumber   string `json:"volume_number,omitempty" yaml:"volume_number,omitempty"`
	IssueNumber    string `json:"issue_number,omitempty" yaml:"issue_number,omitempty"`
	PrintedDate    string `json:"printed_date,omitempty" yaml:"printed_date,omitempty"`
	NormalisedDate string `json:"normalised_date,omitempty" yaml:"normalised_date,omitempty"`
	PageCount      string `json:"page_count,omitempty" yaml:"page_count,omitempty"`

	PageSequence       string `json:"page_sequence,omitempty" yaml:"page_sequence,omitempty"`
	PageImageFile      string `json:"page_image_file,omitempty" yaml:"page_image_file,omitempty"`
	PageCoordinates    string `json:"page_coordinates,omitempty" yaml:"page_coordinates,omitempty"`
	PageSkew           string `json:"page_skew,omitempty" yaml:"page_skew,omitempty"`
	ArticleSequence    string `json:"article_sequence,omitempty" yaml:"article_sequence,omitempty"`
	ArticleImageFile   string `json:"article_image_file,omitempty" yaml:"article_image_file,omitempty"`
	ArticleCoordinates string `json:"article_coordinates,omitempty" yaml:"article_coordinates,omitempty"`
}

// Document is a parsed source in reading order. It is not modified after New.
type Document struct {
	ID       string
	Meta     Metadata
	Strategy normalize.Strategy
	Words    []Word
}

// New assigns contiguous positions and canonical forms to raw.
func New(id string, meta Metadata, raw []RawWord, s normalize.Strategy) *Document {
	words := make([]Word, len(raw))
	for i, rw := range raw {
		w := Word{
			Text:     rw.Text,
			Absent:   rw.Absent,
			Position: i,
			Box:      rw.Box,
		}
		if !rw.Absent {
			w.Canonical = normalize.Normalize(rw.Text, s)
		}
		words[i] = w
	}
	return &Document{
		ID:       id,
		Meta:     meta,
		Strategy: s,
		Words:    words,
	}
}

// Len returns the number of word slots, including absent words.
func (d *Document) Len() int {
	return len(d.Words)
}

// Slice returns raw texts for positions [start, end). Absent words are
// rendered as empty strings.
func (d *Document) Slice(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(d.Words) {
		end = len(d.Words)
	}
	if start >= end {
		return []string{}
	}
	out := make([]string, 0, end-start)
	for _, w := range d.Words[start:end] {
		out = append(out, w.Text)
	}
	return out
}
