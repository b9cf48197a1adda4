package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
)

// CSVParser handles OCR word exports: one word per row, a header naming a
// "word" column and optionally x1,y1,x2,y2 coordinate columns.
type CSVParser struct {
	Strategy normalize.Strategy
}

func (p *CSVParser) Parse(r io.Reader, id string) (*document.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{Format: "csv", Reason: "missing header row"}
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	wordCol, ok := cols["word"]
	if !ok {
		return nil, &SchemaError{Format: "csv", Reason: `header has no "word" column`}
	}
	boxCols, hasBoxes := coordColumns(cols)

	words := make([]document.RawWord, 0, len(records)-1)
	for n, row := range records[1:] {
		var rw document.RawWord
		if wordCol < len(row) {
			rw.Text = strings.TrimSpace(row[wordCol])
		}
		rw.Absent = rw.Text == ""
		if hasBoxes {
			box, err := rowBox(row, boxCols)
			if err != nil {
				return nil, &SchemaError{Format: "csv", Reason: fmt.Sprintf("row %d: %v", n+2, err)}
			}
			rw.Box = box
		}
		words = append(words, rw)
	}

	meta := document.Metadata{
		Format: "csv",
		Title:  baseTitle(id),
	}
	return document.New(id, meta, words, p.Strategy), nil
}

func coordColumns(cols map[string]int) ([4]int, bool) {
	var idx [4]int
	for i, name := range []string{"x1", "y1", "x2", "y2"} {
		c, ok := cols[name]
		if !ok {
			return idx, false
		}
		idx[i] = c
	}
	return idx, true
}

// rowBox reads the coordinate cells of a row; a row with all four cells empty
// has no box.
func rowBox(row []string, idx [4]int) (*document.BoundingBox, error) {
	var v [4]float64
	empty := 0
	for i, c := range idx {
		if c >= len(row) || strings.TrimSpace(row[c]) == "" {
			empty++
			continue
		}
		n, err := parseFloat(row[c])
		if err != nil {
			return nil, err
		}
		v[i] = n
	}
	if empty == 4 {
		return nil, nil
	}
	if empty > 0 {
		return nil, fmt.Errorf("incomplete coordinates")
	}
	return &document.BoundingBox{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}
