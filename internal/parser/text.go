package parser

import (
	"bufio"
	"io"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
)

// TextParser handles plain text transcriptions.
type TextParser struct {
	Strategy normalize.Strategy
}

func (p *TextParser) Parse(r io.Reader, id string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var words []document.RawWord
	for scanner.Scan() {
		words = appendWords(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	meta := document.Metadata{
		Format: "text",
		Title:  baseTitle(id),
	}
	return document.New(id, meta, words, p.Strategy), nil
}
