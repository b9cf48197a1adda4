package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx transcriptions. The first Heading 1 paragraph, if
// any, becomes the title; every paragraph contributes words.
type DOCXParser struct {
	Strategy normalize.Strategy
}

func (p *DOCXParser) Parse(r io.Reader, id string) (*document.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docprox-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	meta := document.Metadata{
		Format: "docx",
		Title:  baseTitle(id),
	}
	titled := false

	var words []document.RawWord
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if !titled && isTitleStyle(para) {
			meta.Title = text
			titled = true
		}
		words = appendWords(words, text)
	}

	return document.New(id, meta, words, p.Strategy), nil
}

func isTitleStyle(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := para.Properties.Style.Val
	return strings.EqualFold(style, "Title") ||
		strings.EqualFold(style, "Heading1") ||
		strings.EqualFold(style, "heading 1")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
