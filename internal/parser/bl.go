package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
)

const blFormat = "BL article"

// blRequired are the sections every BL article must contain.
var blRequired = []string{"title_metadata", "issue_metadata", "pageImage", "articleImage"}

// BLArticleParser handles BL_newspaper/BL_article XML:
//
//	<BL_newspaper>
//	  <BL_article>
//	    <title_metadata>...</title_metadata>
//	    <issue_metadata>...</issue_metadata>
//	    <article_metadata>
//	      <pageImage>...</pageImage>
//	      <articleImage>
//	        <articleText>
//	          <articleWord coord="135,51,325,120">FROM</articleWord>
type BLArticleParser struct {
	Strategy normalize.Strategy
}

func (p *BLArticleParser) Parse(r io.Reader, id string) (*document.Document, error) {
	meta := document.Metadata{Format: "bl_article"}
	fields := map[string]*string{
		"title":              &meta.Title,
		"normalisedTitle":    &meta.NormalisedTitle,
		"titleAbbreviation":  &meta.TitleAbbreviation,
		"placeOfPublication": &meta.PlaceOfPublication,
		"datesOfPublication": &meta.DatesOfPublication,
		"typeOfPublication":  &meta.TypeOfPublication,
		"subCollection":      &meta.SubCollection,
		"volumeNumber":       &meta.VolumeNumber,
		"issueNumber":        &meta.IssueNumber,
		"printedDate":        &meta.PrintedDate,
		"normalisedDate":     &meta.NormalisedDate,
		"pageCount":          &meta.PageCount,
		"pageSequence":       &meta.PageSequence,
		"pageImageFile":      &meta.PageImageFile,
		"pageCoordinates":    &meta.PageCoordinates,
		"pageSkew":           &meta.PageSkew,
		"articleSequence":    &meta.ArticleSequence,
		"articleImageFile":   &meta.ArticleImageFile,
		"articleCoordinates": &meta.ArticleCoordinates,
	}
	collected := make(map[string][]string)
	seen := make(map[string]bool)

	var (
		words   []document.RawWord
		stack   []*frame
		change  *document.TitleChange
		rooted  bool
		article bool
	)

	dec := newDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if len(stack) == 0 {
				if name != "BL_newspaper" {
					return nil, &SchemaError{Format: blFormat, Reason: "document does not conform to BL article format"}
				}
				rooted = true
			}
			if name == "BL_article" && len(stack) == 1 {
				article = true
			}
			seen[name] = true

			f := &frame{name: name}
			switch name {
			case "articleWord":
				if len(stack) > 0 && stack[len(stack)-1].name == "articleText" {
					coord, ok := attrValue(t.Attr, "coord")
					if !ok {
						return nil, &SchemaError{Format: blFormat, Reason: fmt.Sprintf("articleWord %d has no coord attribute", len(words))}
					}
					box, err := parseCoord(coord)
					if err != nil {
						return nil, &SchemaError{Format: blFormat, Reason: fmt.Sprintf("articleWord %d: %v", len(words), err)}
					}
					f.box = box
				}
			case "changeToTitle":
				change = &document.TitleChange{}
			case "startDate", "endDate":
				if change != nil {
					d := formatDate(t.Attr)
					if name == "startDate" {
						change.StartDate = d
					} else {
						change.EndDate = d
					}
				}
			}
			stack = append(stack, f)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			text := strings.TrimSpace(f.text.String())

			switch {
			case f.box != nil:
				words = append(words, document.RawWord{Text: text, Absent: text == "", Box: f.box})
			case f.name == "name" && change != nil:
				change.Name = text
			case f.name == "changeToTitle" && change != nil:
				meta.TitleChanges = append(meta.TitleChanges, *change)
				change = nil
			default:
				if _, ok := fields[f.name]; ok && text != "" {
					collected[f.name] = append(collected[f.name], text)
				}
			}
		}
	}

	if !rooted || !article {
		return nil, &SchemaError{Format: blFormat, Reason: "document does not conform to BL article format"}
	}
	for _, section := range blRequired {
		if !seen[section] {
			return nil, &SchemaError{Format: blFormat, Reason: fmt.Sprintf("missing required element <%s>", section)}
		}
	}
	for name, values := range collected {
		*fields[name] = strings.Join(values, " ")
	}

	return document.New(id, meta, words, p.Strategy), nil
}

// parseCoord reads "x1,y1,x2,y2".
func parseCoord(s string) (*document.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("coord %q: expected 4 values, got %d", s, len(parts))
	}
	var v [4]float64
	for i, part := range parts {
		n, err := parseFloat(part)
		if err != nil {
			return nil, fmt.Errorf("coord %q: %w", s, err)
		}
		v[i] = n
	}
	return &document.BoundingBox{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

// formatDate renders <startDate day="05" month="05" year="1850"/> as 1850-05-05.
func formatDate(attrs []xml.Attr) string {
	year, _ := attrValue(attrs, "year")
	month, _ := attrValue(attrs, "month")
	day, _ := attrValue(attrs, "day")
	var parts []string
	for _, p := range []string{year, month, day} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}
