package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
)

const altoFormat = "ALTO"

// ALTOParser handles ALTO OCR layout files. Words are the CONTENT of String
// elements in document order.
type ALTOParser struct {
	Strategy normalize.Strategy
}

func (p *ALTOParser) Parse(r io.Reader, id string) (*document.Document, error) {
	meta := document.Metadata{Format: "alto"}

	var (
		words  []document.RawWord
		stack  []*frame
		pages  int
		layout bool
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
			if len(stack) == 0 && t.Name.Local != "alto" {
				return nil, &SchemaError{Format: altoFormat, Reason: fmt.Sprintf("unexpected root element <%s>", t.Name.Local)}
			}
			switch t.Name.Local {
			case "Layout":
				layout = true
			case "Page":
				pages++
			case "String":
				box, err := altoBox(t.Attr)
				if err != nil {
					return nil, &SchemaError{Format: altoFormat, Reason: fmt.Sprintf("String %d: %v", len(words), err)}
				}
				content, _ := attrValue(t.Attr, "CONTENT")
				content = strings.TrimSpace(content)
				words = append(words, document.RawWord{Text: content, Absent: content == "", Box: box})
			}
			stack = append(stack, &frame{name: t.Name.Local})

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
			if f.name == "fileName" && meta.Title == "" {
				meta.Title = strings.TrimSpace(f.text.String())
			}
		}
	}

	if !layout {
		return nil, &SchemaError{Format: altoFormat, Reason: "missing required element <Layout>"}
	}
	if meta.Title == "" {
		meta.Title = baseTitle(id)
	}
	meta.PageCount = strconv.Itoa(pages)

	return document.New(id, meta, words, p.Strategy), nil
}

// altoBox converts HPOS/VPOS/WIDTH/HEIGHT into a box. A String without all
// four attributes has no box.
func altoBox(attrs []xml.Attr) (*document.BoundingBox, error) {
	var v [4]float64
	for i, name := range []string{"HPOS", "VPOS", "WIDTH", "HEIGHT"} {
		s, ok := attrValue(attrs, name)
		if !ok {
			return nil, nil
		}
		n, err := parseFloat(s)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", name, s, err)
		}
		v[i] = n
	}
	return &document.BoundingBox{X1: v[0], Y1: v[1], X2: v[0] + v[2], Y2: v[1] + v[3]}, nil
}
