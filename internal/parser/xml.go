package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
	"golang.org/x/net/html/charset"
)

// XMLParser dispatches XML documents on their root element: BL_newspaper
// articles and ALTO pages are understood, anything else is a SchemaError.
type XMLParser struct {
	Strategy normalize.Strategy
}

func (p *XMLParser) Parse(r io.Reader, id string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xml: %w", err)
	}
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}
	switch root.Local {
	case "BL_newspaper":
		return (&BLArticleParser{Strategy: p.Strategy}).Parse(bytes.NewReader(data), id)
	case "alto":
		return (&ALTOParser{Strategy: p.Strategy}).Parse(bytes.NewReader(data), id)
	default:
		return nil, &SchemaError{Format: "xml", Reason: fmt.Sprintf("unrecognized root element <%s>", root.Local)}
	}
}

func rootElement(data []byte) (xml.Name, error) {
	dec := newDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.Name{}, &SchemaError{Format: "xml", Reason: "document has no root element"}
		}
		if err != nil {
			return xml.Name{}, fmt.Errorf("parse xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name, nil
		}
	}
}

// newDecoder returns a decoder that also accepts the legacy encodings found
// in digitized archives (ISO-8859-1, windows-1252, ...).
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// frame is one open element during a streaming walk.
type frame struct {
	name string
	text strings.Builder
	box  *document.BoundingBox
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
