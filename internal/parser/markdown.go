package parser

import (
	"bytes"
	"io"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown transcriptions using goldmark.
type MarkdownParser struct {
	Strategy normalize.Strategy
}

func (p *MarkdownParser) Parse(r io.Reader, id string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	meta := document.Metadata{
		Format: "markdown",
		Title:  baseTitle(id),
	}

	var words []document.RawWord
	titled := false
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		t := extractText(n, src)
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 && !titled && t != "" {
			meta.Title = t
			titled = true
		}
		words = appendWords(words, t)
	}

	return document.New(id, meta, words, p.Strategy), nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks such
// as code blocks contribute their raw lines; everything else is read from its
// inline children so no text is counted twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if !n.HasChildren() {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
				buf.WriteByte('\n')
			}
		}
		return string(bytes.TrimSpace(buf.Bytes()))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		// Nested blocks and inline containers.
		buf.WriteByte(' ')
		buf.WriteString(extractText(c, src))
		buf.WriteByte(' ')
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
