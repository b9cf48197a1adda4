package parser

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/dgallion1/docprox/internal/document"
	"github.com/dgallion1/docprox/internal/normalize"
)

// Parser converts raw document bytes into a Document whose canonical forms
// follow the parser's strategy.
type Parser interface {
	Parse(r io.Reader, id string) (*document.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".xml":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options configures the parsers returned by ForFile.
type Options struct {
	Strategy          normalize.Strategy
	FallbackPdftotext bool
}

// ForFile returns the appropriate parser for a corpus identifier.
func ForFile(id string, opts Options) (Parser, error) {
	ext := Ext(id)
	switch ext {
	case ".xml":
		return &XMLParser{Strategy: opts.Strategy}, nil
	case ".txt":
		return &TextParser{Strategy: opts.Strategy}, nil
	case ".md", ".markdown":
		return &MarkdownParser{Strategy: opts.Strategy}, nil
	case ".csv":
		return &CSVParser{Strategy: opts.Strategy}, nil
	case ".html", ".htm":
		return &HTMLParser{Strategy: opts.Strategy}, nil
	case ".pdf":
		return &PDFParser{Strategy: opts.Strategy, FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{Strategy: opts.Strategy}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if an identifier's extension is supported.
func IsSupportedExtension(id string) bool {
	return SupportedExtensions[Ext(id)]
}

// Ext returns the lowercased extension of a corpus identifier. URL query
// strings and the "blob:" prefix are ignored.
func Ext(id string) string {
	return strings.ToLower(path.Ext(idPath(id)))
}

// baseTitle returns the file name of id without its extension.
func baseTitle(id string) string {
	base := path.Base(idPath(id))
	return strings.TrimSuffix(base, path.Ext(base))
}

func idPath(id string) string {
	p := strings.TrimPrefix(id, "blob:")
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			return u.Path
		}
	}
	return strings.ReplaceAll(p, "\\", "/")
}
