package parser

import (
	"strings"

	"github.com/dgallion1/docprox/internal/document"
)

// appendWords splits text on whitespace and appends the tokens to words.
// Punctuation stays attached to the raw word; normalization strips it.
func appendWords(words []document.RawWord, text string) []document.RawWord {
	for _, f := range strings.Fields(text) {
		words = append(words, document.RawWord{Text: f})
	}
	return words
}
