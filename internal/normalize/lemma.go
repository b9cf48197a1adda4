package normalize

import (
	"fmt"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// lemmatizer loads the English dictionary on first use.
var lemmatizer = sync.OnceValue(func() *golem.Lemmatizer {
	l, err := golem.New(en.New())
	if err != nil {
		panic(fmt.Sprintf("normalize: load english lemma dictionary: %v", err))
	}
	return l
})

// Lemma maps a folded word to its dictionary form. Words missing from the
// dictionary are returned unchanged.
func Lemma(w string) string {
	if w == "" {
		return ""
	}
	return lemmatizer().Lemma(w)
}
