package normalize

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/cognicore/sentiscope/pkg/sentiscope/lexicon"
)

// Lemmatizer reduces a lowercase word to its dictionary base form.
// Words it does not know are returned unchanged.
type Lemmatizer interface {
	Lemma(word string) string
}

// Identity is a Lemmatizer that leaves every word as is.
type Identity struct{}

// Lemma implements Lemmatizer.
func (Identity) Lemma(word string) string { return word }

// Dictionary lemmatizes with the golem English dictionary.
type Dictionary struct {
	golem *golem.Lemmatizer
}

// NewDictionary loads the English lemma dictionary. Loading decompresses the
// embedded word list, so construct it once per process.
func NewDictionary() (*Dictionary, error) {
	g, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &Dictionary{golem: g}, nil
}

// Lemma implements Lemmatizer.
func (d *Dictionary) Lemma(word string) string {
	return strings.ToLower(d.golem.Lemma(word))
}

// WithOverrides consults a lexicon of explicit lemma mappings before falling
// back to another lemmatizer.
type WithOverrides struct {
	Overrides *lexicon.Lexicon
	Fallback  Lemmatizer
}

// Lemma implements Lemmatizer.
func (w WithOverrides) Lemma(word string) string {
	if w.Overrides != nil {
		if lemma, ok := w.Overrides.Lookup(word); ok {
			return lemma
		}
	}
	if w.Fallback == nil {
		return word
	}
	return w.Fallback.Lemma(word)
}
