package normalize

import (
	"strings"
	"unicode"

	"github.com/cognicore/sentiscope/pkg/sentiscope/stoplist"
)

// Tokenizer splits cleaned text into lemmatized, stopword-free tokens.
type Tokenizer struct {
	stoplist   *stoplist.Manager
	lemmatizer Lemmatizer
}

// NewTokenizer creates a tokenizer. A nil stoplist filters nothing and a nil
// lemmatizer keeps tokens as they are.
func NewTokenizer(stops *stoplist.Manager, lem Lemmatizer) *Tokenizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	if lem == nil {
		lem = Identity{}
	}
	return &Tokenizer{stoplist: stops, lemmatizer: lem}
}

// Tokenize splits text on word boundaries, drops stopwords and lemmatizes what
// remains. A token whose lemma is a stopword is dropped as well.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func (t *Tokenizer) processToken(token string) string {
	if t.stoplist.IsStop(token) {
		return ""
	}
	lemma := t.lemmatizer.Lemma(token)
	if lemma == "" || t.stoplist.IsStop(lemma) {
		return ""
	}
	return lemma
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || r == '_'
}
