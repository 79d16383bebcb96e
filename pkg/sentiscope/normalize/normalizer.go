package normalize

import (
	"strings"

	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
	"github.com/cognicore/sentiscope/pkg/sentiscope/stoplist"
)

// Normalizer turns raw post text into the cleaned form fed to the classifier.
// It strips markup, removes links, mentions, hashtags and punctuation,
// lowercases, then drops stopwords and lemmatizes the remaining tokens.
// A Normalizer is read-only after construction.
type Normalizer struct {
	tokenizer   *Tokenizer
	stripMarkup bool
}

// Options configures a Normalizer.
type Options struct {
	Tokenizer   *Tokenizer
	StripMarkup bool
}

// New creates a Normalizer. A nil tokenizer uses the English stoplist
// without lemmatization.
func New(opts Options) *Normalizer {
	tok := opts.Tokenizer
	if tok == nil {
		tok = NewTokenizer(stoplist.NewEnglish(), nil)
	}
	return &Normalizer{tokenizer: tok, stripMarkup: opts.StripMarkup}
}

// Normalize returns the cleaned form of text. Text that is empty after
// cleaning is returned as "" without being tokenized.
func (n *Normalizer) Normalize(text string) string {
	if n.stripMarkup {
		text = StripMarkup(text)
	}
	text = Clean(text)
	if text == "" {
		return ""
	}
	return strings.Join(n.tokenizer.Tokenize(text), " ")
}

// Process derives the CleanedPost for one raw post.
func (n *Normalizer) Process(p post.RawPost) post.CleanedPost {
	return post.CleanedPost{
		ID:             p.ID,
		Username:       p.Username,
		Date:           p.Date,
		CleanedContent: n.Normalize(p.Content),
	}
}

// ProcessAll normalizes posts, preserving order.
func (n *Normalizer) ProcessAll(posts []post.RawPost) []post.CleanedPost {
	out := make([]post.CleanedPost, len(posts))
	for i, p := range posts {
		out[i] = n.Process(p)
	}
	return out
}
