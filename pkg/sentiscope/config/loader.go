package config

import (
	"fmt"

	"github.com/cognicore/sentiscope/pkg/sentiscope/lexicon"
	"github.com/cognicore/sentiscope/pkg/sentiscope/normalize"
	"github.com/cognicore/sentiscope/pkg/sentiscope/stoplist"
)

// Loader loads the normalizer's resource files and constructs it.
type Loader struct {
	StoplistPath string
	LemmaPath    string
	StripMarkup  bool

	// Lemmatizer is the fallback after lemma overrides. Nil loads the
	// English dictionary.
	Lemmatizer normalize.Lemmatizer
}

// NewLoader returns a loader for the normalize section of cfg.
func NewLoader(cfg Normalize) *Loader {
	return &Loader{
		StoplistPath: cfg.StoplistPath,
		LemmaPath:    cfg.LemmaPath,
		StripMarkup:  cfg.StripMarkup,
	}
}

// Components holds the loaded normalization resources.
type Components struct {
	Stoplist   *stoplist.Manager
	Lexicon    *lexicon.Lexicon
	Normalizer *normalize.Normalizer
}

// Load reads the configured files and returns initialized components.
// The English stoplist is always included. A stoplist file adds its terms
// to it and removes its keep words from it.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Stoplist: stoplist.NewEnglish()}

	if l.StoplistPath != "" {
		file, err := stoplist.LoadFile(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, term := range file.Terms {
			comp.Stoplist.Add(term)
		}
		for _, term := range file.Keep {
			comp.Stoplist.Remove(term)
		}
	}

	if l.LemmaPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LemmaPath)
		if err != nil {
			return nil, fmt.Errorf("load lemma overrides: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.New()
	}

	fallback := l.Lemmatizer
	if fallback == nil {
		dict, err := normalize.NewDictionary()
		if err != nil {
			return nil, err
		}
		fallback = dict
	}

	lem := normalize.WithOverrides{Overrides: comp.Lexicon, Fallback: fallback}
	comp.Normalizer = normalize.New(normalize.Options{
		Tokenizer:   normalize.NewTokenizer(comp.Stoplist, lem),
		StripMarkup: l.StripMarkup,
	})
	return comp, nil
}
