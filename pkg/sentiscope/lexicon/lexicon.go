package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps inflected word forms to a dictionary base form (lemma).
// It is used to override or extend the dictionary lemmatizer for slang and
// domain vocabulary that a general English dictionary gets wrong:
//
//	luv, luvs, loving -> love
//	gr8              -> great
type Lexicon struct {
	// lemma -> all forms (including the lemma itself)
	forms map[string][]string

	// form -> lemma
	reverseIndex map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		forms:        make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadFromYAML loads lemma groups from a YAML file.
//
// Expected format:
//
//	lemmas:
//	  - lemma: love
//	    forms: [luv, luvs, loving]
//	  - lemma: great
//	    forms: [gr8]
//
// All entries are lowercased.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Lemmas []struct {
			Lemma string   `yaml:"lemma"`
			Forms []string `yaml:"forms"`
		} `yaml:"lemmas"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	lex := New()
	for _, entry := range config.Lemmas {
		if strings.TrimSpace(entry.Lemma) == "" {
			continue
		}
		lex.AddGroup(entry.Lemma, entry.Forms)
	}
	return lex, nil
}

// AddGroup registers a lemma and its forms. The lemma always maps to itself.
// Re-adding a lemma replaces its previous forms.
func (l *Lexicon) AddGroup(lemma string, forms []string) {
	lemma = strings.ToLower(strings.TrimSpace(lemma))

	if old, exists := l.forms[lemma]; exists {
		for _, f := range old {
			delete(l.reverseIndex, f)
		}
	}

	normalized := make([]string, 0, len(forms)+1)
	seen := make(map[string]bool)

	normalized = append(normalized, lemma)
	seen[lemma] = true

	for _, f := range forms {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !seen[f] {
			normalized = append(normalized, f)
			seen[f] = true
		}
	}

	l.forms[lemma] = normalized
	for _, f := range normalized {
		l.reverseIndex[f] = lemma
	}
}

// Lookup returns the lemma registered for a form.
func (l *Lexicon) Lookup(form string) (string, bool) {
	lemma, ok := l.reverseIndex[strings.ToLower(form)]
	return lemma, ok
}

// Len returns the number of lemma groups.
func (l *Lexicon) Len() int {
	return len(l.forms)
}
