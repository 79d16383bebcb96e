package stoplist

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manager holds the stopword set used by the normalizer.
// It is not safe for concurrent mutation; build it once, then only read.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist manager seeded with the given words.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		if s = normalize(s); s != "" {
			stops[s] = struct{}{}
		}
	}
	return &Manager{stops: stops}
}

// NewEnglish creates a manager seeded with English().
func NewEnglish() *Manager {
	return NewManager(English())
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[normalize(token)]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	if token = normalize(token); token != "" {
		m.stops[token] = struct{}{}
	}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, normalize(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// File is the YAML stoplist format. Terms are added to the stoplist and
// Keep names words to remove from it, such as negations that carry
// sentiment:
//
//	terms: [lol, rt, amp]
//	keep: [not, no, nor]
type File struct {
	Terms []string `yaml:"terms"`
	Keep  []string `yaml:"keep"`
}

// LoadFile reads a YAML stoplist file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
