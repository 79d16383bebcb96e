package normalize

import (
	"reflect"
	"testing"

	"github.com/cognicore/sentiscope/pkg/sentiscope/lexicon"
	"github.com/cognicore/sentiscope/pkg/sentiscope/stoplist"
)

func TestTokenizer(t *testing.T) {
	lex := lexicon.New()
	lex.AddGroup("be", []string{"was", "is"})
	lex.AddGroup("run", []string{"running", "ran"})

	stops := stoplist.NewManager([]string{"be", "the"})
	tok := NewTokenizer(stops, WithOverrides{Overrides: lex, Fallback: Identity{}})

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"stopwords dropped", "the cat", []string{"cat"}},
		{"lemma applied", "running fast", []string{"run", "fast"}},
		{"lemma is a stopword", "it was late", []string{"it", "late"}},
		{"unicode words kept", "café naïve 42", []string{"café", "naïve", "42"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tok.Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizerNilDefaults(t *testing.T) {
	tok := NewTokenizer(nil, nil)
	got := tok.Tokenize("the quick fox")
	want := []string{"the", "quick", "fox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}
