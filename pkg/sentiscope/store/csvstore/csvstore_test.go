package csvstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := Open(filepath.Join(dir, "clean.csv"), filepath.Join(dir, "sentiment.csv"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestCleanedRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	in := []post.CleanedPost{
		{ID: "1", Username: "ann", Date: "2024-01-01", CleanedContent: "love dog"},
		{ID: "2", Username: "b,ob", Date: "", CleanedContent: ""},
		{ID: "3", Username: "cy", Date: "2024-01-03", CleanedContent: "multi\nline \"quoted\""},
	}

	if err := s.WriteCleaned(ctx, in); err != nil {
		t.Fatalf("WriteCleaned: %v", err)
	}

	data, err := os.ReadFile(s.CleanedPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "id,username,date,cleaned_content\n") {
		t.Errorf("unexpected header in %q", data)
	}

	out, err := s.ReadCleaned(ctx)
	if err != nil {
		t.Fatalf("ReadCleaned: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d rows, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("row %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestLabeledRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	in := []post.LabeledPost{
		{CleanedPost: post.CleanedPost{ID: "1", CleanedContent: "great"}, Sentiment: post.Positive, SentimentScore: 0.9731},
		{CleanedPost: post.CleanedPost{ID: "2"}, Sentiment: post.Neutral, SentimentScore: 0},
	}
	if err := s.WriteLabeled(ctx, in); err != nil {
		t.Fatalf("WriteLabeled: %v", err)
	}

	data, err := os.ReadFile(s.LabeledPath())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "id,username,date,cleaned_content,sentiment,sentiment_score" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,,,great,positive,0.9731" {
		t.Errorf("row = %q", lines[1])
	}

	out, err := s.ReadLabeled(ctx)
	if err != nil {
		t.Fatalf("ReadLabeled: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("row %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	_ = s.WriteCleaned(ctx, []post.CleanedPost{{ID: "1"}, {ID: "2"}})
	if err := s.WriteCleaned(ctx, []post.CleanedPost{{ID: "3"}}); err != nil {
		t.Fatal(err)
	}
	out, err := s.ReadCleaned(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "3" {
		t.Errorf("second write should replace the first, got %+v", out)
	}
}

func TestReadMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.ReadLabeled(context.Background()); !errors.Is(err, internalerr.ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestReadLabeledBadRows(t *testing.T) {
	s := openTemp(t)
	if err := os.MkdirAll(filepath.Dir(s.LabeledPath()), 0755); err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"bad label": "id,sentiment,sentiment_score\n1,angry,0.5\n",
		"bad score": "id,sentiment,sentiment_score\n1,neutral,abc\n",
	}
	for name, content := range cases {
		if err := os.WriteFile(s.LabeledPath(), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := s.ReadLabeled(context.Background()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestOpenValidation(t *testing.T) {
	if _, err := Open("", "x.csv"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
