package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
	"github.com/cognicore/sentiscope/pkg/sentiscope/store"
)

// Store keeps the intermediate tables as CSV files with a header row.
type Store struct {
	cleanedPath string
	labeledPath string
}

var _ store.Store = (*Store)(nil)

// Open returns a store writing to the given paths. Parent directories are
// created on first write.
func Open(cleanedPath, labeledPath string) (*Store, error) {
	if cleanedPath == "" || labeledPath == "" {
		return nil, fmt.Errorf("%w: cleaned and labeled paths are required", internalerr.ErrInvalidConfig)
	}
	return &Store{cleanedPath: cleanedPath, labeledPath: labeledPath}, nil
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// CleanedPath returns the cleaned table's file path.
func (s *Store) CleanedPath() string { return s.cleanedPath }

// LabeledPath returns the labeled table's file path.
func (s *Store) LabeledPath() string { return s.labeledPath }

// WriteCleaned implements store.Store.
func (s *Store) WriteCleaned(ctx context.Context, posts []post.CleanedPost) error {
	rows := make([][]string, len(posts))
	for i, p := range posts {
		rows[i] = cleanedRow(p)
	}
	return writeTable(s.cleanedPath, store.CleanedColumns(), rows)
}

// WriteLabeled implements store.Store.
func (s *Store) WriteLabeled(ctx context.Context, posts []post.LabeledPost) error {
	rows := make([][]string, len(posts))
	for i, p := range posts {
		rows[i] = append(cleanedRow(p.CleanedPost),
			string(p.Sentiment),
			strconv.FormatFloat(p.SentimentScore, 'f', -1, 64),
		)
	}
	return writeTable(s.labeledPath, store.LabeledColumns(), rows)
}

// ReadCleaned implements store.Store.
func (s *Store) ReadCleaned(ctx context.Context) ([]post.CleanedPost, error) {
	rows, err := readTable(s.cleanedPath)
	if err != nil {
		return nil, err
	}
	posts := make([]post.CleanedPost, len(rows))
	for i, row := range rows {
		posts[i] = cleanedFromRow(row)
	}
	return posts, nil
}

// ReadLabeled implements store.Store.
func (s *Store) ReadLabeled(ctx context.Context) ([]post.LabeledPost, error) {
	rows, err := readTable(s.labeledPath)
	if err != nil {
		return nil, err
	}
	posts := make([]post.LabeledPost, len(rows))
	for i, row := range rows {
		label, err := post.ParseSentiment(row[store.ColSentiment])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.labeledPath, i+2, err)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(row[store.ColSentimentScore]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: sentiment_score: %w", s.labeledPath, i+2, err)
		}
		posts[i] = post.LabeledPost{
			CleanedPost:    cleanedFromRow(row),
			Sentiment:      label,
			SentimentScore: score,
		}
	}
	return posts, nil
}

func cleanedRow(p post.CleanedPost) []string {
	return []string{p.ID, p.Username, p.Date, p.CleanedContent}
}

func cleanedFromRow(row map[string]string) post.CleanedPost {
	return post.CleanedPost{
		ID:             row[store.ColID],
		Username:       row[store.ColUsername],
		Date:           row[store.ColDate],
		CleanedContent: row[store.ColCleanedContent],
	}
}

func writeTable(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// readTable returns each data row keyed by header name. Missing cells read
// as empty strings.
func readTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", internalerr.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[strings.TrimSpace(name)] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
