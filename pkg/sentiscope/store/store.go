package store

import (
	"context"

	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

// Store persists the intermediate tables written between pipeline stages.
// Each write replaces the previous table.
type Store interface {
	Close() error

	WriteCleaned(ctx context.Context, posts []post.CleanedPost) error
	ReadCleaned(ctx context.Context) ([]post.CleanedPost, error)

	WriteLabeled(ctx context.Context, posts []post.LabeledPost) error
	ReadLabeled(ctx context.Context) ([]post.LabeledPost, error)
}

// Column names of the intermediate tables.
const (
	ColID             = "id"
	ColUsername       = "username"
	ColDate           = "date"
	ColCleanedContent = "cleaned_content"
	ColSentiment      = "sentiment"
	ColSentimentScore = "sentiment_score"
)

// CleanedColumns is the header of the cleaned-posts table.
func CleanedColumns() []string {
	return []string{ColID, ColUsername, ColDate, ColCleanedContent}
}

// LabeledColumns is the header of the labeled-posts table.
func LabeledColumns() []string {
	return append(CleanedColumns(), ColSentiment, ColSentimentScore)
}
