package post

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Source field names recognized on input records.
const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldDate     = "date"
	FieldContent  = "content"
)

// RawPost is one input record as read from disk.
type RawPost struct {
	ID       string
	Username string
	Date     string
	Content  string
}

// NewRawPost builds a RawPost from a decoded source row.
// Missing or null fields default to the empty string; scalar values of other
// types are rendered in their textual form.
func NewRawPost(row map[string]any) RawPost {
	return RawPost{
		ID:       field(row, FieldID),
		Username: field(row, FieldUsername),
		Date:     field(row, FieldDate),
		Content:  field(row, FieldContent),
	}
}

func field(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// CleanedPost is a RawPost after text normalization.
// CleanedContent is empty exactly when nothing survived normalization.
type CleanedPost struct {
	ID             string
	Username       string
	Date           string
	CleanedContent string
}

// IsEmpty reports whether the cleaned content carries no text.
func (c CleanedPost) IsEmpty() bool {
	return strings.TrimSpace(c.CleanedContent) == ""
}

// LabeledPost is a CleanedPost with its sentiment classification.
type LabeledPost struct {
	CleanedPost
	Sentiment      Sentiment
	SentimentScore float64
}

// Sentiment is the discrete polarity of a post.
type Sentiment string

const (
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Positive Sentiment = "positive"
)

var labels = []Sentiment{Negative, Neutral, Positive}

// Labels returns the classifier's classes in index order.
func Labels() []Sentiment {
	out := make([]Sentiment, len(labels))
	copy(out, labels)
	return out
}

// NumLabels is the size of the classifier's output distribution.
const NumLabels = 3

// Index returns the class index of s, or -1 if s is not a known label.
func (s Sentiment) Index() int {
	for i, l := range labels {
		if l == s {
			return i
		}
	}
	return -1
}

// ParseSentiment accepts label names case-insensitively as well as
// the generic LABEL_0..LABEL_2 names emitted by some model exports.
func ParseSentiment(s string) (Sentiment, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, l := range labels {
		if name == string(l) {
			return l, nil
		}
	}
	if rest, ok := strings.CutPrefix(name, "label_"); ok {
		idx, err := strconv.Atoi(rest)
		if err == nil && idx >= 0 && idx < len(labels) {
			return labels[idx], nil
		}
	}
	return "", fmt.Errorf("unknown sentiment label %q", s)
}
