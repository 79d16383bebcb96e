package classify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

// Placeholder stands in for empty text, which the model cannot score.
// Its prediction is always discarded.
const Placeholder = "[EMPTY]"

// DefaultBatchSize is the number of posts sent to the model per call.
const DefaultBatchSize = 8

// Classifier labels cleaned posts in fixed-size batches.
type Classifier struct {
	model     Model
	batchSize int
	logger    logrus.FieldLogger
}

// New creates a classifier over model with the given batch size.
func New(model Model, batchSize int) (*Classifier, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is required", internalerr.ErrInvalidConfig)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", internalerr.ErrInvalidConfig, batchSize)
	}
	return &Classifier{
		model:     model,
		batchSize: batchSize,
		logger:    logrus.StandardLogger(),
	}, nil
}

// SetLogger assigns the logger used for batch progress.
func (c *Classifier) SetLogger(logger logrus.FieldLogger) {
	if logger != nil {
		c.logger = logger
	}
}

// BatchSize returns the configured batch size.
func (c *Classifier) BatchSize() int {
	return c.batchSize
}

// Classify labels posts, returning one LabeledPost per input in input order.
// Posts with empty cleaned content are always neutral with score 0.
func (c *Classifier) Classify(ctx context.Context, posts []post.CleanedPost) ([]post.LabeledPost, error) {
	texts := make([]string, len(posts))
	for i, p := range posts {
		if p.IsEmpty() {
			texts[i] = Placeholder
		} else {
			texts[i] = p.CleanedContent
		}
	}

	results := make([]post.LabeledPost, 0, len(posts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))

		probs, err := c.model.Predict(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("classify posts %d-%d: %w", start, end-1, err)
		}
		if len(probs) != end-start {
			return nil, fmt.Errorf("%w: %d predictions for %d inputs", internalerr.ErrModel, len(probs), end-start)
		}

		for j, dist := range probs {
			p := posts[start+j]
			label, score, err := Argmax(dist)
			if err != nil {
				return nil, fmt.Errorf("post %d: %w", start+j, err)
			}
			if p.IsEmpty() {
				label, score = post.Neutral, 0
			}
			results = append(results, post.LabeledPost{
				CleanedPost:    p,
				Sentiment:      label,
				SentimentScore: score,
			})
		}

		c.logger.WithFields(logrus.Fields{
			"done":  end,
			"total": len(texts),
		}).Debug("classified batch")
	}

	return results, nil
}

// Argmax picks the most probable class. Ties go to the lowest class index.
func Argmax(dist []float64) (post.Sentiment, float64, error) {
	if len(dist) != post.NumLabels {
		return "", 0, fmt.Errorf("%w: expected %d class probabilities, got %d", internalerr.ErrModel, post.NumLabels, len(dist))
	}
	idx := floats.MaxIdx(dist)
	return post.Labels()[idx], dist[idx], nil
}
