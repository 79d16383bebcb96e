package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cognicore/sentiscope/pkg/sentiscope/classify"
	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

// Defaults for the hosted inference endpoint.
const (
	DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"
	DefaultModel   = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	DefaultTimeout = 60 * time.Second
)

// Config selects the model and endpoint.
type Config struct {
	BaseURL  string
	Model    string
	Endpoint string // full URL; overrides BaseURL/Model when set
	APIToken string
	Timeout  time.Duration
}

// Client calls a text-classification inference endpoint that accepts a list
// of inputs and answers with per-input label scores.
type Client struct {
	Endpoint string
	APIToken string

	HTTPClient *http.Client
}

var _ classify.Model = (*Client)(nil)

type requestPayload struct {
	Inputs     []string          `json:"inputs"`
	Parameters requestParameters `json:"parameters"`
}

type requestParameters struct {
	TopK       int  `json:"top_k"`
	Truncation bool `json:"truncation"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Open resolves the model endpoint and returns a client ready for Predict.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		base := strings.TrimRight(cfg.BaseURL, "/")
		if base == "" {
			base = DefaultBaseURL
		}
		model := strings.Trim(cfg.Model, "/ ")
		if model == "" {
			return nil, fmt.Errorf("%w: model name required", internalerr.ErrInvalidConfig)
		}
		endpoint = base + "/" + model
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		Endpoint:   endpoint,
		APIToken:   cfg.APIToken,
		HTTPClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// Predict implements classify.Model.
func (c *Client) Predict(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if c.Endpoint == "" {
		return nil, fmt.Errorf("%w: inference endpoint required", internalerr.ErrInvalidConfig)
	}

	body, err := json.Marshal(requestPayload{
		Inputs:     texts,
		Parameters: requestParameters{TopK: post.NumLabels, Truncation: true},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIToken)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: http %d: %s", internalerr.ErrModel, resp.StatusCode, excerpt(data))
	}

	scores, err := decodeScores(data, len(texts))
	if err != nil {
		return nil, err
	}
	if len(scores) != len(texts) {
		return nil, fmt.Errorf("%w: %d results for %d inputs", internalerr.ErrModel, len(scores), len(texts))
	}

	out := make([][]float64, len(scores))
	for i, list := range scores {
		dist, err := toDistribution(list)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		out[i] = dist
	}
	return out, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.httpClient().CloseIdleConnections()
	return nil
}

// decodeScores accepts the batched [[...], ...] shape and, for a single input,
// the flat [...] shape some servers return.
func decodeScores(data []byte, inputs int) ([][]labelScore, error) {
	var batched [][]labelScore
	if err := json.Unmarshal(data, &batched); err == nil {
		return batched, nil
	}

	var flat []labelScore
	if err := json.Unmarshal(data, &flat); err == nil && inputs == 1 {
		return [][]labelScore{flat}, nil
	}

	return nil, fmt.Errorf("%w: unexpected response: %s", internalerr.ErrModel, excerpt(data))
}

func toDistribution(list []labelScore) ([]float64, error) {
	dist := make([]float64, post.NumLabels)
	for _, ls := range list {
		label, err := post.ParseSentiment(ls.Label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrModel, err)
		}
		dist[label.Index()] = ls.Score
	}
	return dist, nil
}

func excerpt(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
