package classify

import "context"

// Model is a loaded three-class sentiment model. Predict returns one
// probability distribution per input text, ordered negative, neutral, positive.
// A Model is opened once per process and used read-only until Close.
type Model interface {
	Predict(ctx context.Context, texts []string) ([][]float64, error)
	Close() error
}

// Func adapts a plain scoring function to Model.
type Func func(ctx context.Context, texts []string) ([][]float64, error)

// Predict implements Model.
func (f Func) Predict(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}

// Close implements Model.
func (f Func) Close() error { return nil }
