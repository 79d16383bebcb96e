package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

// Output file names, relative to the chart directory.
const (
	DistributionFile = "sentiment_distribution_bar.png"
	ProportionFile   = "sentiment_proportion_pie.png"
	TrendFile        = "sentiment_trend_over_time.png"
)

// Reporter renders the summary charts into a directory.
type Reporter struct {
	dir    string
	logger logrus.FieldLogger
}

// New creates a reporter writing into dir. A nil logger uses logrus'
// standard logger.
func New(dir string, logger logrus.FieldLogger) *Reporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reporter{dir: dir, logger: logger}
}

// Dir returns the chart directory.
func (r *Reporter) Dir() string {
	return r.dir
}

// Result records what RenderAll produced.
type Result struct {
	Written []string         // paths of charts written
	Skipped []string         // chart files intentionally not produced
	Errors  map[string]error // chart file -> render/write failure
}

// Failed reports whether any chart failed.
func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

// RenderAll writes the distribution, proportion and trend charts. Each chart
// is independent: a failure is logged and recorded but never stops the
// others. The trend chart is skipped when any post lacks a parseable date.
func (r *Reporter) RenderAll(posts []post.LabeledPost) Result {
	res := Result{Errors: make(map[string]error)}
	counts := Counts(posts)

	r.logger.Info("Generating sentiment bar chart")
	r.render(&res, DistributionFile, func(w io.Writer) error {
		return RenderDistribution(w, counts)
	})

	r.logger.Info("Generating sentiment pie chart")
	r.render(&res, ProportionFile, func(w io.Writer) error {
		return RenderProportion(w, counts)
	})

	r.logger.Info("Generating sentiment time-series chart (if possible)")
	trend, err := Trend(posts)
	if err != nil {
		if errors.Is(err, internalerr.ErrDateParse) || errors.Is(err, internalerr.ErrNoData) {
			r.logger.WithError(err).Warn("Skipping time-series chart")
			res.Skipped = append(res.Skipped, TrendFile)
			return res
		}
		r.logger.WithError(err).Error("Time-series chart failed")
		res.Errors[TrendFile] = err
		return res
	}
	r.render(&res, TrendFile, func(w io.Writer) error {
		return RenderTrend(w, trend)
	})

	return res
}

func (r *Reporter) render(res *Result, name string, draw func(io.Writer) error) {
	path := filepath.Join(r.dir, name)
	if err := writeChart(path, draw); err != nil {
		r.logger.WithError(err).WithField("path", path).Error("Chart failed")
		res.Errors[name] = err
		return
	}
	r.logger.WithField("path", path).Info("Chart saved")
	res.Written = append(res.Written, path)
}

// writeChart renders into memory first so a failed render leaves no file.
func writeChart(path string, draw func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
