package sentiscope

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/sentiscope/pkg/sentiscope/classify"
	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/loader"
	"github.com/cognicore/sentiscope/pkg/sentiscope/normalize"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
	"github.com/cognicore/sentiscope/pkg/sentiscope/report"
	"github.com/cognicore/sentiscope/pkg/sentiscope/store"
)

// Pipeline runs load, normalize, classify and report over a batch of posts.
type Pipeline struct {
	store      store.Store
	normalizer *normalize.Normalizer
	classifier *classify.Classifier
	reporter   *report.Reporter
	logger     logrus.FieldLogger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Pipeline. Classifier may be nil when only Report is
// used; Normalizer defaults to normalize.New with markup stripping.
type Options struct {
	Store      store.Store
	Normalizer *normalize.Normalizer
	Classifier *classify.Classifier
	Reporter   *report.Reporter
	Logger     logrus.FieldLogger
}

// RunConfig selects the input for a run.
type RunConfig struct {
	InputPath string
	RecordCap int // 0 means all records
}

// Summary describes a completed run.
type Summary struct {
	RunID  string
	Loaded int
	Empty  int // posts with no text left after cleaning
	Counts []report.LabelCount
	Charts report.Result
}

// New creates a Pipeline with the given dependencies.
func New(opts Options) (*Pipeline, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: store is required", internalerr.ErrInvalidConfig)
	}
	if opts.Reporter == nil {
		return nil, fmt.Errorf("%w: reporter is required", internalerr.ErrInvalidConfig)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	norm := opts.Normalizer
	if norm == nil {
		norm = normalize.New(normalize.Options{StripMarkup: true})
	}
	return &Pipeline{
		store:      opts.Store,
		normalizer: norm,
		classifier: opts.Classifier,
		reporter:   opts.Reporter,
		logger:     logger,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close releases the store.
func (p *Pipeline) Close() error {
	return p.store.Close()
}

func (p *Pipeline) newRunID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Now(), p.entropy).String()
}

func (p *Pipeline) runLogger(runID string) logrus.FieldLogger {
	return p.logger.WithField("run_id", runID)
}

// Run executes all four stages. Chart failures are recorded in the summary;
// any other stage error aborts the run. Tables written before the failure
// are left in place.
func (p *Pipeline) Run(ctx context.Context, cfg RunConfig) (Summary, error) {
	if p.classifier == nil {
		return Summary{}, fmt.Errorf("%w: classifier is required", internalerr.ErrInvalidConfig)
	}
	sum, cleaned, log, err := p.clean(ctx, cfg)
	if err != nil {
		return sum, err
	}

	labeled, err := p.classify(ctx, log, cleaned)
	if err != nil {
		return sum, err
	}
	p.report(log, labeled, &sum)
	log.Info("Pipeline complete")
	return sum, nil
}

// Clean runs load and normalize only, writing the cleaned table.
func (p *Pipeline) Clean(ctx context.Context, cfg RunConfig) (Summary, error) {
	sum, _, log, err := p.clean(ctx, cfg)
	if err != nil {
		return sum, err
	}
	log.Info("Cleaning complete")
	return sum, nil
}

// Classify resumes from the saved cleaned table: classify, then report.
func (p *Pipeline) Classify(ctx context.Context) (Summary, error) {
	if p.classifier == nil {
		return Summary{}, fmt.Errorf("%w: classifier is required", internalerr.ErrInvalidConfig)
	}
	sum := Summary{RunID: p.newRunID()}
	log := p.runLogger(sum.RunID)

	cleaned, err := p.store.ReadCleaned(ctx)
	if err != nil {
		return sum, fmt.Errorf("read cleaned posts: %w", err)
	}
	sum.Loaded = len(cleaned)
	sum.Empty = countEmpty(cleaned)
	log.WithField("count", len(cleaned)).Info("Loaded cleaned posts")

	labeled, err := p.classify(ctx, log, cleaned)
	if err != nil {
		return sum, err
	}
	p.report(log, labeled, &sum)
	log.Info("Pipeline complete")
	return sum, nil
}

// Report resumes from the saved labeled table and renders the charts.
func (p *Pipeline) Report(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: p.newRunID()}
	log := p.runLogger(sum.RunID)

	labeled, err := p.store.ReadLabeled(ctx)
	if err != nil {
		return sum, fmt.Errorf("read labeled posts: %w", err)
	}
	sum.Loaded = len(labeled)
	for _, lp := range labeled {
		if lp.IsEmpty() {
			sum.Empty++
		}
	}
	log.WithField("count", len(labeled)).Info("Loaded labeled posts")

	p.report(log, labeled, &sum)
	return sum, nil
}

func (p *Pipeline) clean(ctx context.Context, cfg RunConfig) (Summary, []post.CleanedPost, logrus.FieldLogger, error) {
	sum := Summary{RunID: p.newRunID()}
	log := p.runLogger(sum.RunID)

	log.WithFields(logrus.Fields{
		"stage": 1,
		"path":  cfg.InputPath,
	}).Info("[1/4] Loading raw posts")
	raw, err := loader.Load(cfg.InputPath, loader.Options{Limit: cfg.RecordCap})
	if err != nil {
		return sum, nil, log, fmt.Errorf("load posts: %w", err)
	}
	sum.Loaded = len(raw)
	log.WithField("count", len(raw)).Info("Loaded raw posts")

	if err := ctx.Err(); err != nil {
		return sum, nil, log, err
	}

	log.WithField("stage", 2).Info("[2/4] Cleaning text")
	cleaned := p.normalizer.ProcessAll(raw)
	sum.Empty = countEmpty(cleaned)
	if err := p.store.WriteCleaned(ctx, cleaned); err != nil {
		return sum, nil, log, fmt.Errorf("write cleaned posts: %w", err)
	}
	log.WithFields(logrus.Fields{
		"count": len(cleaned),
		"empty": sum.Empty,
	}).Info("Saved cleaned posts")

	return sum, cleaned, log, nil
}

func (p *Pipeline) classify(ctx context.Context, log logrus.FieldLogger, cleaned []post.CleanedPost) ([]post.LabeledPost, error) {
	log.WithFields(logrus.Fields{
		"stage":      3,
		"batch_size": p.classifier.BatchSize(),
	}).Info("[3/4] Running sentiment analysis")
	p.classifier.SetLogger(log)

	labeled, err := p.classifier.Classify(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("classify posts: %w", err)
	}
	if err := p.store.WriteLabeled(ctx, labeled); err != nil {
		return nil, fmt.Errorf("write labeled posts: %w", err)
	}
	log.WithField("count", len(labeled)).Info("Saved labeled posts")
	return labeled, nil
}

func (p *Pipeline) report(log logrus.FieldLogger, labeled []post.LabeledPost, sum *Summary) {
	log.WithFields(logrus.Fields{
		"stage": 4,
		"path":  p.reporter.Dir(),
	}).Info("[4/4] Generating visualizations")
	sum.Counts = report.Counts(labeled)
	sum.Charts = p.reporter.RenderAll(labeled)
	for _, c := range sum.Counts {
		log.WithFields(logrus.Fields{
			"sentiment": c.Label,
			"count":     c.Count,
		}).Info("Sentiment count")
	}
}

func countEmpty(posts []post.CleanedPost) int {
	n := 0
	for _, p := range posts {
		if p.IsEmpty() {
			n++
		}
	}
	return n
}
