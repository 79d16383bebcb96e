package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cognicore/sentiscope/internal/logging"
	"github.com/cognicore/sentiscope/pkg/sentiscope"
	"github.com/cognicore/sentiscope/pkg/sentiscope/classify"
	"github.com/cognicore/sentiscope/pkg/sentiscope/classify/huggingface"
	"github.com/cognicore/sentiscope/pkg/sentiscope/config"
	"github.com/cognicore/sentiscope/pkg/sentiscope/report"
	"github.com/cognicore/sentiscope/pkg/sentiscope/store/csvstore"
)

type options struct {
	configPath string
	input      string
	recordCap  int
	batchSize  int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sentiscope",
		Short:         "Batch sentiment analysis for social media posts",
		Long:          "sentiscope loads posts, cleans their text, labels each one negative, neutral or positive, and renders summary charts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.addFlags(rootCmd)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newCleanCmd(opts))
	rootCmd.AddCommand(newClassifyCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))

	return rootCmd
}

func (o *options) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "YAML config file (defaults are used when empty)")
	flags.StringVar(&o.input, "input", "", "input posts file (.json or .csv)")
	flags.IntVar(&o.recordCap, "cap", 0, "maximum number of records to process (0 = all)")
	flags.IntVar(&o.batchSize, "batch-size", 0, "posts per inference call")
	flags.StringVar(&o.logLevel, "log-level", "", "log level: debug|info|warn|error")
}

// resolve merges defaults, the config file, the environment and flags, in
// increasing order of precedence.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	config.LoadEnv(logrus.StandardLogger())

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputPath = o.input
	}
	if flags.Changed("cap") {
		cfg.RecordCap = o.recordCap
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = o.batchSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	return cfg, cfg.Validate()
}

// env is everything a subcommand needs to run the pipeline.
type env struct {
	cfg      config.Config
	logger   *logrus.Logger
	pipeline *sentiscope.Pipeline
	model    classify.Model
}

func (e *env) Close() {
	if e.model != nil {
		if err := e.model.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close model")
		}
	}
	if err := e.pipeline.Close(); err != nil {
		e.logger.WithError(err).Warn("Failed to close store")
	}
}

// setup builds the pipeline. withModel opens the inference client;
// withNormalizer loads the lemma dictionary and stoplists.
func (o *options) setup(cmd *cobra.Command, withModel, withNormalizer bool) (*env, error) {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logrus.SetLevel(logger.GetLevel())

	st, err := csvstore.Open(cfg.Output.CleanedPath, cfg.Output.LabeledPath)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"cleaned": st.CleanedPath(),
		"labeled": st.LabeledPath(),
	}).Debug("Intermediate tables")

	pipeOpts := sentiscope.Options{
		Store:    st,
		Reporter: report.New(cfg.Output.ChartDir, logger),
		Logger:   logger,
	}

	if withNormalizer {
		comp, err := config.NewLoader(cfg.Normalize).Load()
		if err != nil {
			return nil, err
		}
		pipeOpts.Normalizer = comp.Normalizer
		logger.WithFields(logrus.Fields{
			"stopwords":       comp.Stoplist.Len(),
			"lemma_overrides": comp.Lexicon.Len(),
		}).Debug("Normalizer ready")
	}

	var model classify.Model
	if withModel {
		client, err := huggingface.Open(cmd.Context(), cfg.HuggingFace())
		if err != nil {
			return nil, err
		}
		model = client
		clf, err := classify.New(client, cfg.BatchSize)
		if err != nil {
			client.Close()
			return nil, err
		}
		pipeOpts.Classifier = clf
		logger.WithFields(logrus.Fields{
			"model":    cfg.Classifier.Model,
			"endpoint": client.Endpoint,
		}).Info("Sentiment model ready")
	}

	pipeline, err := sentiscope.New(pipeOpts)
	if err != nil {
		if model != nil {
			model.Close()
		}
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, pipeline: pipeline, model: model}, nil
}

func (e *env) runConfig() sentiscope.RunConfig {
	return sentiscope.RunConfig{InputPath: e.cfg.InputPath, RecordCap: e.cfg.RecordCap}
}

func printSummary(w io.Writer, sum sentiscope.Summary) {
	fmt.Fprintf(w, "run %s: %d posts (%d empty after cleaning)\n", sum.RunID, sum.Loaded, sum.Empty)
	for _, c := range sum.Counts {
		fmt.Fprintf(w, "  %-8s %d\n", c.Label, c.Count)
	}
	for _, path := range sum.Charts.Written {
		fmt.Fprintf(w, "  chart    %s\n", path)
	}
	for _, name := range sum.Charts.Skipped {
		fmt.Fprintf(w, "  skipped  %s\n", name)
	}
	for name, err := range sum.Charts.Errors {
		fmt.Fprintf(w, "  failed   %s: %v\n", name, err)
	}
}
