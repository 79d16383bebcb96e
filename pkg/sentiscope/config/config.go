package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/sentiscope/pkg/sentiscope/classify"
	"github.com/cognicore/sentiscope/pkg/sentiscope/classify/huggingface"
	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
)

// Environment variables that override file settings.
const (
	EnvInput     = "SENTISCOPE_INPUT"
	EnvRecordCap = "SENTISCOPE_RECORD_CAP"
	EnvBatchSize = "SENTISCOPE_BATCH_SIZE"
	EnvModel     = "SENTISCOPE_MODEL"
	EnvBaseURL   = "SENTISCOPE_BASE_URL"
	EnvEndpoint  = "SENTISCOPE_ENDPOINT"
	EnvToken     = "HF_TOKEN"
	EnvLogLevel  = "LOG_LEVEL"
)

// Config is the run configuration.
type Config struct {
	InputPath  string     `yaml:"input_path"`
	RecordCap  int        `yaml:"record_cap"`
	BatchSize  int        `yaml:"batch_size"`
	Output     Output     `yaml:"output"`
	Normalize  Normalize  `yaml:"normalize"`
	Classifier Classifier `yaml:"classifier"`
	LogLevel   string     `yaml:"log_level"`
	LogFormat  string     `yaml:"log_format"`
}

// Output names the intermediate tables and the chart directory.
type Output struct {
	CleanedPath string `yaml:"cleaned_path"`
	LabeledPath string `yaml:"labeled_path"`
	ChartDir    string `yaml:"chart_dir"`
}

// Normalize configures text cleaning.
type Normalize struct {
	StripMarkup  bool   `yaml:"strip_markup"`
	StoplistPath string `yaml:"stoplist_path"`
	LemmaPath    string `yaml:"lemma_path"`
}

// Classifier configures the inference backend.
type Classifier struct {
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Endpoint string        `yaml:"endpoint"` // full URL; overrides base_url and model
	APIToken string        `yaml:"api_token"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputPath: "data/sample_tweets.json",
		BatchSize: classify.DefaultBatchSize,
		Output: Output{
			CleanedPath: "data/clean_tweets.csv",
			LabeledPath: "data/sentiment_tweets.csv",
			ChartDir:    "data",
		},
		Normalize: Normalize{StripMarkup: true},
		Classifier: Classifier{
			Model:   huggingface.DefaultModel,
			BaseURL: huggingface.DefaultBaseURL,
			Timeout: huggingface.DefaultTimeout,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads .env and .env.local from the working directory if present.
// Variables already set in the process environment win.
func LoadEnv(logger logrus.FieldLogger) {
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err != nil {
			if !errors.Is(err, fs.ErrNotExist) && logger != nil {
				logger.WithError(err).Warnf("Cannot stat %s", file)
			}
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		if logger != nil {
			logger.Debugf("Loaded env file %s", file)
		}
	}
}

// ApplyEnv overrides fields from the environment. Malformed integers are
// reported rather than ignored.
func (c *Config) ApplyEnv() error {
	c.InputPath = GetEnv(EnvInput, c.InputPath)
	c.Classifier.Model = GetEnv(EnvModel, c.Classifier.Model)
	c.Classifier.BaseURL = GetEnv(EnvBaseURL, c.Classifier.BaseURL)
	c.Classifier.Endpoint = GetEnv(EnvEndpoint, c.Classifier.Endpoint)
	c.Classifier.APIToken = GetEnv(EnvToken, c.Classifier.APIToken)
	c.LogLevel = GetEnv(EnvLogLevel, c.LogLevel)

	var err error
	if c.RecordCap, err = getEnvInt(EnvRecordCap, c.RecordCap); err != nil {
		return err
	}
	if c.BatchSize, err = getEnvInt(EnvBatchSize, c.BatchSize); err != nil {
		return err
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.InputPath) == "" {
		problems = append(problems, "input_path is empty")
	}
	if c.RecordCap < 0 {
		problems = append(problems, fmt.Sprintf("record_cap must be >= 0, got %d", c.RecordCap))
	}
	if c.BatchSize <= 0 {
		problems = append(problems, fmt.Sprintf("batch_size must be > 0, got %d", c.BatchSize))
	}
	if strings.TrimSpace(c.Classifier.Model) == "" {
		problems = append(problems, "classifier.model is empty")
	}
	if c.Classifier.Timeout < 0 {
		problems = append(problems, "classifier.timeout is negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// HuggingFace returns the inference client settings.
func (c Config) HuggingFace() huggingface.Config {
	return huggingface.Config{
		BaseURL:  c.Classifier.BaseURL,
		Model:    c.Classifier.Model,
		Endpoint: c.Classifier.Endpoint,
		APIToken: c.Classifier.APIToken,
		Timeout:  c.Classifier.Timeout,
	}
}

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s=%q is not an integer", internalerr.ErrInvalidConfig, key, value)
	}
	return n, nil
}
