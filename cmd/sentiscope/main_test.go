package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/cognicore/sentiscope/pkg/sentiscope/config"
	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/report"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sentiscope.yaml")
	writeFile(t, cfgPath, "input_path: file.json\nbatch_size: 4\nrecord_cap: 7\n")
	t.Setenv(config.EnvBatchSize, "6")
	t.Setenv(config.EnvInput, "env.json")

	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	opts.addFlags(cmd)
	if err := cmd.ParseFlags([]string{"--config", cfgPath, "--batch-size", "3"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg, err := opts.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.BatchSize != 3 {
		t.Errorf("flag should win: BatchSize = %d", cfg.BatchSize)
	}
	if cfg.InputPath != "env.json" {
		t.Errorf("env should beat file: InputPath = %q", cfg.InputPath)
	}
	if cfg.RecordCap != 7 {
		t.Errorf("file should beat default: RecordCap = %d", cfg.RecordCap)
	}
}

func TestResolveRejectsBadBatchSize(t *testing.T) {
	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	opts.addFlags(cmd)
	if err := cmd.ParseFlags([]string{"--batch-size", "0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := opts.resolve(cmd); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	labeled := filepath.Join(dir, "sentiment.csv")
	writeFile(t, labeled, "id,username,date,cleaned_content,sentiment,sentiment_score\n"+
		"1,a,2024-01-01,great day,positive,0.9\n"+
		"2,b,2024-01-02,,neutral,0\n"+
		"3,c,2024-01-02,awful,negative,0.8\n")

	cfgPath := filepath.Join(dir, "sentiscope.yaml")
	writeFile(t, cfgPath, "output:\n  cleaned_path: "+filepath.Join(dir, "clean.csv")+
		"\n  labeled_path: "+labeled+
		"\n  chart_dir: "+filepath.Join(dir, "charts")+"\nlog_level: error\n")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"report", "--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("report: %v", err)
	}

	if !strings.Contains(out.String(), "3 posts (1 empty after cleaning)") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
	for _, name := range []string{report.DistributionFile, report.ProportionFile, report.TrendFile} {
		if _, err := os.Stat(filepath.Join(dir, "charts", name)); err != nil {
			t.Errorf("missing chart %s: %v", name, err)
		}
	}
}

func TestReportCommandMissingTable(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sentiscope.yaml")
	writeFile(t, cfgPath, "output:\n  labeled_path: "+filepath.Join(dir, "none.csv")+
		"\n  chart_dir: "+dir+"\nlog_level: error\n")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"report", "--config", cfgPath})
	if err := root.Execute(); !errors.Is(err, internalerr.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}
