package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"reelcheck/internal/analyzers"
	"reelcheck/internal/batch"
	"reelcheck/internal/config"
	"reelcheck/internal/evaluate"
	"reelcheck/internal/features"
	"reelcheck/internal/logging"
	"reelcheck/internal/reportstore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) newRunner(cfg *config.Config) *analyzers.Runner {
	return analyzers.NewRunner(analyzers.Options{
		Python:     cfg.Tools.Python,
		ScriptsDir: cfg.Paths.ScriptsDir,
		Timeout:    time.Duration(cfg.Analyzers.TimeoutSeconds) * time.Second,
		Logger:     c.ensureLogger(),
	})
}

func (c *commandContext) newBuilder(cfg *config.Config) *features.Builder {
	return features.NewBuilder(features.BuilderOptions{
		Runner:       c.newRunner(cfg),
		FFprobeBin:   cfg.Tools.FFprobe,
		FFmpegBin:    cfg.Tools.FFmpeg,
		SampleRate:   cfg.Analyzers.SampleRate,
		MaxFrames:    cfg.Analyzers.MaxFrames,
		MaxFlowPairs: cfg.Analyzers.MaxFlowPairs,
		Logger:       c.ensureLogger(),
	})
}

func (c *commandContext) newEvaluator(cfg *config.Config) *evaluate.Evaluator {
	return evaluate.NewEvaluator(evaluate.EvaluatorOptions{
		Runner:         c.newRunner(cfg),
		Builder:        c.newBuilder(cfg),
		FFprobeBin:     cfg.Tools.FFprobe,
		SampleRate:     cfg.Analyzers.SampleRate,
		MaxFrames:      cfg.Analyzers.MaxFrames,
		CalibratorPath: cfg.Paths.CalibratorPath,
		ModelPath:      cfg.ScoringModelPath(),
		Logger:         c.ensureLogger(),
	})
}

func (c *commandContext) newBatchRunner(cfg *config.Config, concurrency int) *batch.Runner {
	if concurrency < 1 {
		concurrency = cfg.Batch.Concurrency
	}
	return batch.NewRunner(batch.Options{
		Evaluator:   c.newEvaluator(cfg),
		Concurrency: concurrency,
		Logger:      c.ensureLogger(),
	})
}

// openStore opens the report store when persistence is configured. A nil
// store with nil error means persistence is disabled.
func (c *commandContext) openStore(cfg *config.Config) (*reportstore.Store, error) {
	if !cfg.Batch.StoreReports || strings.TrimSpace(cfg.Paths.ReportDir) == "" {
		return nil, nil
	}
	return reportstore.Open(cfg.Paths.ReportDir)
}

// requireStore is openStore for commands that cannot work without the
// store, such as report inspection.
func requireStore(ctx *commandContext) (*reportstore.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := ctx.openStore(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("report persistence is disabled; set paths.report_dir and batch.store_reports")
	}
	return store, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
