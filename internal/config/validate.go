package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateAnalyzers(); err != nil {
		return err
	}
	if err := c.validateChecks(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.Python == "" {
		return errors.New("tools.python must be set")
	}
	if c.Tools.FFprobe == "" {
		return errors.New("tools.ffprobe must be set")
	}
	if c.Tools.FFmpeg == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	return nil
}

func (c *Config) validateAnalyzers() error {
	if c.Analyzers.TimeoutSeconds <= 0 {
		return errors.New("analyzers.timeout_seconds must be positive")
	}
	if c.Analyzers.SampleRate < 1 {
		return errors.New("analyzers.sample_rate must be at least 1")
	}
	if c.Analyzers.MaxFrames < 1 {
		return errors.New("analyzers.max_frames must be at least 1")
	}
	if c.Analyzers.MaxFlowPairs < 1 {
		return errors.New("analyzers.max_flow_pairs must be at least 1")
	}
	return nil
}

func (c *Config) validateChecks() error {
	switch c.Checks.Profile {
	case "strict", "default", "lenient":
		return nil
	default:
		return fmt.Errorf("checks.profile must be strict, default, or lenient (got %q)", c.Checks.Profile)
	}
}

func (c *Config) validateBatch() error {
	if c.Batch.Concurrency < 1 {
		return errors.New("batch.concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
}
