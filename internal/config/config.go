package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and artifact location configuration.
type Paths struct {
	ScriptsDir     string `toml:"scripts_dir"`
	ReportDir      string `toml:"report_dir"`
	CalibratorPath string `toml:"calibrator_path"`
	ModelPath      string `toml:"model_path"`
}

// Tools contains executable names for external dependencies.
type Tools struct {
	Python  string `toml:"python"`
	FFprobe string `toml:"ffprobe"`
	FFmpeg  string `toml:"ffmpeg"`
}

// Analyzers contains tuning for the external analyzer subprocesses.
type Analyzers struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	SampleRate     int `toml:"sample_rate"`
	MaxFrames      int `toml:"max_frames"`
	MaxFlowPairs   int `toml:"max_flow_pairs"`
}

// Checks controls which evaluation checks run by default.
type Checks struct {
	Profile          string `toml:"profile"`
	Validate         bool   `toml:"validate"`
	Rate             bool   `toml:"rate"`
	CaptionQuality   bool   `toml:"caption_quality"`
	Score            bool   `toml:"score"`
	TemporalQuality  bool   `toml:"temporal_quality"`
	AudioSignal      bool   `toml:"audio_signal"`
	SemanticFidelity bool   `toml:"semantic_fidelity"`
	Safety           bool   `toml:"safety"`
	Freeze           bool   `toml:"freeze"`
	DNSMOS           bool   `toml:"dnsmos"`
	FlowConsistency  bool   `toml:"flow_consistency"`
}

// Batch contains settings for multi-video evaluation runs.
type Batch struct {
	Concurrency  int  `toml:"concurrency"`
	StoreReports bool `toml:"store_reports"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelcheck.
//
// Configuration sections by subsystem:
//   - Paths: analyzer scripts, report store, calibrator/model artifacts
//   - Tools: external executable names (python, ffprobe, ffmpeg)
//   - Analyzers: subprocess timeouts and sampling parameters
//   - Checks: default check enablement and threshold profile
//   - Batch: batch run concurrency and report persistence
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Tools     Tools     `toml:"tools"`
	Analyzers Analyzers `toml:"analyzers"`
	Checks    Checks    `toml:"checks"`
	Batch     Batch     `toml:"batch"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelcheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelcheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.ScriptsDir, &c.Paths.ReportDir, &c.Paths.CalibratorPath, &c.Paths.ModelPath} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Tools.Python = strings.TrimSpace(c.Tools.Python)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Checks.Profile = strings.ToLower(strings.TrimSpace(c.Checks.Profile))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// ScoringModelPath resolves the calibration artifact the scorer loads.
// model_path takes precedence; calibrator_path covers installs that share
// one artifact between scoring and check calibration.
func (c *Config) ScoringModelPath() string {
	if c.Paths.ModelPath != "" {
		return c.Paths.ModelPath
	}
	return c.Paths.CalibratorPath
}

// EnsureReportDir creates the report store directory when persistence is enabled.
func (c *Config) EnsureReportDir() error {
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.ReportDir, 0o755); err != nil {
		return fmt.Errorf("create report directory %q: %w", c.Paths.ReportDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
