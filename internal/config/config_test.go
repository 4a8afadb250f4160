package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved path %q, want %q", resolved, path)
	}
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("unexpected ffprobe default: %q", cfg.Tools.FFprobe)
	}
	if cfg.Batch.Concurrency != defaultBatchConcurrency {
		t.Fatalf("unexpected concurrency default: %d", cfg.Batch.Concurrency)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
scripts_dir = "` + dir + `/scripts"

[checks]
profile = "strict"

[batch]
concurrency = 4
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Checks.Profile != "strict" {
		t.Fatalf("profile = %q, want strict", cfg.Checks.Profile)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Fatalf("concurrency = %d, want 4", cfg.Batch.Concurrency)
	}
	if !filepath.IsAbs(cfg.Paths.ScriptsDir) {
		t.Fatalf("scripts dir not absolute: %q", cfg.Paths.ScriptsDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad profile", func(c *Config) { c.Checks.Profile = "paranoid" }, "checks.profile"},
		{"zero timeout", func(c *Config) { c.Analyzers.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = 0 }, "concurrency"},
		{"empty python", func(c *Config) { c.Tools.Python = "" }, "tools.python"},
		{"bad format", func(c *Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatal(err)
			}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("sample config did not load: exists=%v err=%v", exists, err)
	}
}

func TestScoringModelPathPrecedence(t *testing.T) {
	cfg := Default()
	if got := cfg.ScoringModelPath(); got != "" {
		t.Fatalf("expected empty path with no artifacts configured, got %q", got)
	}

	cfg.Paths.CalibratorPath = "/artifacts/calibrator.json"
	if got := cfg.ScoringModelPath(); got != "/artifacts/calibrator.json" {
		t.Fatalf("expected calibrator fallback, got %q", got)
	}

	cfg.Paths.ModelPath = "/artifacts/scorer.json"
	if got := cfg.ScoringModelPath(); got != "/artifacts/scorer.json" {
		t.Fatalf("expected model_path to win, got %q", got)
	}
}
