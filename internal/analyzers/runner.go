package analyzers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"reelcheck/internal/logging"
	"reelcheck/internal/services"
)

// Runner executes analyzer scripts from a configured scripts directory.
type Runner struct {
	python     string
	scriptsDir string
	timeout    time.Duration
	logger     *slog.Logger
}

// Options configures a Runner.
type Options struct {
	Python     string
	ScriptsDir string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewRunner constructs a Runner with the provided options.
func NewRunner(opts Options) *Runner {
	python := strings.TrimSpace(opts.Python)
	if python == "" {
		python = "python3"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Runner{
		python:     python,
		scriptsDir: strings.TrimSpace(opts.ScriptsDir),
		timeout:    timeout,
		logger:     logging.NewComponentLogger(opts.Logger, "analyzers"),
	}
}

type errorPayload struct {
	Error *struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// run invokes one analyzer script and decodes its stdout JSON into out.
// A missing script, a failed subprocess, a reported error payload, and a
// timeout all return classified errors; the caller decides whether that
// means a failed check or merely missing evidence.
func (r *Runner) run(ctx context.Context, script string, out any, args ...string) error {
	scriptPath := filepath.Join(r.scriptsDir, script)
	if _, err := os.Stat(scriptPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrConfiguration, "analyzers", script, "script not installed", nil)
		}
		return services.Wrap(services.ErrConfiguration, "analyzers", script, "", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmdArgs := append([]string{scriptPath}, args...)
	cmd := exec.CommandContext(runCtx, r.python, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	elapsed := time.Since(started)

	r.logger.Debug("analyzer finished",
		logging.String(logging.FieldAnalyzer, script),
		logging.Duration("elapsed", elapsed),
		logging.Bool("ok", err == nil),
	)

	if runCtx.Err() == context.DeadlineExceeded {
		return services.Wrap(services.ErrTimeout, "analyzers", script, fmt.Sprintf("exceeded %s time box", r.timeout), nil)
	}

	// Analyzers report structured failures on stdout even when exiting
	// nonzero, so decode before inspecting the exit status.
	if msg, ok := decodeErrorPayload(stdout.Bytes()); ok {
		return services.Wrap(services.ErrExternalTool, "analyzers", script, msg, nil)
	}

	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if len(detail) > 500 {
			detail = detail[:500]
		}
		return services.Wrap(services.ErrExternalTool, "analyzers", script, detail, err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
		return services.Wrap(services.ErrExternalTool, "analyzers", script, "malformed output", err)
	}
	return nil
}

func decodeErrorPayload(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var payload errorPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return "", false
	}
	if payload.Error == nil {
		return "", false
	}
	msg := strings.TrimSpace(payload.Error.Message)
	if msg == "" {
		msg = "analyzer reported an unspecified error"
	}
	return msg, true
}
