package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"reelcheck/internal/calibration"
	"reelcheck/internal/config"
	"reelcheck/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (access ok)", path)}
}

// CheckCalibratorArtifact verifies a configured calibrator file actually
// loads. An unusable artifact is a passed check with a warning detail,
// because the hand-tuned fallback keeps evaluation working.
func CheckCalibratorArtifact(path string) Result {
	const name = "Calibrator artifact"
	artifact, ok := calibration.Load(path)
	if !ok {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s unusable, hand-tuned weights apply", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("loaded, accuracy %.2f over %d samples", artifact.Accuracy, artifact.TrainingSize)}
}

// CheckSystemDeps evaluates all system-level dependencies for the given
// config. The status command uses this to avoid duplicating the
// requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Python",
			Command:     cfg.Tools.Python,
			Description: "Required to run the analyzer scripts",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Tools.FFprobe,
			Description: "Required for container inspection",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Used by the audio analyzer for loudness filters",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
