package config

const (
	defaultScriptsDir          = "~/.local/share/reelcheck/scripts"
	defaultReportDir           = "~/.local/share/reelcheck/reports"
	defaultPythonBinary        = "python3"
	defaultFFprobeBinary       = "ffprobe"
	defaultFFmpegBinary        = "ffmpeg"
	defaultAnalyzerTimeout     = 120
	defaultAnalyzerSampleRate  = 30
	defaultAnalyzerMaxFrames   = 16
	defaultAnalyzerMaxFlowPair = 30
	defaultProfile             = "default"
	defaultBatchConcurrency    = 2
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScriptsDir: defaultScriptsDir,
			ReportDir:  defaultReportDir,
		},
		Tools: Tools{
			Python:  defaultPythonBinary,
			FFprobe: defaultFFprobeBinary,
			FFmpeg:  defaultFFmpegBinary,
		},
		Analyzers: Analyzers{
			TimeoutSeconds: defaultAnalyzerTimeout,
			SampleRate:     defaultAnalyzerSampleRate,
			MaxFrames:      defaultAnalyzerMaxFrames,
			MaxFlowPairs:   defaultAnalyzerMaxFlowPair,
		},
		Checks: Checks{
			Profile:         defaultProfile,
			Validate:        true,
			Rate:            true,
			CaptionQuality:  true,
			Score:           true,
			TemporalQuality: true,
			AudioSignal:     true,
			Safety:          true,
			Freeze:          true,
			// Disabled by default: these need auxiliary artifacts or heavy models.
			SemanticFidelity: false,
			DNSMOS:           false,
			FlowConsistency:  false,
		},
		Batch: Batch{
			Concurrency:  defaultBatchConcurrency,
			StoreReports: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
