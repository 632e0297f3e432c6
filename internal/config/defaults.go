package config

const (
	defaultDataDir                = "~/.local/share/vinoscan"
	defaultLogDir                 = "~/.local/share/vinoscan/logs"
	defaultStorageBackend         = "sqlite"
	defaultStorageMaxBlobKiB      = 5120
	defaultAnalysisBaseURL        = "https://generativelanguage.googleapis.com/v1beta"
	defaultAnalysisModel          = "gemini-3-flash-preview"
	defaultAnalysisTimeoutSeconds = 60
	defaultImagingMaxDimension    = 800
	defaultImagingJPEGQuality     = 70
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Backend:    defaultStorageBackend,
			MaxBlobKiB: defaultStorageMaxBlobKiB,
		},
		Analysis: Analysis{
			BaseURL:        defaultAnalysisBaseURL,
			Model:          defaultAnalysisModel,
			TimeoutSeconds: defaultAnalysisTimeoutSeconds,
		},
		Imaging: Imaging{
			MaxDimension: defaultImagingMaxDimension,
			JPEGQuality:  defaultImagingJPEGQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
