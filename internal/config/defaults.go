package config

const (
	defaultDataDir           = "~/.local/share/reelmate"
	defaultLogDir            = "~/.local/share/reelmate/logs"
	defaultAPIBind           = "127.0.0.1:7519"
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL  = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage      = "en-US"
	defaultTMDBTimeout       = 10
	// TMDB allows roughly 40 requests per 10 second window.
	defaultRequestsPerWindow = 40
	defaultWindowSeconds     = 10
	defaultBurst             = 10
	defaultMaxUploadMiB      = 10
	defaultNtfyTimeout       = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			Language:          defaultTMDBLanguage,
			RequestTimeout:    defaultTMDBTimeout,
			RequestsPerWindow: defaultRequestsPerWindow,
			WindowSeconds:     defaultWindowSeconds,
			Burst:             defaultBurst,
		},
		Import: Import{
			MaxUploadMiB: defaultMaxUploadMiB,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
			Imports:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
