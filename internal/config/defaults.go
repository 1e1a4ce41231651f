package config

const (
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultLogDir          = "~/.local/share/sprocket/logs"
	defaultStateDir        = "~/.local/share/sprocket"
	defaultFFmpegLogLevel  = "error"
	defaultHistoryEnabled  = true
	defaultHistoryFilename = "history.db"
	defaultHistoryLimit    = 20
	defaultLogFormat       = "auto"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Transcode: Transcode{
			LogLevel: defaultFFmpegLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Limit:   defaultHistoryLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
