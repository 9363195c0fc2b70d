package config

const (
	defaultWorkDir             = "~/.local/share/avsync/work"
	defaultLogDir              = "~/.local/share/avsync/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultSampleRate          = 44100
	defaultConfidenceThreshold = 0.25
	defaultEpsilonSeconds      = 0.05
	defaultAudioBitrate        = "192k"
	defaultOutput              = "synced_output.mov"
)

// Default returns a Config populated with repository defaults.
//
// ConfidenceThreshold and EpsilonSeconds are operational tuning values, not
// derived constants; adjust them per deployment through the config file.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Sync: Sync{
			SampleRate:          defaultSampleRate,
			ConfidenceThreshold: defaultConfidenceThreshold,
			EpsilonSeconds:      defaultEpsilonSeconds,
			AudioBitrate:        defaultAudioBitrate,
			DefaultOutput:       defaultOutput,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
