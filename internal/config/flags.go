package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagData       = flag.String("data", "", "Directory for saved creatures and settings")
	flagTerminal   = flag.Bool("term", false, "Render in the terminal instead of a window")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagMute       = flag.Bool("mute", false, "Disable sound effects")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagData != "" {
		cfg.Storage.Dir = *flagData
	}
	if *flagTerminal {
		cfg.Window.Terminal = true
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
