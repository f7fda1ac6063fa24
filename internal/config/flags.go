package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Config file path (overrides the search locations)")
	flagDebug      = flag.Bool("debug", false, "Force debug log level")
	flagWindowed   = flag.Bool("windowed", false, "Start windowed")
	flagFullscreen = flag.Bool("fullscreen", false, "Start fullscreen")
	flagWidth      = flag.Int("width", 0, "Window width in pixels")
	flagHeight     = flag.Int("height", 0, "Window height in pixels")
	flagModel      = flag.String("model", "", "Reflectance model: smooth or toon")
	flagWorkers    = flag.Int("workers", 0, "Render worker count (0 = one per CPU)")
)

// ParseFlags parses the viewer's command line. Call before Load.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the path given with -config, or "".
func ConfigPath() string {
	return *flagConfig
}

// applyFlags layers CLI overrides on top of cfg.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}

	// -windowed wins when both window mode flags are given.
	switch {
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	}

	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagModel != "" {
		cfg.Shading.Model = *flagModel
	}
	if *flagWorkers > 0 {
		cfg.Graphics.Workers = *flagWorkers
	}
}
