package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("default size %dx%d, want 1280x720", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.TileSize != 64 {
		t.Errorf("expected tile size 64, got %d", cfg.Graphics.TileSize)
	}
	if cfg.Graphics.Workers != 0 {
		t.Errorf("expected workers 0 (one per CPU), got %d", cfg.Graphics.Workers)
	}

	// Sun defaults
	if cfg.Sun.Azimuth != 135 {
		t.Errorf("expected azimuth 135, got %f", cfg.Sun.Azimuth)
	}
	if cfg.Sun.Elevation != 50 {
		t.Errorf("expected elevation 50, got %f", cfg.Sun.Elevation)
	}
	if cfg.Sun.Color != [3]float32{1, 1, 1} {
		t.Errorf("expected white sun, got %v", cfg.Sun.Color)
	}

	// Shading defaults
	if cfg.Shading.Model != "smooth" {
		t.Errorf("expected model 'smooth', got %s", cfg.Shading.Model)
	}
	if !cfg.Shading.ComplexNormals {
		t.Error("expected complex_normals to be true by default")
	}
	if cfg.Shading.ShininessLower != 8 || cfg.Shading.ShininessUpper != 128 {
		t.Errorf("expected shininess range 8..128, got %f..%f",
			cfg.Shading.ShininessLower, cfg.Shading.ShininessUpper)
	}
	if cfg.Shading.AmbientStrength != 0.2 {
		t.Errorf("expected ambient strength 0.2, got %f", cfg.Shading.AmbientStrength)
	}

	// Shadow defaults
	if cfg.Shadow.Cascades != 4 {
		t.Errorf("expected 4 cascades, got %d", cfg.Shadow.Cascades)
	}
	if cfg.Shadow.Resolution != 1024 {
		t.Errorf("expected resolution 1024, got %d", cfg.Shadow.Resolution)
	}
	if cfg.Shadow.Intensity != 0.65 {
		t.Errorf("expected intensity 0.65, got %f", cfg.Shadow.Intensity)
	}

	// Sky defaults
	if cfg.Sky.Enabled {
		t.Error("expected sky to be disabled by default")
	}
	if cfg.Sky.Prefix != "sky/day" {
		t.Errorf("expected sky prefix 'sky/day', got %s", cfg.Sky.Prefix)
	}

	// Light defaults
	if len(cfg.Lights) != 2 {
		t.Fatalf("expected 2 default lights, got %d", len(cfg.Lights))
	}
	if cfg.Lights[0].Radius != 6 {
		t.Errorf("expected first light radius 6, got %f", cfg.Lights[0].Radius)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  tile_size: 32
  workers: 4

sun:
  azimuth: 220
  elevation: 25
  color: [1.0, 0.85, 0.7]

shading:
  model: "toon"
  complex_normals: false
  simplified: true
  shininess_lower: 4
  shininess_upper: 64
  ambient_strength: 0.3

shadow:
  cascades: 6
  resolution: 2048
  intensity: 0.8
  kernel_bound: 2
  bias: 0.001
  slope_bias: 0.004

sky:
  enabled: true
  dir: "textures"
  prefix: "sky/dusk"
  ext: ".tga"

lights:
  - position: [1, 2, 3]
    color: [1, 0, 0]
    radius: 10

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("loaded size %dx%d, want 1920x1080", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.TileSize != 32 {
		t.Errorf("expected tile size 32, got %d", cfg.Graphics.TileSize)
	}
	if cfg.Graphics.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Graphics.Workers)
	}

	if cfg.Sun.Azimuth != 220 {
		t.Errorf("expected azimuth 220, got %f", cfg.Sun.Azimuth)
	}
	if cfg.Sun.Color != [3]float32{1, 0.85, 0.7} {
		t.Errorf("expected warm sun color, got %v", cfg.Sun.Color)
	}

	if cfg.Shading.Model != "toon" {
		t.Errorf("expected model 'toon', got %s", cfg.Shading.Model)
	}
	if cfg.Shading.ComplexNormals {
		t.Error("expected complex_normals to be false")
	}
	if !cfg.Shading.Simplified {
		t.Error("expected simplified to be true")
	}

	if cfg.Shadow.Cascades != 6 {
		t.Errorf("expected 6 cascades, got %d", cfg.Shadow.Cascades)
	}
	if cfg.Shadow.KernelBound != 2 {
		t.Errorf("expected kernel bound 2, got %d", cfg.Shadow.KernelBound)
	}

	if !cfg.Sky.Enabled {
		t.Error("expected sky to be enabled")
	}
	if cfg.Sky.Prefix != "sky/dusk" {
		t.Errorf("expected sky prefix 'sky/dusk', got %s", cfg.Sky.Prefix)
	}

	// A lights list in the file replaces the defaults entirely.
	if len(cfg.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(cfg.Lights))
	}
	if cfg.Lights[0].Radius != 10 {
		t.Errorf("expected light radius 10, got %f", cfg.Lights[0].Radius)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "render.log" {
		t.Errorf("expected log file 'render.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "broken.yaml")
		brokenYAML := "shadow:\n  cascades: [4, 6\n"
		if err := os.WriteFile(configPath, []byte(brokenYAML), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if err := loadFromFile(Default(), configPath); err == nil {
			t.Error("expected error loading broken YAML, got nil")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
			t.Error("expected error loading missing file, got nil")
		}
	})
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
shading:
  model: "toon"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	// File value applied over the defaults
	if cfg.Shading.Model != "toon" {
		t.Errorf("expected model 'toon', got %s", cfg.Shading.Model)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	// The exact location is platform dependent; it must at least be a
	// usable absolute path.
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change working directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		set   func()
		reset func()
		check func(*Config)
	}{
		{
			name:  "debug flag",
			set:   func() { *flagDebug = true },
			reset: func() { *flagDebug = false },
			check: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "windowed flag",
			set:   func() { *flagWindowed = true },
			reset: func() { *flagWindowed = false },
			check: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
		},
		{
			name:  "fullscreen flag",
			set:   func() { *flagFullscreen = true },
			reset: func() { *flagFullscreen = false },
			check: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
		},
		{
			name: "width and height flags",
			set:  func() { *flagWidth, *flagHeight = 2560, 1440 },
			reset: func() {
				*flagWidth, *flagHeight = 0, 0
			},
			check: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("got %dx%d, want 2560x1440", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
		},
		{
			name:  "model flag",
			set:   func() { *flagModel = "toon" },
			reset: func() { *flagModel = "" },
			check: func(cfg *Config) {
				if cfg.Shading.Model != "toon" {
					t.Errorf("expected model 'toon', got %s", cfg.Shading.Model)
				}
			},
		},
		{
			name:  "workers flag",
			set:   func() { *flagWorkers = 8 },
			reset: func() { *flagWorkers = 0 },
			check: func(cfg *Config) {
				if cfg.Graphics.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.Graphics.Workers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			defer tt.reset()

			cfg := Default()
			applyFlags(cfg)
			tt.check(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag wins over file, file wins over default.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 640
	cfg.Shading.Model = "toon"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640 after round trip, got %d", loaded.Graphics.Width)
	}
	if loaded.Shading.Model != "toon" {
		t.Errorf("expected model 'toon' after round trip, got %s", loaded.Shading.Model)
	}
}
