// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Sun      SunConfig      `yaml:"sun"`
	Shading  ShadingConfig  `yaml:"shading"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Sky      SkyConfig      `yaml:"sky"`
	Lights   []LightConfig  `yaml:"lights"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and render-loop settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	TileSize   int  `yaml:"tile_size"`
	Workers    int  `yaml:"workers"` // 0 = one per CPU
}

// SunConfig holds the directional light settings. Angles are degrees:
// azimuth around +Z starting at +X, elevation above the horizon.
type SunConfig struct {
	Azimuth   float32    `yaml:"azimuth"`
	Elevation float32    `yaml:"elevation"`
	Color     [3]float32 `yaml:"color"`
}

// ShadingConfig holds reflectance model settings.
type ShadingConfig struct {
	Model           string  `yaml:"model"` // "smooth" or "toon"
	ComplexNormals  bool    `yaml:"complex_normals"`
	Simplified      bool    `yaml:"simplified"`
	ShininessLower  float32 `yaml:"shininess_lower"`
	ShininessUpper  float32 `yaml:"shininess_upper"`
	AmbientStrength float32 `yaml:"ambient_strength"`
}

// ShadowConfig holds cascaded shadow map settings.
type ShadowConfig struct {
	Cascades    int     `yaml:"cascades"` // clamped to the supported range at use
	Resolution  int     `yaml:"resolution"`
	Intensity   float32 `yaml:"intensity"`
	KernelBound int     `yaml:"kernel_bound"`
	Bias        float32 `yaml:"bias"`
	SlopeBias   float32 `yaml:"slope_bias"`
}

// SkyConfig holds the image-based sky settings. The six face files are
// resolved as prefix + face suffix + ext under the asset directory.
type SkyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
	Ext     string `yaml:"ext"`
}

// LightConfig describes one point light.
type LightConfig struct {
	Position [3]float32 `yaml:"position"`
	Color    [3]float32 `yaml:"color"`
	Radius   float32    `yaml:"radius"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			TileSize:   64,
			Workers:    0,
		},
		Sun: SunConfig{
			Azimuth:   135,
			Elevation: 50,
			Color:     [3]float32{1, 1, 1},
		},
		Shading: ShadingConfig{
			Model:           "smooth",
			ComplexNormals:  true,
			Simplified:      false,
			ShininessLower:  8,
			ShininessUpper:  128,
			AmbientStrength: 0.2,
		},
		Shadow: ShadowConfig{
			Cascades:    4,
			Resolution:  1024,
			Intensity:   0.65,
			KernelBound: 1,
			Bias:        0.0005,
			SlopeBias:   0.0025,
		},
		Sky: SkyConfig{
			Enabled: false,
			Dir:     "assets",
			Prefix:  "sky/day",
			Ext:     ".png",
		},
		Lights: []LightConfig{
			{
				Position: [3]float32{3.5, -0.5, 3},
				Color:    [3]float32{1, 0.7, 0.4},
				Radius:   6,
			},
			{
				Position: [3]float32{-3, 2, 2.5},
				Color:    [3]float32{0.3, 0.5, 1},
				Radius:   5,
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
