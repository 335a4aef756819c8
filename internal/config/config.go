// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Detail   DetailConfig   `yaml:"detail"`
	Colors   ColorsConfig   `yaml:"colors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the offscreen render surface dimensions. The
// interactive viewer sizes itself from the terminal instead.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds the initial camera parameters. Zero values mean
// "keep the built-in default"; auto-framing may still override distances.
type CameraConfig struct {
	FOVDegrees   float64 `yaml:"fov_degrees"`
	Orthographic bool    `yaml:"orthographic"`
	AutoFrame    bool    `yaml:"auto_frame"`
}

// DetailConfig holds the adaptive level-of-detail settings.
type DetailConfig struct {
	Enabled   bool    `yaml:"enabled"`
	TargetFPS int     `yaml:"target_fps"`
	MinPx     float64 `yaml:"min_px"`
	MaxPx     float64 `yaml:"max_px"`
	MaxLines  int     `yaml:"max_lines"`
}

// ColorsConfig holds wire and background colors as "#RRGGBB" strings.
type ColorsConfig struct {
	Background string `yaml:"background"`
	Wire       string `yaml:"wire"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  1024,
			Height: 768,
		},
		Camera: CameraConfig{
			FOVDegrees:   60,
			Orthographic: false,
			AutoFrame:    true,
		},
		Detail: DetailConfig{
			Enabled:   true,
			TargetFPS: 30,
			MinPx:     0.25,
			MaxPx:     5.0,
			MaxLines:  180000,
		},
		Colors: ColorsConfig{
			Background: "#101014",
			Wire:       "#e0e0e0",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
