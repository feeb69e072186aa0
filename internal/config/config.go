// Package config loads viewer settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pdf-reader/internal/document"
	"pdf-reader/internal/logger"
	"pdf-reader/internal/viewer"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.yaml"

// Environment variables that override file settings.
const (
	EnvLogLevel = "LOG_LEVEL"
	EnvDebug    = "DEBUG"
	EnvBackend  = "PDF_READER_BACKEND"
)

type Config struct {
	// Zoom is the initial page zoom in percent.
	Zoom float64 `yaml:"zoom"`
	// CanvasScale is the canvas size in percent of the screen, 20 to 80.
	CanvasScale   float64 `yaml:"canvas_scale"`
	Justification string  `yaml:"justification"`
	Backend       string  `yaml:"backend"`
	// Watch reloads the open document when it changes on disk.
	Watch  bool         `yaml:"watch"`
	Screen ScreenConfig `yaml:"screen"`
	Log    LogConfig    `yaml:"log"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Zoom:          100,
		CanvasScale:   50,
		Justification: viewer.JustifyCenter.String(),
		Backend:       document.BackendMuPDF,
		Watch:         true,
		Screen:        ScreenConfig{Width: 1920, Height: 1080},
		Log:           LogConfig{Level: "info", Format: "console"},
	}
}

// DefaultPath is the config file location under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pdf-reader", FileName)
}

// Load reads path over the defaults. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if level := getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	} else if getenv(EnvDebug) == "1" {
		c.Log.Level = "debug"
	}
	if backend := getenv(EnvBackend); backend != "" {
		c.Backend = backend
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string
	if c.Zoom <= 0 {
		problems = append(problems, fmt.Sprintf("zoom must be positive, got %g", c.Zoom))
	}
	if c.CanvasScale < viewer.MinCanvasScale*100 || c.CanvasScale > viewer.MaxCanvasScale*100 {
		problems = append(problems, fmt.Sprintf("canvas_scale must be between 20 and 80, got %g", c.CanvasScale))
	}
	if _, err := viewer.ParseJustification(c.Justification); err != nil {
		problems = append(problems, err.Error())
	}
	switch strings.ToLower(c.Backend) {
	case document.BackendMuPDF, document.BackendPreview:
	default:
		problems = append(problems, fmt.Sprintf("unknown backend %q", c.Backend))
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		problems = append(problems, fmt.Sprintf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ViewerOptions converts the file settings into controller options.
func (c *Config) ViewerOptions() viewer.Options {
	j, _ := viewer.ParseJustification(c.Justification)
	return viewer.Options{
		Zoom:          c.Zoom / 100,
		CanvasScale:   c.CanvasScale / 100,
		Justification: j,
	}
}

func (c *Config) LogLevel() logger.LogLevel {
	return logger.ParseLevel(c.Log.Level)
}
