// Package config loads application settings from defaults, an optional YAML
// file and POINT_TAGGER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AppDirName = "point-tagger"
	EnvPrefix  = "POINT_TAGGER_"
)

// Config holds every tunable of the tagger
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Window    WindowConfig    `yaml:"window"`
	Crosshair CrosshairConfig `yaml:"crosshair"`
	Discovery DiscoveryConfig `yaml:"discovery"`

	// ReorderFaceLandmarks canonicalizes three point annotations into
	// right eye, left eye, mouth order before leaving an image.
	ReorderFaceLandmarks bool `yaml:"reorder_face_landmarks"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type WindowConfig struct {
	Width     float32 `yaml:"width"`
	Height    float32 `yaml:"height"`
	ListWidth float32 `yaml:"list_width"`
}

type CrosshairConfig struct {
	// SizeFraction is the full crosshair length as a fraction of the smaller
	// displayed image dimension.
	SizeFraction float64 `yaml:"size_fraction"`
	LineWidth    float32 `yaml:"line_width"`
}

type DiscoveryConfig struct {
	ExcludeSuffixes []string `yaml:"exclude_suffixes"`
	// OpenCVFallback probes files the Go decoders reject with OpenCV.
	OpenCVFallback bool `yaml:"opencv_fallback"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Window: WindowConfig{
			Width:     1200,
			Height:    800,
			ListWidth: 280,
		},
		Crosshair: CrosshairConfig{
			SizeFraction: 0.05,
			LineWidth:    2,
		},
		Discovery: DiscoveryConfig{
			ExcludeSuffixes: []string{".svn-base"},
			OpenCVFallback:  true,
		},
		ReorderFaceLandmarks: true,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDirName, "config.yaml")
}

// Load builds the configuration. An explicit path must exist; the default
// path is used only when present. A .env file in the working directory is
// loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
		return nil
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	if err := boolean("JSON_LOGS", &c.Log.JSON); err != nil {
		return err
	}
	if err := boolean("REORDER", &c.ReorderFaceLandmarks); err != nil {
		return err
	}
	if err := boolean("OPENCV_FALLBACK", &c.Discovery.OpenCVFallback); err != nil {
		return err
	}
	if v, ok := lookup(EnvPrefix + "EXCLUDE_SUFFIXES"); ok {
		c.Discovery.ExcludeSuffixes = splitList(v)
	}
	return nil
}

// Validate rejects settings the tagger cannot work with
func (c *Config) Validate() error {
	if c.Crosshair.SizeFraction <= 0 || c.Crosshair.SizeFraction > 1 {
		return fmt.Errorf("crosshair.size_fraction must be in (0, 1], got %g", c.Crosshair.SizeFraction)
	}
	if c.Crosshair.LineWidth <= 0 {
		return fmt.Errorf("crosshair.line_width must be positive, got %g", c.Crosshair.LineWidth)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %gx%g", c.Window.Width, c.Window.Height)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
