// Package config holds the explicit, immutable configuration value passed
// into every component. There is no process-global state: tests build their
// own Config and run in parallel.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"snipreel/internal/render"
)

// Config is the full tool configuration.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Video   VideoConfig   `yaml:"video"`
	Caption CaptionConfig `yaml:"caption"`
}

// RenderConfig carries the snippet-image defaults.
type RenderConfig struct {
	Language      string  `yaml:"language"`
	Theme         string  `yaml:"theme"`
	CanvasWidth   int     `yaml:"canvas_width"`
	CanvasPadding int     `yaml:"canvas_padding"`
	FontFamily    string  `yaml:"font_family"`
	FontSizePx    int     `yaml:"font_size_px"`
	Background    string  `yaml:"background"`
	DeviceScale   float64 `yaml:"device_scale"`
	ChromeBin     string  `yaml:"chrome_bin"`
}

// PuzzleConfig configures the Gemini puzzle generator.
type PuzzleConfig struct {
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// Timeout returns the puzzle generation timeout as a duration.
func (p PuzzleConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// VideoConfig configures the ffmpeg composite step.
type VideoConfig struct {
	FFmpeg      string  `yaml:"ffmpeg"`
	FFprobe     string  `yaml:"ffprobe"`
	Background  string  `yaml:"background"`
	ClipSeconds float64 `yaml:"clip_seconds"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
}

// CaptionConfig configures the caption writer.
type CaptionConfig struct {
	Hashtags []string `yaml:"hashtags"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Language:      render.DefaultLanguage,
			Theme:         render.DefaultTheme,
			CanvasWidth:   render.DefaultCanvasWidth,
			CanvasPadding: render.DefaultCanvasPadding,
			FontFamily:    render.DefaultFontFamily,
			FontSizePx:    render.DefaultFontSizePx,
			Background:    render.DefaultBackground,
			DeviceScale:   render.DefaultDeviceScale,
		},
		Puzzle: PuzzleConfig{
			Model:          "gemini-2.5-flash",
			Temperature:    0.9,
			TimeoutSeconds: 120,
		},
		Video: VideoConfig{
			FFmpeg:      "ffmpeg",
			FFprobe:     "ffprobe",
			ClipSeconds: 12,
			Width:       1080,
			Height:      1920,
		},
		Caption: CaptionConfig{
			Hashtags: []string{"coding", "programming", "codepuzzle", "shorts"},
		},
	}
}

// Load reads a config file over the defaults and applies env overrides. An
// empty path returns defaults plus env overrides.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Puzzle.APIKey = key
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" && c.Puzzle.APIKey == "" {
		c.Puzzle.APIKey = key
	}
	if bin := os.Getenv("SNIPREEL_CHROME"); bin != "" {
		c.Render.ChromeBin = bin
	}
}
