package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GREZI_RENDER_FPS.
const EnvPrefix = "GREZI"

type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Text   TextConfig   `mapstructure:"text" yaml:"text"`
	Media  MediaConfig  `mapstructure:"media" yaml:"media"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// RenderConfig is the output rectangle and sampling rate.
type RenderConfig struct {
	Width   int  `mapstructure:"width" yaml:"width"`
	Height  int  `mapstructure:"height" yaml:"height"`
	FPS     int  `mapstructure:"fps" yaml:"fps"`
	Workers int  `mapstructure:"workers" yaml:"workers"`
	Export  bool `mapstructure:"export" yaml:"export"`
}

type TextConfig struct {
	DefaultFontSize float64 `mapstructure:"default_font_size" yaml:"default_font_size"`
	LineHeight      float64 `mapstructure:"line_height" yaml:"line_height"`
}

// MediaConfig sizes the placeholder used for images without data.
type MediaConfig struct {
	PlaceholderWidth  float64 `mapstructure:"placeholder_width" yaml:"placeholder_width"`
	PlaceholderHeight float64 `mapstructure:"placeholder_height" yaml:"placeholder_height"`
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "grezi")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Render --
	v.SetDefault("render.width", 1920)
	v.SetDefault("render.height", 1080)
	v.SetDefault("render.fps", 30)
	v.SetDefault("render.workers", runtime.NumCPU())
	v.SetDefault("render.export", false)

	// -- Text --
	v.SetDefault("text.default_font_size", 48.0)
	v.SetDefault("text.line_height", 1.2)

	// -- Media --
	v.SetDefault("media.placeholder_width", 1.0)
	v.SetDefault("media.placeholder_height", 1.0)
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper decodes and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be a positive integer")
	}
	if c.Render.Workers <= 0 {
		return fmt.Errorf("render.workers must be a positive integer")
	}
	if c.Text.DefaultFontSize <= 0 {
		return fmt.Errorf("text.default_font_size must be positive")
	}
	if c.Text.LineHeight <= 0 {
		return fmt.Errorf("text.line_height must be positive")
	}
	if c.Media.PlaceholderWidth <= 0 || c.Media.PlaceholderHeight <= 0 {
		return fmt.Errorf("media placeholder size must be positive")
	}
	return nil
}
