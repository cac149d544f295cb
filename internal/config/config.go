// Package config loads settings for the command-line tools from a
// config file and environment variables.
package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
	"github.com/yyyoichi/faceveil"
)

type Config struct {
	Mode      string  `mapstructure:"mode"`
	Intensity float64 `mapstructure:"intensity"`
	BoxColor  string  `mapstructure:"box_color"` // #rrggbb, ModeCustomColorBox only
	Logging   Logging `mapstructure:"logging"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

var modes = map[string]faceveil.PrivacyMode{
	"full_blur": faceveil.ModeFullBlur,
	"blur":      faceveil.ModeBlurNoFinalPixelate,
	"pixelate":  faceveil.ModePixelateOnly,
	"black_box": faceveil.ModeBlackBox,
	"white_box": faceveil.ModeWhiteBox,
	"color_box": faceveil.ModeCustomColorBox,
}

func Defaults() *Config {
	return &Config{
		Mode:      "full_blur",
		Intensity: 0.5,
		BoxColor:  "#000000",
		Logging:   Logging{Level: "info", Format: "console"},
	}
}

// Load reads configuration from the given file (optional) and
// FACEVEIL_* environment variables on top of the defaults.
func Load(configPath string) (*Config, error) {
	config := Defaults()

	v := viper.New()
	v.SetConfigName("faceveil")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.faceveil/")

	// Registering every key with its default makes it visible to viper,
	// so environment-only overrides reach the struct on Unmarshal.
	v.SetDefault("mode", config.Mode)
	v.SetDefault("intensity", config.Intensity)
	v.SetDefault("box_color", config.BoxColor)
	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)

	v.SetEnvPrefix("FACEVEIL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func validate(c *Config) error {
	if _, ok := modes[c.Mode]; !ok {
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if c.Intensity < 0 || c.Intensity > 1 {
		return fmt.Errorf("intensity out of range [0,1]: %v", c.Intensity)
	}
	if _, err := ParseColor(c.BoxColor); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	return nil
}

// PrivacyMode maps the configured mode name to the engine mode.
func (c *Config) PrivacyMode() faceveil.PrivacyMode {
	return modes[c.Mode]
}

// ParseColor parses a #rrggbb hex color.
func ParseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
