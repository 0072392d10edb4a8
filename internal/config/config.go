package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a dither run. Values come from defaults, then
// an optional YAML file named by DITHER_CONFIG, then the environment.
type Config struct {
	Saturation   string        `yaml:"saturation" validate:"oneof=clamp rescale"`
	Boundary     string        `yaml:"boundary" validate:"oneof=preserve propagate"`
	StrictFormat bool          `yaml:"strict_format"`
	MaxWidth     int           `yaml:"max_width" validate:"gte=0"`
	MaxHeight    int           `yaml:"max_height" validate:"gte=0"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" validate:"gt=0"`
	Compression  int           `yaml:"compression" validate:"gte=-1,lte=9"`
	LogLevel     string        `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat    string        `yaml:"log_format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Saturation:   "clamp",
		Boundary:     "preserve",
		FetchTimeout: 30 * time.Second,
		Compression:  9,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if path := Get("DITHER_CONFIG", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Saturation = strings.ToLower(Get("DITHER_SATURATION", c.Saturation))
	c.Boundary = strings.ToLower(Get("DITHER_BOUNDARY", c.Boundary))
	c.StrictFormat = GetBool("DITHER_STRICT_FORMAT", c.StrictFormat)
	c.MaxWidth = GetInt("DITHER_MAX_WIDTH", c.MaxWidth)
	c.MaxHeight = GetInt("DITHER_MAX_HEIGHT", c.MaxHeight)
	c.FetchTimeout = GetDuration("DITHER_FETCH_TIMEOUT", c.FetchTimeout)
	c.Compression = GetInt("DITHER_COMPRESSION", c.Compression)
	c.LogLevel = strings.ToLower(Get("LOG_LEVEL", c.LogLevel))
	c.LogFormat = strings.ToLower(Get("LOG_FORMAT", c.LogFormat))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.New(validationErrorMessage(err))
	}
	return nil
}

// validationErrorMessage turns the first validator failure into a readable message.
func validationErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		switch ve.Field() {
		case "Saturation":
			return fmt.Sprintf("invalid saturation policy %q: must be clamp or rescale", ve.Value())
		case "Boundary":
			return fmt.Sprintf("invalid boundary policy %q: must be preserve or propagate", ve.Value())
		case "Compression":
			return fmt.Sprintf("invalid compression level %v: must be between -1 and 9", ve.Value())
		case "FetchTimeout":
			return "fetch timeout must be positive"
		default:
			return fmt.Sprintf("invalid %s: failed %q check", ve.Field(), ve.Tag())
		}
	}
	return fmt.Sprintf("invalid configuration: %v", err)
}
