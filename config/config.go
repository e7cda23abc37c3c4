// Package config loads operator defaults for imagemerger.
// Values come from built-in defaults, an optional YAML file, IMAGEMERGER_*
// environment variables and command-line flags, in increasing precedence.
// They only pre-fill prompt answers and tune logging/encoding; every run
// still asks the operator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides (IMAGEMERGER_LOG_DEBUG, ...)
const EnvPrefix = "IMAGEMERGER"

// Config represents the operator defaults
type Config struct {
	// Defaults are the answers used when the operator just presses Enter
	Defaults struct {
		// Sort is the ordering choice 1-6
		Sort int `mapstructure:"sort" yaml:"sort"`

		// Direction is "h" or "v"
		Direction string `mapstructure:"direction" yaml:"direction"`

		// Format is "jpg", "png" or "bmp"
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"defaults" yaml:"defaults"`

	Output struct {
		JPEGQuality int `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
	} `mapstructure:"output" yaml:"output"`

	Decoder struct {
		// OpenCVFallback retries files the Go decoders reject with OpenCV
		OpenCVFallback bool `mapstructure:"opencv_fallback" yaml:"opencv_fallback"`
	} `mapstructure:"decoder" yaml:"decoder"`

	Log struct {
		Debug bool   `mapstructure:"debug" yaml:"debug"`
		File  string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`

	UI struct {
		Color bool `mapstructure:"color" yaml:"color"`
	} `mapstructure:"ui" yaml:"ui"`
}

// Default returns a configuration with default values
func Default() *Config {
	cfg := &Config{}
	cfg.Defaults.Sort = 1
	cfg.Defaults.Direction = "v"
	cfg.Defaults.Format = "jpg"
	cfg.Output.JPEGQuality = 75
	cfg.Decoder.OpenCVFallback = false
	cfg.Log.Debug = false
	cfg.Log.File = "imagemerger.log"
	cfg.UI.Color = true
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("defaults.sort", d.Defaults.Sort)
	v.SetDefault("defaults.direction", d.Defaults.Direction)
	v.SetDefault("defaults.format", d.Defaults.Format)
	v.SetDefault("output.jpeg_quality", d.Output.JPEGQuality)
	v.SetDefault("decoder.opencv_fallback", d.Decoder.OpenCVFallback)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.color", d.UI.Color)
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"debug":           "log.debug",
	"logfile":         "log.file",
	"opencv-fallback": "decoder.opencv_fallback",
}

// Load builds the configuration. A missing file at path is ignored unless
// required is set (the operator named it explicitly). flags may be nil.
func Load(path string, required bool, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "error parsing config file %s", path)
			}
		} else if required {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag --%s", name)
				}
			}
		}
		if f := flags.Lookup("no-color"); f != nil && f.Changed {
			v.Set("ui.color", false)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "error decoding configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes enum-like fields and rejects values that cannot be used
func (c *Config) Validate() error {
	if c.Defaults.Sort < 1 || c.Defaults.Sort > 6 {
		return fmt.Errorf("invalid defaults.sort %d (use 1-6)", c.Defaults.Sort)
	}

	c.Defaults.Direction = strings.ToLower(strings.TrimSpace(c.Defaults.Direction))
	switch c.Defaults.Direction {
	case "h", "v":
		// valid
	default:
		return fmt.Errorf("invalid defaults.direction %q (use 'h' or 'v')", c.Defaults.Direction)
	}

	c.Defaults.Format = strings.ToLower(strings.TrimSpace(c.Defaults.Format))
	switch c.Defaults.Format {
	case "jpg", "png", "bmp":
		// valid
	default:
		return fmt.Errorf("invalid defaults.format %q (use jpg, png or bmp)", c.Defaults.Format)
	}

	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("invalid output.jpeg_quality %d (use 1-100)", c.Output.JPEGQuality)
	}
	return nil
}

// WriteDefaultFile writes the default configuration as YAML to path.
// An existing file is never overwritten.
func WriteDefaultFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
