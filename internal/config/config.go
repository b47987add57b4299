// Package config loads the settings of the recordmap command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "RECORDMAP"

// Config aggregates configuration for the command.
type Config struct {
	// Layout is the path of the layout file.
	Layout string `mapstructure:"layout"`
	// Stream selects a stream of the layout file. Empty selects the only
	// stream, if there is exactly one.
	Stream    string          `mapstructure:"stream"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	// Enabled fans logs out to the OpenTelemetry log bridge.
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Layout: "layout.yaml",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "recordmap",
		},
	}
}

// Load reads configuration from v, an optional config file and environment
// variables. Environment variables use the prefix "RECORDMAP" and the dot
// character in keys is replaced by an underscore. For example, "log.level"
// becomes "RECORDMAP_LOG_LEVEL". A nil v loads without flags.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	cfg := DefaultConfig()

	if v == nil {
		v = viper.New()
	}

	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("recordmap")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if _, err := cfg.Log.SlogLevel(); err != nil {
		return nil, err
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}

	return &cfg, nil
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	return level, nil
}

// setDefaults registers every key of cfg with its default, so that viper
// looks up the matching environment variable when unmarshalling.
func setDefaults(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		f := typ.Field(i)

		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}

		key := append(append([]string{}, parts...), tag)

		if f.Type.Kind() == reflect.Struct {
			setDefaults(v, val.Field(i).Interface(), key...)
			continue
		}

		v.SetDefault(strings.Join(key, "."), val.Field(i).Interface())
	}
}
