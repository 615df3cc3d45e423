package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Defaults applied when the matching environment variable is unset or empty.
const (
	DefaultEnv         = "development"
	DefaultPort        = 8000
	DefaultDatabaseURL = "postgresql://postgres:postgres@db:5432/microloans"
	DefaultLogLevel    = "INFO"
	DefaultLogFormat   = "text"
)

// Config is the resolved runtime configuration. It is loaded once at startup
// and passed by value.
type Config struct {
	Env         string `mapstructure:"env"          validate:"required"`
	Port        int    `mapstructure:"port"         validate:"gt=0,lt=65536"`
	DatabaseURL string `mapstructure:"database_url" validate:"required"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// envKeys maps each config key to the environment variables it is read from,
// in priority order.
var envKeys = map[string][]string{
	"env":          {"APP_ENV", "FLASK_ENV"},
	"port":         {"PORT"},
	"database_url": {"DATABASE_URL"},
	"log_level":    {"LOG_LEVEL"},
	"log_format":   {"LOG_FORMAT"},
}

// Load resolves the configuration from the environment.
//
// A PORT that is not an integer is an error; unknown LOG_LEVEL and LOG_FORMAT
// values are kept as given and resolved to INFO and text by the logging setup.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("env", DefaultEnv)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decimalIntHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Config{}, fmt.Errorf("invalid config: %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// decimalIntHook parses strings bound for int fields as base-10, so "010" is
// 10 and "0x1F40" is rejected. mapstructure's weak decoding would otherwise
// honour octal and hex prefixes.
func decimalIntHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}
	s := reflect.ValueOf(data).String()
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("parse %q as decimal integer: %w", s, err)
	}
	return n, nil
}
