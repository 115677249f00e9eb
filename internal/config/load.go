package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every error caused by a value that failed
// validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type loadOptions struct {
	envFiles   []string
	configFile string
	overrides  map[string]any
}

// LoadOption customizes [Load].
type LoadOption func(*loadOptions)

// WithEnvFiles replaces the default ".env" with the given dotenv files.
// Missing files are skipped. Calling it with no arguments disables dotenv
// loading.
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) { o.envFiles = paths }
}

// WithConfigFile reads the given YAML file. Unlike dotenv files, a missing
// config file is an error.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) { o.configFile = path }
}

// WithOverride sets key (in dotted form, e.g. "output.format") above every
// other source. Command-line flags use it.
func WithOverride(key string, value any) LoadOption {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[key] = value
	}
}

var defaults = map[string]any{
	"provider":              ProviderOllama,
	"model":                 "",
	"system_prompt":         "",
	"api_url":               "",
	"openai_api_key":        "",
	"gemini_api_key":        "",
	"temperature":           0.0,
	"json_mode":             true,
	"query.genre":           "classic rock",
	"query.artist_count":    10,
	"query.song_count":      5,
	"query.song_cap":        5,
	"query.attempt_timeout": "0s",
	"query.prompt_template": "",
	"retry.max_attempts":    3,
	"retry.initial_backoff": "1s",
	"retry.max_backoff":     "30s",
	"retry.backoff_factor":  2.0,
	"retry.jitter_fraction": 0.0,
	"output.format":         "markdown",
	"output.dir":            ".",
	"output.save":           true,
	"log.level":             "info",
	"log.format":            "text",
	"log.requests":          "standard",
}

// Environment names that predate the HITSFINDER_ prefix.
var plainEnv = map[string][]string{
	"api_url":        {"HITSFINDER_API_URL", "API_URL"},
	"model":          {"HITSFINDER_MODEL", "MODEL_NAME"},
	"openai_api_key": {"HITSFINDER_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"gemini_api_key": {"HITSFINDER_GEMINI_API_KEY", "GEMINI_API_KEY"},
	"log.level":      {"HITSFINDER_LOG_LEVEL", "LOG_LEVEL"},
}

// Load configuration from dotenv files, environment variables and optionally
// a config file. Returns a populated Config or an error if loading or
// validation fails.
func Load(opts ...LoadOption) (*Config, error) {
	options := loadOptions{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(&options)
	}

	for _, path := range options.envFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", options.configFile, err)
		}
	}

	v.SetEnvPrefix("HITSFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envVars := range plainEnv {
		if err := v.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", key, err)
		}
	}

	for key, value := range options.overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
