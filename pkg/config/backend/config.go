// Package backend reads the Gemini backend settings from the environment.
package backend

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/api"
)

const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvCLIPath     = "GEMINI_CLI_PATH"
	EnvModel       = "GEMINI_MODEL"
	EnvTemperature = "GEMINI_TEMPERATURE"
	EnvMaxTokens   = "GEMINI_MAX_TOKENS"
	EnvAPIBaseURL  = "GEMINI_API_BASE_URL"
)

// Config is resolved once at startup and treated as read-only afterwards.
type Config struct {
	APIKey      string
	CLIPath     string
	Model       string
	Temperature float64
	MaxTokens   int
	APIBaseURL  string
}

// InvalidValueError reports an environment variable whose value cannot be used.
type InvalidValueError struct {
	Variable string
	Value    string
	Reason   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Variable, e.Reason)
}

// FromEnv loads the configuration from the process environment.
func FromEnv() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load reads the configuration through lookup. Every invalid value is reported.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		APIKey:      get(EnvAPIKey),
		CLIPath:     get(EnvCLIPath),
		Model:       get(EnvModel),
		Temperature: gemini.DefaultTemperature,
		MaxTokens:   gemini.DefaultMaxTokens,
		APIBaseURL:  get(EnvAPIBaseURL),
	}
	if cfg.Model == "" {
		cfg.Model = gemini.DefaultModel
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = api.DefaultBaseURL
	}

	var errs []error
	if raw := get(EnvTemperature); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			errs = append(errs, &InvalidValueError{Variable: EnvTemperature, Value: raw, Reason: "not a number"})
		case t < 0 || t > 2:
			errs = append(errs, &InvalidValueError{Variable: EnvTemperature, Value: raw, Reason: "must be between 0 and 2"})
		default:
			cfg.Temperature = t
		}
	}

	if raw := get(EnvMaxTokens); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, &InvalidValueError{Variable: EnvMaxTokens, Value: raw, Reason: "not an integer"})
		case n < 1:
			errs = append(errs, &InvalidValueError{Variable: EnvMaxTokens, Value: raw, Reason: "must be at least 1"})
		default:
			cfg.MaxTokens = n
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HasAPI reports whether an API credential was configured.
func (c *Config) HasAPI() bool {
	return c.APIKey != ""
}

// HasCLI reports whether a CLI path was configured.
func (c *Config) HasCLI() bool {
	return c.CLIPath != ""
}
