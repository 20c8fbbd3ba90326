// Package logging builds the server's zap loggers and forwards tool call
// logs to MCP clients through ServerSession.Log.
//
// Every request carries two loggers: FromContext tees entries to the client
// session, BaseFromContext writes to the server's own outputs only. Messages
// that may contain prompts, file contents or credentials go to the base
// logger.
package logging

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// LoggingConfig is the logging section of the server config file. Output
// defaults to stderr, which keeps stdout free for the stdio transport.
type LoggingConfig struct {
	// Level is the minimum enabled logging level (debug, info, warn, error, dpanic, panic, fatal)
	Level string `json:"level,omitempty" jsonschema:"optional"`
	// Development puts the logger in development mode
	Development bool `json:"development,omitempty" jsonschema:"optional"`
	// DisableCaller stops annotating logs with the calling function's file name and line number
	DisableCaller bool `json:"disableCaller,omitempty" jsonschema:"optional"`
	// DisableStacktrace completely disables automatic stacktrace capturing
	DisableStacktrace bool `json:"disableStacktrace,omitempty" jsonschema:"optional"`
	// Encoding sets the logger's encoding ("json" or "console")
	Encoding string `json:"encoding,omitempty" jsonschema:"optional"`
	// OutputPaths is a list of URLs or file paths to write logging output to
	OutputPaths []string `json:"outputPaths,omitempty" jsonschema:"optional"`
	// ErrorOutputPaths is a list of URLs to write internal logger errors to
	ErrorOutputPaths []string `json:"errorOutputPaths,omitempty" jsonschema:"optional"`
	// InitialFields is a collection of fields to add to the root logger
	InitialFields map[string]any `json:"initialFields,omitempty" jsonschema:"optional"`
	// EnableMcpLogs controls whether tool call logs are sent to MCP clients
	EnableMcpLogs *bool `json:"enableMcpLogs,omitempty" jsonschema:"optional"`
}

// MCPLogsEnabled returns whether the mcp logs are enabled, defaulting to true if unset
func (lc *LoggingConfig) MCPLogsEnabled() bool {
	if lc.EnableMcpLogs == nil {
		return true
	}

	return *lc.EnableMcpLogs
}

// Validate checks the level and encoding. Under the stdio transport stdout
// carries the protocol, so no output may point at it.
func (lc *LoggingConfig) Validate(stdio bool) error {
	var err error
	if lc.Level != "" {
		if _, parseErr := zapcore.ParseLevel(lc.Level); parseErr != nil {
			err = errors.Join(err, fmt.Errorf("loggingConfig.level: %w", parseErr))
		}
	}

	if lc.Encoding != "" && lc.Encoding != EncodingJSON && lc.Encoding != EncodingConsole {
		err = errors.Join(err, fmt.Errorf("loggingConfig.encoding must be %s or %s, received %q",
			EncodingJSON, EncodingConsole, lc.Encoding))
	}

	if stdio && (slices.Contains(lc.OutputPaths, "stdout") || slices.Contains(lc.ErrorOutputPaths, "stdout")) {
		err = errors.Join(err, fmt.Errorf("loggingConfig cannot write to stdout with the stdio transport"))
	}

	return err
}

// toZapConfig starts from zap's production config (development config for
// console encoding) and applies the configured overrides.
func (lc *LoggingConfig) toZapConfig() (zap.Config, error) {
	var config zap.Config
	if lc.Encoding == EncodingConsole {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return config, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	if lc.Encoding != "" {
		config.Encoding = lc.Encoding
	}

	config.Development = lc.Development
	config.DisableCaller = lc.DisableCaller
	config.DisableStacktrace = lc.DisableStacktrace

	if len(lc.OutputPaths) > 0 {
		config.OutputPaths = lc.OutputPaths
	}
	if len(lc.ErrorOutputPaths) > 0 {
		config.ErrorOutputPaths = lc.ErrorOutputPaths
	}
	if lc.InitialFields != nil {
		config.InitialFields = lc.InitialFields
	}

	return config, nil
}

// BuildBase builds the server-wide logger. It is built once at startup and
// shared by every session.
func (lc *LoggingConfig) BuildBase() (*zap.Logger, error) {
	config, err := lc.toZapConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to convert to zap config: %w", err)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build base zap logger: %w", err)
	}
	return logger, nil
}
