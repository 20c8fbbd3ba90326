package invocation

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError is returned when no backend is configured for a capability.
type ConfigError struct {
	Capability string
	// Variables lists the configuration values, any one of which would make the
	// capability available.
	Variables []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no Gemini backend available for %s: set %s", e.Capability, strings.Join(e.Variables, " or "))
}

// UnsupportedError is returned when the selected backend is known to lack a capability.
type UnsupportedError struct {
	Capability string
	Backend    string
	// Variable is the configuration value that would enable a backend supporting the capability.
	Variable string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported by the %s backend: set %s to use the CLI backend", e.Capability, e.Backend, e.Variable)
}

// InvocationError is returned when the backend itself reported a failure.
// For the CLI, ExitCode is -1 when the process was terminated by a signal.
type InvocationError struct {
	// API marks failures reported by the Gemini API rather than the CLI.
	API      bool
	ExitCode int
	Stderr   string
	Err      error
}

func (e *InvocationError) Error() string {
	switch {
	case e.API:
		return fmt.Sprintf("gemini API call failed: %v", e.Err)
	case e.ExitCode < 0:
		return fmt.Sprintf("gemini CLI was terminated (%v): %s", e.Err, e.Stderr)
	default:
		return fmt.Sprintf("gemini CLI failed with code %d: %s", e.ExitCode, e.Stderr)
	}
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// LaunchError is returned when the configured executable could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// MalformedOutputError is returned when the backend reported success but its
// output is missing or incomplete.
type MalformedOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed backend output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed backend output: %s", e.Reason)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when tool arguments fail their declared schema.
// It is always raised before any backend is contacted.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError joins the given problems into a single ValidationError.
// It returns nil when no problems are given.
func NewValidationError(problems ...error) error {
	joined := errors.Join(problems...)
	if joined == nil {
		return nil
	}
	return &ValidationError{Err: joined}
}

// Kind classifies an error into one of the taxonomy names used in logs.
func Kind(err error) string {
	var (
		configErr      *ConfigError
		unsupportedErr *UnsupportedError
		invocationErr  *InvocationError
		launchErr      *LaunchError
		malformedErr   *MalformedOutputError
		validationErr  *ValidationError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &configErr), errors.As(err, &unsupportedErr):
		return "configuration"
	case errors.As(err, &malformedErr):
		return "malformed_output"
	case errors.As(err, &invocationErr), errors.As(err, &launchErr):
		return "invocation"
	default:
		return "internal"
	}
}
