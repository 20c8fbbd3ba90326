package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/google/shlex"
	"go.uber.org/zap"
)

// waitDelay bounds how long Wait keeps reading output after the process was
// killed, for children that still hold the pipes open.
const waitDelay = 2 * time.Second

// Runner runs the Gemini CLI with the given arguments and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, args []string) (string, error)
}

// ProcessRunner launches a local executable for every call. No timeout is
// applied beyond the cancellation of the context passed to Run.
type ProcessRunner struct {
	Path       string
	PrefixArgs []string
}

var _ Runner = &ProcessRunner{}

// NewProcessRunner splits commandLine using shell word rules, so that values such
// as "npx gemini-cli" resolve to an executable plus leading arguments.
func NewProcessRunner(commandLine string) (*ProcessRunner, error) {
	words, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cli path %q: %w", commandLine, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("cli path must not be empty")
	}

	return &ProcessRunner{
		Path:       words[0],
		PrefixArgs: words[1:],
	}, nil
}

func (pr *ProcessRunner) Run(ctx context.Context, args []string) (string, error) {
	argv := make([]string, 0, len(pr.PrefixArgs)+len(args))
	argv = append(argv, pr.PrefixArgs...)
	argv = append(argv, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, pr.Path, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	logger := logging.BaseFromContext(ctx)
	logger.Debug("Running gemini cli", zap.String("path", pr.Path), zap.Strings("args", argv))

	if err := cmd.Start(); err != nil {
		return "", &invocation.LaunchError{Path: pr.Path, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debug("Gemini cli exited with failure",
				zap.Int("exitCode", exitErr.ExitCode()),
				zap.String("stderr", stderr.String()))
			return "", &invocation.InvocationError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
				Err:      err,
			}
		}
		return "", &invocation.InvocationError{
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}
