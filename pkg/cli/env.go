package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	backendconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/backend"
)

const defaultEnvFile = ".env"

// addEnvFileFlag registers --env-file on cmd, bound to target.
func addEnvFileFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "env-file", defaultEnvFile,
		"dotenv file with GEMINI_* and GEMINIMCP_* variables, loaded without overriding the environment")
}

// loadEnvFile loads path into the process environment. A missing default
// file is ignored; a missing file that was asked for explicitly is an error.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("no env file found at %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// loadBackend loads the env file named by the command's --env-file flag and
// resolves the backend configuration from the environment.
func loadBackend(cmd *cobra.Command, envFile string) (*backendconfig.Config, error) {
	if err := loadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
		return nil, err
	}
	cfg, err := backendconfig.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid backend configuration: %w", err)
	}
	return cfg, nil
}

// newSelector builds the routing table for cfg without starting anything.
func newSelector(cfg *backendconfig.Config) (*backend.Selector, error) {
	return backend.New(backend.Options{Config: cfg})
}

// absPath resolves path, leaving an empty path empty.
func absPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("no file found at %s", abs)
	}
	return abs, nil
}
