package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TempPath returns a unique path in the OS temp dir of the form
// <prefix>-<unix-nanos>-<uuid8><ext>. Nothing is created on disk.
func TempPath(prefix, ext string) string {
	name := fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixNano(), uuid.NewString()[:8], ext)
	return filepath.Join(os.TempDir(), name)
}

// Materialize writes data to a fresh temp file and returns its path along with a
// cleanup func. The cleanup is returned on failure too, since a failed write
// can leave a partial file. Cleanup never fails the caller; problems are
// logged at warn level.
func Materialize(ctx context.Context, prefix, ext string, data []byte) (string, func(), error) {
	path := TempPath(prefix, ext)
	cleanup := func() { Remove(ctx, path) }
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return path, cleanup, fmt.Errorf("failed to write temp file: %w", err)
	}

	return path, cleanup, nil
}

// Remove deletes path, logging rather than returning any failure other than
// the file already being gone.
func Remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.BaseFromContext(ctx).Warn("Failed to remove temp file", zap.String("path", path), zap.Error(err))
	}
}

// ReadAndRemove reads the output file a successful invocation was told to write,
// then deletes it. A missing file is a *invocation.MalformedOutputError.
func ReadAndRemove(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &invocation.MalformedOutputError{Reason: fmt.Sprintf("expected output file %s was not written", path)}
		}
		return nil, fmt.Errorf("failed to read output file %s: %w", path, err)
	}
	Remove(ctx, path)
	return data, nil
}
