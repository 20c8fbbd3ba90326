package logging

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

type baseCtxKey struct{}

// WithLoggingMiddleware creates an MCP middleware that adds request-scoped logging.
// It extracts the ServerSession from incoming requests and creates a request-specific
// logger that can be retrieved using FromContext. The base logger is always stored
// and can be retrieved with BaseFromContext. If session extraction or logger
// creation fails, it logs a warning and continues the request chain without error.
func WithLoggingMiddleware(base *zap.Logger, mcpLogsEnabled bool) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (result mcp.Result, err error) {
			ctx = WithBaseLogger(ctx, base)
			if !mcpLogsEnabled {
				return next(WithRequestLogger(ctx, base), method, req)
			}

			ss, ok := req.GetSession().(*mcp.ServerSession)
			if !ok {
				// don't error out - just continue the request chain
				base.Warn("session on request was not ServerSession, not adding logger")
				return next(WithRequestLogger(ctx, base), method, req)
			}

			requestLogger, err := newRequestLogger(ctx, base, ss)
			if err != nil {
				base.Warn("failed to initialize request logger", zap.Error(err))
				return next(WithRequestLogger(ctx, base), method, req)
			}

			return next(WithRequestLogger(ctx, requestLogger), method, req)
		}
	}
}

// WithRequestLogger stores a logger in the given context, making it available
// for retrieval via FromContext throughout the request lifecycle.
func WithRequestLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithBaseLogger stores the server-side logger in ctx. Entries written to it
// are never forwarded to the MCP client.
func WithBaseLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, baseCtxKey{}, logger)
}

// FromContext retrieves the logger stored in the context by WithRequestLogger.
// If no logger is found or the stored value is not a *zap.Logger, it returns
// a no-op logger to ensure safe operation without panics.
func FromContext(ctx context.Context) *zap.Logger {
	return loggerFrom(ctx, ctxKey{})
}

// BaseFromContext retrieves the logger stored by WithBaseLogger, or a no-op logger.
func BaseFromContext(ctx context.Context) *zap.Logger {
	return loggerFrom(ctx, baseCtxKey{})
}

func loggerFrom(ctx context.Context, key any) *zap.Logger {
	if logger, ok := ctx.Value(key).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// newRequestLogger tees base into the client session of a single request.
func newRequestLogger(ctx context.Context, base *zap.Logger, ss *mcp.ServerSession) (*zap.Logger, error) {
	mcpCore, err := NewMcpCoreWithContext(ctx, ss)
	if err != nil {
		return nil, err
	}

	return base.WithOptions(
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, mcpCore)
		}),
	), nil
}
