package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/health"
	"github.com/gemini-mcp/gemini-mcp/pkg/oauth"
)

const shutdownTimeout = 10 * time.Second

// backendProbe fails readiness while no backend can serve text generation.
func (s *Server) backendProbe() error {
	return s.backend.Route(backend.CapabilityText).Err
}

// HTTPHandler routes the MCP endpoint, the health probes and, when auth is
// configured, the protected resource metadata.
func (s *Server) HTTPHandler(checker health.Checker) http.Handler {
	httpConfig := s.runtime.StreamableHTTPConfig
	basePath := httpConfig.BasePath

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	if httpConfig.Health.IsEnabled() {
		r.Get(httpConfig.Health.LivenessPath, checker.LivenessHandler)
		r.Get(httpConfig.Health.ReadinessPath, checker.ReadinessHandler)
		s.logger.Debug("Registered health handlers",
			zap.String("liveness_path", httpConfig.Health.LivenessPath),
			zap.String("readiness_path", httpConfig.Health.ReadinessPath))
	}

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{
		Stateless: httpConfig.IsStateless(),
	})

	if httpConfig.Auth == nil {
		r.Handle(basePath, mcpHandler)
		s.logger.Debug("Registered MCP handler", zap.String("path", basePath))
		return r
	}

	metadata := oauth.NewProtectedResourceMetadataHandler(basePath,
		oauth.MetadataConfigFor(ServerName, httpConfig.Auth), s.logger)
	r.Get(basePath+oauth.WellKnownSuffix, metadata)
	r.Options(basePath+oauth.WellKnownSuffix, metadata)
	s.logger.Debug("Registered OAuth metadata handler", zap.String("path", basePath+oauth.WellKnownSuffix))

	httpClient, err := s.runtime.GetHTTPClient()
	if err != nil {
		// New already built this client successfully.
		httpClient = http.DefaultClient
	}
	validator := oauth.NewTokenValidator(httpConfig.Auth, httpClient, s.logger)

	r.Group(func(r chi.Router) {
		r.Use(oauth.RequireBearerToken(basePath, httpConfig.Auth, validator, s.logger))
		r.Handle(basePath, mcpHandler)
	})
	s.logger.Debug("Registered MCP handler behind bearer auth", zap.String("path", basePath))

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}

func (s *Server) runStreamableHttpServer(ctx context.Context) error {
	httpConfig := s.runtime.StreamableHTTPConfig
	s.logger.Info("Setting up streamable HTTP server",
		zap.Int("port", httpConfig.Port),
		zap.String("base_path", httpConfig.BasePath),
		zap.Bool("stateless", httpConfig.IsStateless()),
		zap.Bool("auth", httpConfig.Auth != nil))

	checker := health.NewChecker(s.backendProbe)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpConfig.Port),
		Handler:           s.HTTPHandler(checker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		s.logger.Error("Failed to listen", zap.String("addr", srv.Addr), zap.Error(err))
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tls := httpConfig.TLS; tls != nil {
			s.logger.Info("Starting HTTPS server with TLS",
				zap.String("addr", ln.Addr().String()),
				zap.String("cert_file", tls.CertFile),
				zap.String("key_file", tls.KeyFile))
			err = srv.ServeTLS(ln, tls.CertFile, tls.KeyFile)
		} else {
			s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		checker.SetReady(false)
		s.logger.Info("Shutting down HTTP server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		s.logger.Info("HTTP server shutdown completed")
		return nil
	})

	checker.SetReady(true)
	return g.Wait()
}
