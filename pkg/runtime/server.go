// Package runtime assembles the MCP server and runs it over the configured
// transport.
package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	backendconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/backend"
	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/gemini-mcp/gemini-mcp/pkg/prompts"
	"github.com/gemini-mcp/gemini-mcp/pkg/resources"
	"github.com/gemini-mcp/gemini-mcp/pkg/tools"
)

const (
	ServerName    = "gemini-cli-mcp-for-claude"
	ServerVersion = "2.0.0"

	ServerInstructions = "MCP server providing Google's full media generation suite: Imagen 3, Veo 2, " +
		"Chirp 3 HD, Lyria, and media manipulation tools, plus Gemini text generation, web search " +
		"and document analysis."
)

// Options configures a Server.
type Options struct {
	Config  *serverconfig.MCPServerConfig
	Backend *backendconfig.Config

	// Runner replaces the gemini CLI process.
	Runner cli.Runner
}

// Server is a fully wired gemini MCP server. The backend selection is made
// once in New and shared by every session.
type Server struct {
	runtime *serverconfig.ServerRuntime
	backend *backend.Selector
	tools   []*tools.Tool
	catalog *resources.Catalog
	mcp     *mcp.Server
	logger  *zap.Logger
}

func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &serverconfig.DefaultConfigFile().MCPServerConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	backendCfg := opts.Backend
	if backendCfg == nil {
		backendCfg = &backendconfig.Config{}
	}

	logger := cfg.Runtime.GetBaseLogger()

	httpClient, err := cfg.Runtime.GetHTTPClient()
	if err != nil {
		logger.Error("Failed to create HTTP client with custom TLS config", zap.Error(err))
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	selector, err := backend.New(backend.Options{
		Config:     backendCfg,
		HTTPClient: httpClient,
		Runner:     opts.Runner,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select Gemini backend: %w", err)
	}

	for _, r := range selector.Routes() {
		if r.Err != nil {
			logger.Debug("Capability unavailable", zap.String("capability", string(r.Capability)), zap.Error(r.Err))
			continue
		}
		logger.Debug("Capability routed", zap.String("capability", string(r.Capability)), zap.String("backend", r.Kind.String()))
	}
	logger.Info("Gemini backend selected", zap.String("configured_via", selector.ConfiguredVia()))

	toolset := tools.Catalog()
	s := &Server{
		runtime: cfg.Runtime,
		backend: selector,
		tools:   toolset,
		catalog: resources.New(backendCfg.Model, selector, toolset),
		logger:  logger,
	}
	s.mcp = s.makeServer()

	return s, nil
}

// MCPServer returns the protocol server shared by every transport.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) Backend() *backend.Selector {
	return s.backend
}

func (s *Server) makeServer() *mcp.Server {
	s.logger.Debug("Building MCP server",
		zap.String("server_name", ServerName),
		zap.String("server_version", ServerVersion),
		zap.Int("num_tools", len(s.tools)),
		zap.Int("num_prompts", len(prompts.Catalog())),
		zap.Int("num_resources", len(s.catalog.Resources())),
		zap.Int("num_resource_templates", len(s.catalog.Templates())))

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Instructions: ServerInstructions,
		HasTools:     true,
		HasPrompts:   true,
		HasResources: true,
	})

	mcpLogs := s.runtime.LoggingConfig == nil || s.runtime.LoggingConfig.MCPLogsEnabled()
	srv.AddReceivingMiddleware(logging.WithLoggingMiddleware(s.logger, mcpLogs))

	tools.Register(srv, s.backend, s.tools)
	prompts.Register(srv)
	s.catalog.Register(srv)

	s.logger.Info("Server created successfully with all components")
	return srv
}

// Run serves until ctx is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP server",
		zap.String("server_name", ServerName),
		zap.String("server_version", ServerVersion),
		zap.String("transport_protocol", s.runtime.TransportProtocol))

	switch strings.ToLower(s.runtime.TransportProtocol) {
	case serverconfig.TransportProtocolStreamableHttp:
		return s.runStreamableHttpServer(ctx)
	case serverconfig.TransportProtocolStdio:
		return s.runStdioServer(ctx)
	default:
		s.logger.Error("Invalid transport protocol specified",
			zap.String("transport_protocol", s.runtime.TransportProtocol))
		return fmt.Errorf("tried running invalid transport protocol %q", s.runtime.TransportProtocol)
	}
}

func (s *Server) runStdioServer(ctx context.Context) error {
	s.logger.Info("Starting stdio server")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		s.logger.Error("Stdio server failed", zap.Error(err))
		return err
	}

	s.logger.Info("Stdio server completed")
	return nil
}

// RunOptions describes a server started from the command line.
type RunOptions struct {
	// ServerConfigPath is the server config file; the defaults are used when empty.
	ServerConfigPath string

	// Transport overrides the configured transport protocol when set.
	Transport string

	Backend *backendconfig.Config
}

// LoadConfig reads the server config named by opts, or the defaults when no
// path is given, then applies GEMINIMCP_* overrides and the transport
// override. A failed env override is logged and does not stop loading.
func LoadConfig(opts RunOptions) (*serverconfig.MCPServerConfigFile, error) {
	configFile := serverconfig.DefaultConfigFile()
	if opts.ServerConfigPath != "" {
		var err error
		configFile, err = serverconfig.ParseMCPFile(opts.ServerConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse server config file: %w", err)
		}
	}

	overrideErr := serverconfig.NewEnvRuntimeOverrider().ApplyOverrides(configFile.Runtime)
	if opts.Transport != "" {
		configFile.Runtime.TransportProtocol = strings.ToLower(opts.Transport)
	}
	configFile.ApplyDefaults()

	if overrideErr != nil {
		configFile.Runtime.GetBaseLogger().Warn("Failed to apply overrides from env vars to the server config",
			zap.Error(overrideErr))
	}
	return configFile, nil
}

// RunServer loads the server config and runs the server until ctx is
// cancelled.
func RunServer(ctx context.Context, opts RunOptions) error {
	configFile, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger := configFile.Runtime.GetBaseLogger()
	if opts.ServerConfigPath != "" {
		logger.Info("Using server config", zap.String("server_config_path", opts.ServerConfigPath))
	}

	s, err := New(Options{Config: &configFile.MCPServerConfig, Backend: opts.Backend})
	if err != nil {
		logger.Error("Failed to create server", zap.Error(err))
		return err
	}

	return s.Run(ctx)
}
