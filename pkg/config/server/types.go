package server

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"go.uber.org/zap"
)

const (
	TransportProtocolStreamableHttp = "streamablehttp"
	TransportProtocolStdio          = "stdio"
	KindMCPServerConfig             = "MCPServerConfig"
	SchemaVersion                   = "0.1.0"
)

// StreamableHTTPConfig defines configuration for the HTTP-based runtime.
type StreamableHTTPConfig struct {
	// Port number to listen on.
	Port int `json:"port" jsonschema:"required"`

	// Base path for the MCP server (default: /mcp).
	BasePath string `json:"basePath,omitempty" jsonschema:"optional"`

	// Indicates whether the server is stateless (default: true when unset).
	Stateless *bool `json:"stateless,omitempty" jsonschema:"optional"`

	// OAuth 2.0 configuration for protected resources.
	Auth *AuthConfig `json:"auth,omitempty" jsonschema:"optional"`

	// TLS configuration for HTTPS.
	TLS *TLSConfig `json:"tls,omitempty" jsonschema:"optional"`

	// Health check configuration for k8s probes.
	Health *HealthConfig `json:"health,omitempty" jsonschema:"optional"`
}

// IsStateless reports the effective stateless setting, true when unset.
func (s *StreamableHTTPConfig) IsStateless() bool {
	return s.Stateless == nil || *s.Stateless
}

// TLSConfig defines paths to TLS certificate and private key files.
type TLSConfig struct {
	// Absolute path to the server's public certificate.
	CertFile string `json:"certFile,omitempty" jsonschema:"optional"`

	// Absolute path to the server's private key.
	KeyFile string `json:"keyFile,omitempty" jsonschema:"optional"`
}

type HealthConfig struct {
	// Enable health endpoints (default: true when running HTTP)
	Enabled *bool `json:"enabled,omitempty" jsonschema:"optional"`

	// Path for liveness probe (default: /healthz)
	LivenessPath string `json:"livenessPath,omitempty" jsonschema:"optional"`

	// Path for readiness probe (default: /readyz)
	ReadinessPath string `json:"readinessPath,omitempty" jsonschema:"optional"`
}

func (h *HealthConfig) IsEnabled() bool {
	return h != nil && (h.Enabled == nil || *h.Enabled)
}

// ClientTLSConfig defines TLS settings for outbound requests to the Gemini API.
// Use this when traffic goes through a proxy that presents a certificate signed
// by a corporate or private CA.
type ClientTLSConfig struct {
	// Paths to CA certificate files (PEM format) to trust for outbound HTTPS requests.
	// These are added to the system's default certificate pool.
	CACertFiles []string `json:"caCertFiles,omitempty" jsonschema:"optional"`

	// Path to a directory containing CA certificate files (PEM format).
	// All .pem and .crt files in this directory will be loaded.
	CACertDir string `json:"caCertDir,omitempty" jsonschema:"optional"`

	// If true, skip TLS certificate verification for outbound requests.
	// WARNING: This is insecure and should only be used for testing.
	InsecureSkipVerify bool `json:"insecureSkipVerify,omitempty" jsonschema:"optional"`
}

// AuthConfig defines OAuth 2.0 authorization settings.
type AuthConfig struct {
	// List of authorization server URLs for token validation.
	AuthorizationServers []string `json:"authorizationServers,omitempty" jsonschema:"optional"`

	// URI for the JSON Web Key Set (JWKS) used for token verification.
	JWKSURI string `json:"jwksUri,omitempty" jsonschema:"optional"`

	// Scopes advertised in the protected resource metadata.
	ScopesSupported []string `json:"scopesSupported,omitempty" jsonschema:"optional"`

	// Scopes every access token must carry to reach the MCP endpoint.
	RequiredScopes []string `json:"requiredScopes,omitempty" jsonschema:"optional"`
}

// StdioConfig defines configuration for stdio transport protocol.
type StdioConfig struct{}

// ServerRuntime defines transport protocol and associated configuration.
type ServerRuntime struct {
	// Transport protocol to use (stdio or streamablehttp).
	TransportProtocol string `json:"transportProtocol" jsonschema:"required"`

	// Configuration for streamable HTTP transport protocol.
	StreamableHTTPConfig *StreamableHTTPConfig `json:"streamableHttpConfig,omitempty" jsonschema:"optional"`

	// Configuration for stdio transport protocol.
	StdioConfig *StdioConfig `json:"stdioConfig,omitempty" jsonschema:"optional"`

	// Configuration for the server logging
	LoggingConfig *logging.LoggingConfig `json:"loggingConfig,omitempty" jsonschema:"optional"`

	// TLS configuration for requests to the Gemini API.
	ClientTLSConfig *ClientTLSConfig `json:"clientTlsConfig,omitempty" jsonschema:"optional"`

	baseLogger     *zap.Logger
	initLoggerOnce sync.Once

	httpClient     *http.Client
	httpClientErr  error
	httpClientOnce sync.Once
}

// GetBaseLogger returns the base logger for the server.
// If LoggingConfig is nil, it defaults to a console logger with info level on
// stderr, which keeps stdout free for the stdio transport.
// If LoggingConfig is provided but fails to build, it falls back to the same console logger.
// If the runtime is nil, it returns a no-op logger.
func (sr *ServerRuntime) GetBaseLogger() *zap.Logger {
	if sr == nil {
		return zap.NewNop()
	}

	sr.initLoggerOnce.Do(func() {
		if sr.LoggingConfig != nil {
			logger, err := sr.LoggingConfig.BuildBase()
			if err == nil && logger != nil {
				sr.baseLogger = logger
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: Failed to build base logger, using default console logger: %v\n", err)
		}
		sr.baseLogger = defaultConsoleLogger()
	})

	return sr.baseLogger
}

// SetBaseLogger replaces the logger returned by GetBaseLogger.
func (sr *ServerRuntime) SetBaseLogger(logger *zap.Logger) {
	sr.initLoggerOnce.Do(func() {})
	sr.baseLogger = logger
}

func defaultConsoleLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil || logger == nil {
		return zap.NewNop()
	}
	return logger
}

// MCPServerConfig defines the runtime configuration of the gemini MCP server.
type MCPServerConfig struct {
	// Runtime configuration for the MCP server.
	Runtime *ServerRuntime `json:"runtime,omitempty" jsonschema:"optional"`
}

// MCPServerConfigFile is the root structure of a server config file (gemini-mcp.yaml).
type MCPServerConfigFile struct {
	// Kind identifies the type of config file.
	Kind string `json:"kind" jsonschema:"required"`

	// Version of the config file format.
	SchemaVersion string `json:"schemaVersion" jsonschema:"required"`

	MCPServerConfig `json:",inline"`
}
