package server

import "k8s.io/utils/ptr"

// Default values for server configuration.
const (
	// DefaultBasePath is the default base path for the MCP server.
	DefaultBasePath = "/mcp"

	// DefaultPort is the default port for the streamable HTTP server.
	DefaultPort = 8080

	// DefaultLivenessPath is the default path for the liveness probe endpoint.
	DefaultLivenessPath = "/healthz"

	// DefaultReadinessPath is the default path for the readiness probe endpoint.
	DefaultReadinessPath = "/readyz"
)

// DefaultConfigFile is used when no config file is given: stdio transport with
// default logging.
func DefaultConfigFile() *MCPServerConfigFile {
	f := &MCPServerConfigFile{
		Kind:          KindMCPServerConfig,
		SchemaVersion: SchemaVersion,
	}
	f.ApplyDefaults()
	return f
}

// ApplyDefaults applies default values to the MCPServerConfig after parsing.
func (s *MCPServerConfig) ApplyDefaults() {
	if s.Runtime == nil {
		s.Runtime = &ServerRuntime{}
	}
	s.Runtime.ApplyDefaults()
}

// ApplyDefaults applies default values to the MCPServerConfigFile after parsing.
func (m *MCPServerConfigFile) ApplyDefaults() {
	m.MCPServerConfig.ApplyDefaults()
}

// ApplyDefaults applies default values to ServerRuntime. Unlike network
// services, an MCP server for desktop clients is launched as a subprocess, so
// stdio is the default transport.
func (r *ServerRuntime) ApplyDefaults() {
	if r.TransportProtocol == "" {
		r.TransportProtocol = TransportProtocolStdio
	}

	if r.TransportProtocol == TransportProtocolStreamableHttp {
		if r.StreamableHTTPConfig == nil {
			r.StreamableHTTPConfig = &StreamableHTTPConfig{}
		}
		r.StreamableHTTPConfig.ApplyDefaults()
	}
}

// ApplyDefaults applies default values to StreamableHTTPConfig.
func (s *StreamableHTTPConfig) ApplyDefaults() {
	if s.Port <= 0 {
		s.Port = DefaultPort
	}
	if s.BasePath == "" {
		s.BasePath = DefaultBasePath
	}
	if s.Stateless == nil {
		s.Stateless = ptr.To(true)
	}

	if s.Health == nil {
		s.Health = &HealthConfig{}
	}
	s.Health.ApplyDefaults()
}

// ApplyDefaults applies default values to HealthConfig.
func (h *HealthConfig) ApplyDefaults() {
	if h.Enabled == nil {
		h.Enabled = ptr.To(true)
	}
	if h.LivenessPath == "" {
		h.LivenessPath = DefaultLivenessPath
	}
	if h.ReadinessPath == "" {
		h.ReadinessPath = DefaultReadinessPath
	}
}
