package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	backendconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/backend"
	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
	"github.com/gemini-mcp/gemini-mcp/pkg/runtime"
)

func TestBuildTransportInfo(t *testing.T) {
	tests := map[string]struct {
		serverConfig *serverconfig.MCPServerConfigFile
		expected     TransportInfo
	}{
		"nil runtime defaults to stdio": {
			serverConfig: &serverconfig.MCPServerConfigFile{},
			expected: TransportInfo{
				Protocol: serverconfig.TransportProtocolStdio,
			},
		},
		"streamablehttp with config": {
			serverConfig: &serverconfig.MCPServerConfigFile{
				MCPServerConfig: serverconfig.MCPServerConfig{
					Runtime: &serverconfig.ServerRuntime{
						TransportProtocol: serverconfig.TransportProtocolStreamableHttp,
						StreamableHTTPConfig: &serverconfig.StreamableHTTPConfig{
							Port:      9090,
							BasePath:  "/api/mcp",
							Stateless: ptr.To(false),
							Health: &serverconfig.HealthConfig{
								Enabled:       ptr.To(true),
								LivenessPath:  "/live",
								ReadinessPath: "/ready",
							},
						},
					},
				},
			},
			expected: TransportInfo{
				Protocol:  serverconfig.TransportProtocolStreamableHttp,
				Port:      9090,
				BasePath:  "/api/mcp",
				Stateless: false,
				Health: &HealthInfo{
					Enabled:       true,
					LivenessPath:  "/live",
					ReadinessPath: "/ready",
				},
			},
		},
		"stdio transport": {
			serverConfig: &serverconfig.MCPServerConfigFile{
				MCPServerConfig: serverconfig.MCPServerConfig{
					Runtime: &serverconfig.ServerRuntime{
						TransportProtocol: serverconfig.TransportProtocolStdio,
					},
				},
			},
			expected: TransportInfo{
				Protocol: serverconfig.TransportProtocolStdio,
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, buildTransportInfo(tc.serverConfig))
		})
	}
}

func TestBuildSecurityInfo(t *testing.T) {
	tests := map[string]struct {
		runtime  *serverconfig.ServerRuntime
		expected SecurityInfo
	}{
		"nothing configured": {
			runtime:  &serverconfig.ServerRuntime{TransportProtocol: serverconfig.TransportProtocolStdio},
			expected: SecurityInfo{},
		},
		"tls, auth with scopes and client tls": {
			runtime: &serverconfig.ServerRuntime{
				TransportProtocol: serverconfig.TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &serverconfig.StreamableHTTPConfig{
					TLS: &serverconfig.TLSConfig{CertFile: "/certs/tls.crt", KeyFile: "/certs/tls.key"},
					Auth: &serverconfig.AuthConfig{
						AuthorizationServers: []string{"https://auth.example.com"},
						ScopesSupported:      []string{"gemini:tools", "gemini:media"},
						RequiredScopes:       []string{"gemini:tools"},
					},
				},
				ClientTLSConfig: &serverconfig.ClientTLSConfig{InsecureSkipVerify: true},
			},
			expected: SecurityInfo{
				TLS: &TLSInfo{Enabled: true},
				Auth: &AuthInfo{
					Enabled:              true,
					AuthorizationServers: []string{"https://auth.example.com"},
					ScopesSupported:      []string{"gemini:tools", "gemini:media"},
					RequiredScopes:       []string{"gemini:tools"},
				},
				ClientTLS: &ClientTLSInfo{Enabled: true, InsecureSkipVerify: true},
			},
		},
		"empty auth block is not enabled": {
			runtime: &serverconfig.ServerRuntime{
				TransportProtocol:    serverconfig.TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &serverconfig.StreamableHTTPConfig{Auth: &serverconfig.AuthConfig{}},
			},
			expected: SecurityInfo{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &serverconfig.MCPServerConfigFile{MCPServerConfig: serverconfig.MCPServerConfig{Runtime: tc.runtime}}
			assert.Equal(t, tc.expected, buildSecurityInfo(cfg))
		})
	}
}

func TestBuildMCPClientConfig(t *testing.T) {
	tests := map[string]struct {
		runtime    *serverconfig.ServerRuntime
		configPath string
		expected   map[string]any
	}{
		"stdio without config file": {
			runtime: &serverconfig.ServerRuntime{TransportProtocol: serverconfig.TransportProtocolStdio},
			expected: map[string]any{
				"command": "gemini-mcp",
				"args":    []string{"run"},
			},
		},
		"stdio with config file": {
			runtime:    &serverconfig.ServerRuntime{TransportProtocol: serverconfig.TransportProtocolStdio},
			configPath: "/etc/gemini-mcp/server.yaml",
			expected: map[string]any{
				"command": "gemini-mcp",
				"args":    []string{"run", "-s", "/etc/gemini-mcp/server.yaml"},
			},
		},
		"http defaults": {
			runtime: &serverconfig.ServerRuntime{
				TransportProtocol:    serverconfig.TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &serverconfig.StreamableHTTPConfig{},
			},
			expected: map[string]any{
				"type": "http",
				"url":  "http://localhost:8080/mcp",
			},
		},
		"https with custom port and path": {
			runtime: &serverconfig.ServerRuntime{
				TransportProtocol: serverconfig.TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &serverconfig.StreamableHTTPConfig{
					Port:     8443,
					BasePath: "/gemini",
					TLS:      &serverconfig.TLSConfig{CertFile: "/c", KeyFile: "/k"},
				},
			},
			expected: map[string]any{
				"type": "http",
				"url":  "https://localhost:8443/gemini",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &serverconfig.MCPServerConfigFile{MCPServerConfig: serverconfig.MCPServerConfig{Runtime: tc.runtime}}
			got := buildMCPClientConfig("gemini", cfg, tc.configPath)
			servers, ok := got["mcpServers"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.expected, servers["gemini"])
		})
	}
}

func TestBuildInspectOutput(t *testing.T) {
	cfg := serverconfig.DefaultConfigFile()
	selector, err := newSelector(&backendconfig.Config{CLIPath: "gemini", Model: "gemini-2.5-pro"})
	require.NoError(t, err)

	output := buildInspectOutput(cfg, selector, "gemini-2.5-pro", "")

	assert.Equal(t, runtime.ServerName, output.Server.Name)
	assert.Equal(t, runtime.ServerVersion, output.Server.Version)
	assert.Equal(t, serverconfig.TransportProtocolStdio, output.Transport.Protocol)
	assert.Equal(t, "CLI", output.Backend.ConfiguredVia)
	assert.Len(t, output.Tools, 20)
	assert.Len(t, output.Prompts, 7)
	assert.Len(t, output.Resources, 4)
	assert.Len(t, output.ResourceTemplates, 2)

	for _, tool := range output.Tools {
		assert.Equal(t, "CLI", tool.Backend, tool.Name)
		assert.NotEmpty(t, tool.Capability, tool.Name)
	}
}

func TestBuildInspectOutputWithoutBackend(t *testing.T) {
	selector, err := newSelector(&backendconfig.Config{})
	require.NoError(t, err)

	output := buildInspectOutput(serverconfig.DefaultConfigFile(), selector, "gemini-2.5-pro", "")

	assert.Equal(t, "Not configured", output.Backend.ConfiguredVia)
	for _, r := range output.Backend.Routes {
		assert.Equal(t, "none", r.Backend)
		assert.Contains(t, r.Error, backendconfig.EnvCLIPath)
	}
}

func TestTruncateString(t *testing.T) {
	tests := map[string]struct {
		input    string
		maxLen   int
		expected string
	}{
		"short string unchanged": {input: "hello", maxLen: 10, expected: "hello"},
		"exact length unchanged": {input: "hello", maxLen: 5, expected: "hello"},
		"long string truncated":  {input: "hello world", maxLen: 8, expected: "hello..."},
		"newlines replaced":      {input: "hello\nworld", maxLen: 20, expected: "hello world"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truncateString(tc.input, tc.maxLen))
		})
	}
}

func TestInspectOutputRendering(t *testing.T) {
	selector, err := newSelector(&backendconfig.Config{CLIPath: "gemini"})
	require.NoError(t, err)
	output := buildInspectOutput(serverconfig.DefaultConfigFile(), selector, "gemini-2.5-pro", "")

	var jsonOut bytes.Buffer
	require.NoError(t, printJSONOutput(&jsonOut, output))

	var decoded InspectOutput
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &decoded))
	assert.Equal(t, output.Server, decoded.Server)
	assert.Len(t, decoded.Tools, len(output.Tools))

	var human bytes.Buffer
	printHumanReadableOutput(&human, output)
	text := human.String()
	assert.Contains(t, text, "Server: "+runtime.ServerName+" (v"+runtime.ServerVersion+")")
	assert.Contains(t, text, "Transport: stdio")
	assert.Contains(t, text, "Configured via: CLI")
	assert.Contains(t, text, "Tools (20):")
	assert.Contains(t, text, `"command": "gemini-mcp"`)
	assert.NotContains(t, text, "Endpoint:")
}
