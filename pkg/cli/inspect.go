package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
	"github.com/gemini-mcp/gemini-mcp/pkg/prompts"
	"github.com/gemini-mcp/gemini-mcp/pkg/resources"
	"github.com/gemini-mcp/gemini-mcp/pkg/runtime"
	"github.com/gemini-mcp/gemini-mcp/pkg/tools"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectServerConfigPath, "server-config", "s", "", "the path to the server config file")
	inspectCmd.Flags().StringVar(&inspectTransport, "transport", "", "override the transport protocol (stdio or streamablehttp)")
	inspectCmd.Flags().BoolVar(&inspectJSONOutput, "json", false, "output in JSON format")
	addEnvFileFlag(inspectCmd, &inspectEnvFilePath)
}

var inspectServerConfigPath string
var inspectTransport string
var inspectEnvFilePath string
var inspectJSONOutput bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show detailed server information",
	Long: `Display detailed information about the Gemini MCP server as "gemini-mcp run" would start it:
transport, security configuration, backend routing, tools, prompts, resources,
and the MCP client configuration JSON.`,
	Args: cobra.NoArgs,
	RunE: executeInspectCmd,
}

// InspectOutput represents the complete inspection output
type InspectOutput struct {
	Server            ServerInfo             `json:"server"`
	Transport         TransportInfo          `json:"transport"`
	Security          SecurityInfo           `json:"security"`
	Backend           BackendInfo            `json:"backend"`
	Tools             []ToolInfo             `json:"tools"`
	Prompts           []PromptInfo           `json:"prompts"`
	Resources         []ResourceInfo         `json:"resources"`
	ResourceTemplates []ResourceTemplateInfo `json:"resourceTemplates"`
	MCPClientConfig   map[string]any         `json:"mcpClientConfig"`
}

// ServerInfo contains basic server metadata
type ServerInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Instructions string `json:"instructions,omitempty"`
}

// TransportInfo contains transport configuration
type TransportInfo struct {
	Protocol  string      `json:"protocol"`
	Port      int         `json:"port,omitempty"`
	BasePath  string      `json:"basePath,omitempty"`
	Stateless bool        `json:"stateless,omitempty"`
	Health    *HealthInfo `json:"health,omitempty"`
}

// HealthInfo contains health check configuration
type HealthInfo struct {
	Enabled       bool   `json:"enabled"`
	LivenessPath  string `json:"livenessPath"`
	ReadinessPath string `json:"readinessPath"`
}

// SecurityInfo contains security configuration status
type SecurityInfo struct {
	TLS       *TLSInfo       `json:"tls,omitempty"`
	Auth      *AuthInfo      `json:"auth,omitempty"`
	ClientTLS *ClientTLSInfo `json:"clientTls,omitempty"`
}

// TLSInfo contains TLS status
type TLSInfo struct {
	Enabled bool `json:"enabled"`
}

// AuthInfo contains auth status
type AuthInfo struct {
	Enabled              bool     `json:"enabled"`
	JWKSURI              string   `json:"jwksUri,omitempty"`
	AuthorizationServers []string `json:"authorizationServers,omitempty"`
	ScopesSupported      []string `json:"scopesSupported,omitempty"`
	RequiredScopes       []string `json:"requiredScopes,omitempty"`
}

// ClientTLSInfo contains client TLS status
type ClientTLSInfo struct {
	Enabled            bool `json:"enabled"`
	InsecureSkipVerify bool `json:"insecureSkipVerify"`
}

// BackendInfo contains the resolved backend routing
type BackendInfo struct {
	Model         string      `json:"model"`
	ConfiguredVia string      `json:"configuredVia"`
	Routes        []RouteInfo `json:"routes"`
}

// ToolInfo contains tool information for display
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capability  string `json:"capability"`
	Backend     string `json:"backend"`
}

// PromptInfo contains prompt information for display
type PromptInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version,omitempty"`
}

// ResourceInfo contains resource information for display
type ResourceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URI         string `json:"uri"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ResourceTemplateInfo contains resource template information for display
type ResourceTemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URITemplate string `json:"uriTemplate"`
	MIMEType    string `json:"mimeType,omitempty"`
}

func executeInspectCmd(cmd *cobra.Command, args []string) error {
	serverConfigPath, err := absPath(inspectServerConfigPath)
	if err != nil {
		return err
	}

	backendCfg, err := loadBackend(cmd, inspectEnvFilePath)
	if err != nil {
		return err
	}
	selector, err := newSelector(backendCfg)
	if err != nil {
		return err
	}

	serverConfig, err := runtime.LoadConfig(runtime.RunOptions{
		ServerConfigPath: serverConfigPath,
		Transport:        inspectTransport,
	})
	if err != nil {
		return err
	}
	if err := serverConfig.Validate(); err != nil {
		return err
	}

	output := buildInspectOutput(serverConfig, selector, backendCfg.Model, serverConfigPath)

	if inspectJSONOutput {
		return printJSONOutput(cmd.OutOrStdout(), output)
	}
	printHumanReadableOutput(cmd.OutOrStdout(), output)
	return nil
}

func buildInspectOutput(
	serverConfig *serverconfig.MCPServerConfigFile,
	selector *backend.Selector,
	model string,
	serverConfigPath string,
) InspectOutput {
	output := InspectOutput{
		Server: ServerInfo{
			Name:         runtime.ServerName,
			Version:      runtime.ServerVersion,
			Instructions: runtime.ServerInstructions,
		},
		Backend: BackendInfo{
			Model:         model,
			ConfiguredVia: selector.ConfiguredVia(),
			Routes:        buildRouteInfo(selector),
		},
		Tools:             make([]ToolInfo, 0),
		Prompts:           make([]PromptInfo, 0),
		Resources:         make([]ResourceInfo, 0),
		ResourceTemplates: make([]ResourceTemplateInfo, 0),
	}

	output.Transport = buildTransportInfo(serverConfig)
	output.Security = buildSecurityInfo(serverConfig)

	toolset := tools.Catalog()
	for _, tool := range toolset {
		route := selector.Route(tool.Capability)
		output.Tools = append(output.Tools, ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			Capability:  string(tool.Capability),
			Backend:     route.Kind.String(),
		})
	}

	for _, prompt := range prompts.Catalog() {
		output.Prompts = append(output.Prompts, PromptInfo{
			Name:        prompt.Name,
			Description: prompt.Description,
			Version:     prompt.Version,
		})
	}

	catalog := resources.New(model, selector, toolset)
	for _, resource := range catalog.Resources() {
		output.Resources = append(output.Resources, ResourceInfo{
			Name:        resource.Name,
			Description: resource.Description,
			URI:         resource.URI,
			MIMEType:    resource.MIMEType,
		})
	}

	for _, rt := range catalog.Templates() {
		output.ResourceTemplates = append(output.ResourceTemplates, ResourceTemplateInfo{
			Name:        rt.Name,
			Description: rt.Description,
			URITemplate: rt.URITemplate,
			MIMEType:    rt.MIMEType,
		})
	}

	output.MCPClientConfig = buildMCPClientConfig(runtime.ServerName, serverConfig, serverConfigPath)

	return output
}

func buildTransportInfo(serverConfig *serverconfig.MCPServerConfigFile) TransportInfo {
	info := TransportInfo{
		Protocol: serverconfig.TransportProtocolStdio,
	}

	if serverConfig.Runtime != nil {
		info.Protocol = serverConfig.Runtime.TransportProtocol

		if serverConfig.Runtime.StreamableHTTPConfig != nil {
			httpConfig := serverConfig.Runtime.StreamableHTTPConfig
			info.Port = httpConfig.Port
			info.BasePath = httpConfig.BasePath
			info.Stateless = httpConfig.IsStateless()

			if httpConfig.Health != nil {
				info.Health = &HealthInfo{
					Enabled:       httpConfig.Health.IsEnabled(),
					LivenessPath:  httpConfig.Health.LivenessPath,
					ReadinessPath: httpConfig.Health.ReadinessPath,
				}
			}
		}
	}

	return info
}

func buildSecurityInfo(serverConfig *serverconfig.MCPServerConfigFile) SecurityInfo {
	security := SecurityInfo{}

	if serverConfig.Runtime == nil {
		return security
	}

	if httpConfig := serverConfig.Runtime.StreamableHTTPConfig; httpConfig != nil {
		if tls := httpConfig.TLS; tls != nil && (tls.CertFile != "" || tls.KeyFile != "") {
			security.TLS = &TLSInfo{Enabled: true}
		}

		if auth := httpConfig.Auth; auth != nil && (auth.JWKSURI != "" || len(auth.AuthorizationServers) > 0) {
			security.Auth = &AuthInfo{
				Enabled:              true,
				JWKSURI:              auth.JWKSURI,
				AuthorizationServers: auth.AuthorizationServers,
				ScopesSupported:      auth.ScopesSupported,
				RequiredScopes:       auth.RequiredScopes,
			}
		}
	}

	if clientTLS := serverConfig.Runtime.ClientTLSConfig; clientTLS != nil {
		if len(clientTLS.CACertFiles) > 0 || clientTLS.CACertDir != "" || clientTLS.InsecureSkipVerify {
			security.ClientTLS = &ClientTLSInfo{
				Enabled:            true,
				InsecureSkipVerify: clientTLS.InsecureSkipVerify,
			}
		}
	}

	return security
}

func buildMCPClientConfig(serverName string, serverConfig *serverconfig.MCPServerConfigFile, serverConfigPath string) map[string]any {
	mcpServers := make(map[string]any)

	protocol := serverconfig.TransportProtocolStdio
	if serverConfig.Runtime != nil {
		protocol = serverConfig.Runtime.TransportProtocol
	}

	if protocol == serverconfig.TransportProtocolStdio {
		args := []string{"run"}
		if serverConfigPath != "" {
			args = append(args, "-s", serverConfigPath)
		}
		mcpServers[serverName] = map[string]any{
			"command": "gemini-mcp",
			"args":    args,
		}
	} else {
		port := serverconfig.DefaultPort
		basePath := serverconfig.DefaultBasePath
		scheme := "http"

		if serverConfig.Runtime != nil && serverConfig.Runtime.StreamableHTTPConfig != nil {
			httpConfig := serverConfig.Runtime.StreamableHTTPConfig
			if httpConfig.Port > 0 {
				port = httpConfig.Port
			}
			if httpConfig.BasePath != "" {
				basePath = httpConfig.BasePath
			}
			if httpConfig.TLS != nil && (httpConfig.TLS.CertFile != "" || httpConfig.TLS.KeyFile != "") {
				scheme = "https"
			}
		}

		mcpServers[serverName] = map[string]any{
			"type": "http",
			"url":  fmt.Sprintf("%s://localhost:%d%s", scheme, port, basePath),
		}
	}

	return map[string]any{
		"mcpServers": mcpServers,
	}
}

func printJSONOutput(w io.Writer, output InspectOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printHumanReadableOutput(w io.Writer, output InspectOutput) {
	fmt.Fprintf(w, "Server: %s (v%s)\n", output.Server.Name, output.Server.Version)
	fmt.Fprintf(w, "Transport: %s\n", output.Transport.Protocol)

	if output.Transport.Protocol == serverconfig.TransportProtocolStreamableHttp {
		scheme := "http"
		if output.Security.TLS != nil && output.Security.TLS.Enabled {
			scheme = "https"
		}
		fmt.Fprintf(w, "Endpoint: %s://localhost:%d%s\n", scheme, output.Transport.Port, output.Transport.BasePath)
	}

	if output.Server.Instructions != "" {
		fmt.Fprintf(w, "Instructions: %s\n", truncateString(output.Server.Instructions, 80))
	}

	fmt.Fprintln(w, "\nSecurity:")
	if output.Security.TLS != nil && output.Security.TLS.Enabled {
		fmt.Fprintln(w, "  TLS: enabled (cert configured)")
	} else {
		fmt.Fprintln(w, "  TLS: disabled")
	}

	if auth := output.Security.Auth; auth != nil && auth.Enabled {
		fmt.Fprintln(w, "  Auth: enabled (OAuth 2.0)")
		if len(auth.RequiredScopes) > 0 {
			fmt.Fprintf(w, "  Required scopes: %s\n", strings.Join(auth.RequiredScopes, " "))
		}
	} else {
		fmt.Fprintln(w, "  Auth: disabled")
	}

	if output.Security.ClientTLS != nil && output.Security.ClientTLS.Enabled {
		if output.Security.ClientTLS.InsecureSkipVerify {
			fmt.Fprintln(w, "  Client TLS: enabled (insecureSkipVerify: true)")
		} else {
			fmt.Fprintln(w, "  Client TLS: enabled (custom CA)")
		}
	}

	if output.Transport.Health != nil && output.Transport.Health.Enabled {
		fmt.Fprintln(w, "\nHealth Endpoints:")
		fmt.Fprintf(w, "  Liveness: %s\n", output.Transport.Health.LivenessPath)
		fmt.Fprintf(w, "  Readiness: %s\n", output.Transport.Health.ReadinessPath)
	}

	fmt.Fprintln(w, "\nBackend:")
	fmt.Fprintf(w, "  Model: %s\n", output.Backend.Model)
	fmt.Fprintf(w, "  Configured via: %s\n", output.Backend.ConfiguredVia)

	fmt.Fprintln(w, "\nCapabilities:")

	fmt.Fprintf(w, "  Tools (%d):\n", len(output.Tools))
	for _, tool := range output.Tools {
		fmt.Fprintf(w, "    - %s [%s]: %s\n", tool.Name, tool.Backend, truncateString(tool.Description, 60))
	}

	if len(output.Prompts) > 0 {
		fmt.Fprintf(w, "  Prompts (%d):\n", len(output.Prompts))
		for _, prompt := range output.Prompts {
			fmt.Fprintf(w, "    - %s: %s\n", prompt.Name, truncateString(prompt.Description, 60))
		}
	}

	if len(output.Resources) > 0 {
		fmt.Fprintf(w, "  Resources (%d):\n", len(output.Resources))
		for _, resource := range output.Resources {
			fmt.Fprintf(w, "    - %s: %s (uri: %s)\n", resource.Name, truncateString(resource.Description, 40), resource.URI)
		}
	}

	if len(output.ResourceTemplates) > 0 {
		fmt.Fprintf(w, "  Resource Templates (%d):\n", len(output.ResourceTemplates))
		for _, rt := range output.ResourceTemplates {
			fmt.Fprintf(w, "    - %s: %s (uriTemplate: %s)\n", rt.Name, truncateString(rt.Description, 40), rt.URITemplate)
		}
	}

	fmt.Fprintln(w, "\nMCP Client Configuration:")
	clientConfigJSON, _ := json.MarshalIndent(output.MCPClientConfig, "", "  ")
	// Indent each line for visual clarity
	for _, line := range strings.Split(string(clientConfigJSON), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
