package oauth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
)

// WellKnownSuffix is appended to the MCP base path to serve the protected
// resource metadata.
const WellKnownSuffix = "/.well-known/oauth-protected-resource"

// ProtectedResourceMetadata is the RFC 9728 metadata document.
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	ResourceName           string   `json:"resource_name,omitempty"`
	AuthorizationServers   []string `json:"authorization_servers,omitempty"`
	ScopesSupported        []string `json:"scopes_supported,omitempty"`
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`
	JWKSURI                string   `json:"jwks_uri,omitempty"`
}

// MetadataConfig is the static part of the metadata document.
type MetadataConfig struct {
	ResourceName         string
	AuthorizationServers []string
	ScopesSupported      []string
	JWKSURI              string
}

// MetadataConfigFor derives the metadata of the server named resourceName
// from its auth settings.
func MetadataConfigFor(resourceName string, auth *serverconfig.AuthConfig) MetadataConfig {
	cfg := MetadataConfig{ResourceName: resourceName}
	if auth != nil {
		cfg.AuthorizationServers = auth.AuthorizationServers
		cfg.ScopesSupported = auth.ScopesSupported
		cfg.JWKSURI = auth.JWKSURI
	}
	return cfg
}

// NewProtectedResourceMetadataHandler serves the metadata of the resource
// mounted at basePath.
func NewProtectedResourceMetadataHandler(basePath string, config MetadataConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			writeCORSHeaders(w)
			w.WriteHeader(http.StatusNoContent)
			return
		} else if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		metadata := ProtectedResourceMetadata{
			Resource:               resourceURL(r, basePath),
			ResourceName:           config.ResourceName,
			AuthorizationServers:   config.AuthorizationServers,
			ScopesSupported:        config.ScopesSupported,
			BearerMethodsSupported: []string{"header"},
			JWKSURI:                config.JWKSURI,
		}

		writeCORSHeaders(w)
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(metadata); err != nil {
			logger.Warn("Failed to encode OAuth metadata", zap.Error(err))
		}
	}
}

// resourceURL reconstructs the public URL of path, honouring
// X-Forwarded-Proto from reverse proxies.
func resourceURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, path)
}

func writeCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, mcp-protocol-version")
}
