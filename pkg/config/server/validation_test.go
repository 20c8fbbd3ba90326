package server

import (
	"testing"

	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/stretchr/testify/assert"
)

func TestServerRuntimeValidate(t *testing.T) {
	tt := map[string]struct {
		runtime       *ServerRuntime
		errorContains []string
	}{
		"stdio": {
			runtime: &ServerRuntime{TransportProtocol: TransportProtocolStdio},
		},
		"http with defaults": {
			runtime: func() *ServerRuntime {
				r := &ServerRuntime{TransportProtocol: TransportProtocolStreamableHttp}
				r.ApplyDefaults()
				return r
			}(),
		},
		"unknown transport": {
			runtime:       &ServerRuntime{TransportProtocol: "grpc"},
			errorContains: []string{"transport protocol must be one of"},
		},
		"http without config": {
			runtime:       &ServerRuntime{TransportProtocol: TransportProtocolStreamableHttp},
			errorContains: []string{"streamableHttpConfig is not set"},
		},
		"every http problem is reported": {
			runtime: &ServerRuntime{
				TransportProtocol: TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &StreamableHTTPConfig{
					Port: 70000,
					TLS:  &TLSConfig{CertFile: "/tls/cert.pem"},
					Auth: &AuthConfig{},
				},
			},
			errorContains: []string{"port must be between", "requires both certFile and keyFile", "requires jwksUri"},
		},
		"bad log encoding": {
			runtime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
				LoggingConfig:     &logging.LoggingConfig{Encoding: "xml"},
			},
			errorContains: []string{"loggingConfig.encoding"},
		},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			err := tc.runtime.Validate()
			if len(tc.errorContains) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			for _, msg := range tc.errorContains {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}
