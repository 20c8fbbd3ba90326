package server

import (
	"testing"

	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"
)

func TestEnvOverrides(t *testing.T) {
	tt := map[string]struct {
		initialRuntime  *ServerRuntime
		expectedRuntime *ServerRuntime
		env             map[string]string
		expectErr       bool
	}{
		"no overrides": {
			initialRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
			},
			expectedRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
			},
		},
		"override transport protocol": {
			initialRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
			},
			expectedRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStreamableHttp,
			},
			env: map[string]string{
				"GEMINIMCP_TRANSPORTPROTOCOL": "streamablehttp",
			},
		},
		"override nested port and pointer bool": {
			initialRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &StreamableHTTPConfig{
					Port: 8080,
				},
			},
			expectedRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &StreamableHTTPConfig{
					Port:      9000,
					Stateless: ptr.To(false),
				},
			},
			env: map[string]string{
				"GEMINIMCP_STREAMABLEHTTPCONFIG_PORT":      "9000",
				"GEMINIMCP_STREAMABLEHTTPCONFIG_STATELESS": "false",
			},
		},
		"nil struct is created only when overridden": {
			initialRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
			},
			expectedRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
				LoggingConfig: &logging.LoggingConfig{
					Level:       "debug",
					OutputPaths: []string{"stderr", "/var/log/gemini-mcp.log"},
				},
			},
			env: map[string]string{
				"GEMINIMCP_LOGGINGCONFIG_LEVEL":       "debug",
				"GEMINIMCP_LOGGINGCONFIG_OUTPUTPATHS": "stderr,/var/log/gemini-mcp.log",
			},
		},
		"map values are parsed as json": {
			initialRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
			},
			expectedRuntime: &ServerRuntime{
				TransportProtocol: TransportProtocolStdio,
				LoggingConfig: &logging.LoggingConfig{
					InitialFields: map[string]interface{}{"service": "gemini"},
				},
			},
			env: map[string]string{
				"GEMINIMCP_LOGGINGCONFIG_INITIALFIELDS": `{"service":"gemini"}`,
			},
		},
		"invalid int": {
			initialRuntime: &ServerRuntime{
				TransportProtocol:    TransportProtocolStreamableHttp,
				StreamableHTTPConfig: &StreamableHTTPConfig{Port: 8080},
			},
			env: map[string]string{
				"GEMINIMCP_STREAMABLEHTTPCONFIG_PORT": "eighty",
			},
			expectErr: true,
		},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				v, ok := tc.env[key]
				return v, ok
			}

			err := NewLookupRuntimeOverrider(lookup).ApplyOverrides(tc.initialRuntime)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedRuntime, tc.initialRuntime)
		})
	}
}
