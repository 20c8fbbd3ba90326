package server

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClientTLSConfig_BuildTLSConfig(t *testing.T) {
	tests := map[string]struct {
		config        *ClientTLSConfig
		errorContains string
		validate      func(t *testing.T, cfg *tls.Config)
	}{
		"nil config returns nil": {
			validate: func(t *testing.T, cfg *tls.Config) {
				assert.Nil(t, cfg)
			},
		},
		"empty config requires TLS 1.2": {
			config: &ClientTLSConfig{},
			validate: func(t *testing.T, cfg *tls.Config) {
				require.NotNil(t, cfg)
				assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
				assert.NotNil(t, cfg.RootCAs)
				assert.False(t, cfg.InsecureSkipVerify)
			},
		},
		"insecureSkipVerify is carried over": {
			config: &ClientTLSConfig{InsecureSkipVerify: true},
			validate: func(t *testing.T, cfg *tls.Config) {
				assert.True(t, cfg.InsecureSkipVerify)
			},
		},
		"missing CA cert file": {
			config:        &ClientTLSConfig{CACertFiles: []string{"/nonexistent/path/to/ca.pem"}},
			errorContains: "failed to load CA cert",
		},
		"missing CA cert directory": {
			config:        &ClientTLSConfig{CACertDir: "/nonexistent/directory"},
			errorContains: "failed to load CA certs from directory",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := tc.config.BuildTLSConfig(zap.NewNop())
			if tc.errorContains != "" {
				assert.ErrorContains(t, err, tc.errorContains)
				return
			}
			require.NoError(t, err)
			if tc.validate != nil {
				tc.validate(t, cfg)
			}
		})
	}
}

func TestClientTLSConfig_InvalidCACertFile(t *testing.T) {
	certPath := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(certPath, []byte("not a cert"), 0o644))

	_, err := (&ClientTLSConfig{CACertFiles: []string{certPath}}).BuildTLSConfig(zap.NewNop())
	assert.ErrorContains(t, err, "failed to parse certificate")
}

func TestClientTLSConfig_LoadCACertDir(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ca1.pem"), generateTestCACert(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ca2.crt"), generateTestCACert(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "readme.txt"), []byte("not a cert"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "broken.pem"), []byte("not a cert"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "nested.pem"), 0o755))

	files, err := caFilesInDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "broken.pem"),
		filepath.Join(tmpDir, "ca1.pem"),
		filepath.Join(tmpDir, "ca2.crt"),
	}, files)

	core, logs := observer.New(zapcore.WarnLevel)
	tlsConfig, err := (&ClientTLSConfig{CACertDir: tmpDir}).BuildTLSConfig(zap.New(core))
	require.NoError(t, err)
	assert.NotNil(t, tlsConfig.RootCAs)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, filepath.Join(tmpDir, "broken.pem"), logs.All()[0].ContextMap()["path"])
}

func TestClientTLSConfig_EmptyCACertDirWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	_, err := (&ClientTLSConfig{CACertDir: t.TempDir()}).BuildTLSConfig(zap.New(core))
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "No valid CA certificates found", logs.All()[0].Message)
}

func TestServerRuntime_GetHTTPClient(t *testing.T) {
	tests := map[string]struct {
		runtime     *ServerRuntime
		expectError bool
	}{
		"nil runtime returns default client": {},
		"runtime without ClientTLSConfig": {
			runtime: &ServerRuntime{},
		},
		"runtime with ClientTLSConfig": {
			runtime: &ServerRuntime{ClientTLSConfig: &ClientTLSConfig{InsecureSkipVerify: true}},
		},
		"runtime with invalid CA path": {
			runtime:     &ServerRuntime{ClientTLSConfig: &ClientTLSConfig{CACertFiles: []string{"/nonexistent/ca.pem"}}},
			expectError: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.runtime != nil {
				tc.runtime.SetBaseLogger(zap.NewNop())
			}
			client, err := tc.runtime.GetHTTPClient()
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestServerRuntime_GetHTTPClient_Caching(t *testing.T) {
	runtime := &ServerRuntime{ClientTLSConfig: &ClientTLSConfig{InsecureSkipVerify: true}}
	runtime.SetBaseLogger(zap.NewNop())

	client1, err1 := runtime.GetHTTPClient()
	client2, err2 := runtime.GetHTTPClient()

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Same(t, client1, client2)
}

func TestServerRuntime_GetHTTPClient_TrustsConfiguredCA(t *testing.T) {
	api := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer api.Close()

	caPath := filepath.Join(t.TempDir(), "proxy-ca.pem")
	require.NoError(t, os.WriteFile(caPath, pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: api.Certificate().Raw,
	}), 0o644))

	untrusted := &ServerRuntime{}
	client, err := untrusted.GetHTTPClient()
	require.NoError(t, err)
	_, err = client.Get(api.URL)
	assert.Error(t, err)

	trusted := &ServerRuntime{ClientTLSConfig: &ClientTLSConfig{CACertFiles: []string{caPath}}}
	trusted.SetBaseLogger(zap.NewNop())
	client, err = trusted.GetHTTPClient()
	require.NoError(t, err)

	resp, err := client.Get(api.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// generateTestCACert generates a self-signed CA certificate for testing
func generateTestCACert(t *testing.T) []byte {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Test CA"},
			CommonName:   "Test CA",
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
}
