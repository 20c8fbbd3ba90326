package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// GetHTTPClient returns the client shared by the Gemini API backend and the
// OAuth JWKS lookups. It is built once from ClientTLSConfig and cached. No
// request timeout is set: callers bound requests through their context.
func (sr *ServerRuntime) GetHTTPClient() (*http.Client, error) {
	if sr == nil {
		return http.DefaultClient, nil
	}

	sr.httpClientOnce.Do(func() {
		sr.httpClient, sr.httpClientErr = sr.buildHTTPClient()
	})

	return sr.httpClient, sr.httpClientErr
}

func (sr *ServerRuntime) buildHTTPClient() (*http.Client, error) {
	if sr.ClientTLSConfig == nil {
		return &http.Client{}, nil
	}

	tlsConfig, err := sr.ClientTLSConfig.BuildTLSConfig(sr.GetBaseLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to build TLS config: %w", err)
	}

	// The clone keeps proxy settings, pooling and HTTP/2 from the default transport.
	defaultTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("http.DefaultTransport is not *http.Transport; cannot apply custom TLS config")
	}
	transport := defaultTransport.Clone()
	transport.TLSClientConfig = tlsConfig

	return &http.Client{Transport: transport}, nil
}

// BuildTLSConfig returns a TLS 1.2+ config trusting the system roots plus the
// configured CA certificates, or nil when c is nil.
func (c *ClientTLSConfig) BuildTLSConfig(logger *zap.Logger) (*tls.Config, error) {
	if c == nil {
		return nil, nil
	}

	rootCAs, err := c.rootCAs(logger)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		RootCAs:            rootCAs,
		InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // explicitly requested in the server config
	}, nil
}

// rootCAs loads caCertFiles strictly and caCertDir leniently: a broken file
// in the directory is skipped with a warning, like system CA directories.
func (c *ClientTLSConfig) rootCAs(logger *zap.Logger) (*x509.CertPool, error) {
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}

	for _, certFile := range c.CACertFiles {
		if err := addPEMFile(pool, certFile); err != nil {
			return nil, fmt.Errorf("failed to load CA cert from %s: %w", certFile, err)
		}
	}

	if c.CACertDir == "" {
		return pool, nil
	}

	certFiles, err := caFilesInDir(c.CACertDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load CA certs from directory %s: %w", c.CACertDir, err)
	}

	loaded := 0
	for _, certFile := range certFiles {
		if err := addPEMFile(pool, certFile); err != nil {
			logger.Warn("Skipping CA cert", zap.String("path", certFile), zap.Error(err))
			continue
		}
		loaded++
	}
	if loaded == 0 {
		logger.Warn("No valid CA certificates found", zap.String("dir", c.CACertDir))
	}

	return pool, nil
}

// caFilesInDir lists the .pem and .crt files of dir in name order.
func caFilesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pem", ".crt":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

func addPEMFile(pool *x509.CertPool, certFile string) error {
	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("failed to read certificate file: %w", err)
	}
	if !pool.AppendCertsFromPEM(certPEM) {
		return fmt.Errorf("failed to parse certificate from %s", certFile)
	}
	return nil
}
