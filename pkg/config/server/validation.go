package server

import (
	"errors"
	"fmt"
)

func (m *MCPServerConfigFile) Validate() error {
	if err := m.MCPServerConfig.Validate(); err != nil {
		return fmt.Errorf("invalid server config file: %w", err)
	}
	return nil
}

func (s *MCPServerConfig) Validate() error {
	if s.Runtime == nil {
		return fmt.Errorf("runtime is required")
	}
	if err := s.Runtime.Validate(); err != nil {
		return fmt.Errorf("runtime is invalid: %w", err)
	}
	return nil
}

func (r *ServerRuntime) Validate() error {
	var err error
	switch r.TransportProtocol {
	case TransportProtocolStdio:
	case TransportProtocolStreamableHttp:
		err = errors.Join(err, r.StreamableHTTPConfig.Validate())
	default:
		err = errors.Join(
			err,
			fmt.Errorf(
				"transport protocol must be one of (%s, %s), received %q",
				TransportProtocolStdio,
				TransportProtocolStreamableHttp,
				r.TransportProtocol,
			),
		)
	}

	if r.LoggingConfig != nil {
		err = errors.Join(err, r.LoggingConfig.Validate(r.TransportProtocol == TransportProtocolStdio))
	}

	return err
}

func (s *StreamableHTTPConfig) Validate() error {
	if s == nil {
		return fmt.Errorf("transportProtocol is %s, but streamableHttpConfig is not set", TransportProtocolStreamableHttp)
	}

	var err error
	if s.Port <= 0 || s.Port > 65535 {
		err = errors.Join(err, fmt.Errorf("streamableHttpConfig.port must be between 1 and 65535"))
	}

	if s.TLS != nil && (s.TLS.CertFile == "") != (s.TLS.KeyFile == "") {
		err = errors.Join(err, fmt.Errorf("streamableHttpConfig.tls requires both certFile and keyFile"))
	}

	if s.Auth != nil && s.Auth.JWKSURI == "" && len(s.Auth.AuthorizationServers) == 0 {
		err = errors.Join(err, fmt.Errorf("streamableHttpConfig.auth requires jwksUri or authorizationServers"))
	}

	return err
}
