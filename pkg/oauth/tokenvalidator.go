package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"go.uber.org/zap"

	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
)

type oidcDiscoveryDocument struct {
	JWKSURI string `json:"jwks_uri"`
}

// TokenValidator verifies JWT access tokens against the JWKS of the configured
// authorization servers.
type TokenValidator struct {
	jwksURI              string
	authorizationServers []string
	client               *http.Client
	logger               *zap.Logger
}

var _ Validator = &TokenValidator{}

// NewTokenValidator builds a validator for auth. A nil client means
// http.DefaultClient.
func NewTokenValidator(auth *serverconfig.AuthConfig, client *http.Client, logger *zap.Logger) *TokenValidator {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenValidator{
		jwksURI:              auth.JWKSURI,
		authorizationServers: auth.AuthorizationServers,
		client:               client,
		logger:               logger,
	}
}

// ValidateToken verifies the signature and time claims of tokenString and
// checks its issuer.
func (tv *TokenValidator) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	jwksURI := tv.jwksURI
	if jwksURI == "" {
		if len(tv.authorizationServers) == 0 {
			return nil, fmt.Errorf("no JWKS URI configured and no authorization servers provided for discovery")
		}

		var err error
		jwksURI, err = tv.discoverJWKSURIFromAuthServers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to discover JWKS URI: %w", err)
		}
	}

	keySet, err := jwk.Fetch(ctx, jwksURI, jwk.WithHTTPClient(tv.client))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", jwksURI, err)
	}

	token, err := jwt.Parse([]byte(tokenString), jwt.WithKeySet(keySet))
	if err != nil {
		return nil, fmt.Errorf("failed to parse/validate JWT token: %w", err)
	}

	claims := extractClaims(token)
	if err := tv.validateClaims(claims); err != nil {
		return nil, fmt.Errorf("failed to validate claims: %w", err)
	}

	return claims, nil
}

// validateClaims only checks the issuer when authorization servers are
// configured; a bare JWKS URI trusts every issuer signing with its keys.
func (tv *TokenValidator) validateClaims(claims *TokenClaims) error {
	if len(tv.authorizationServers) == 0 {
		return nil
	}
	if !slices.Contains(tv.authorizationServers, claims.Issuer) {
		return fmt.Errorf("invalid token claims: %s is not a valid issuer", claims.Issuer)
	}
	return nil
}

func (tv *TokenValidator) discoverJWKSURIFromAuthServers(ctx context.Context) (string, error) {
	var lastErr error
	for _, authServer := range tv.authorizationServers {
		uri, err := tv.discoverJWKSURI(ctx, authServer)
		if err != nil {
			tv.logger.Debug("JWKS discovery failed",
				zap.String("authorization_server", authServer),
				zap.Error(err))
			lastErr = err
			continue
		}
		return uri, nil
	}

	return "", fmt.Errorf("failed to discover JWKS URI from any authorization server, last error: %w", lastErr)
}

func extractClaims(token jwt.Token) *TokenClaims {
	claims := &TokenClaims{}

	if sub, ok := token.Subject(); ok {
		claims.Subject = sub
	}
	if iss, ok := token.Issuer(); ok {
		claims.Issuer = iss
	}
	if aud, ok := token.Audience(); ok && len(aud) > 0 {
		claims.Audience = aud
	}
	if exp, ok := token.Expiration(); ok && !exp.IsZero() {
		claims.Expiry = &exp
	}
	if iat, ok := token.IssuedAt(); ok && !iat.IsZero() {
		claims.IssuedAt = &iat
	}
	if nbf, ok := token.NotBefore(); ok && !nbf.IsZero() {
		claims.NotBefore = &nbf
	}

	var s string
	if err := token.Get("scope", &s); err == nil {
		claims.Scope = s
	}
	if err := token.Get("client_id", &s); err == nil {
		claims.ClientID = s
	}
	if err := token.Get("email", &s); err == nil {
		claims.Email = s
	}

	return claims
}

// discoverJWKSURI probes the usual JWKS locations of authServerURL, then
// falls back to OIDC discovery.
func (tv *TokenValidator) discoverJWKSURI(ctx context.Context, authServerURL string) (string, error) {
	base := strings.TrimSuffix(authServerURL, "/")
	for _, path := range []string{"/jwks", "/.well-known/jwks.json", "/oauth/jwks", "/auth/jwks"} {
		if tv.isValidJWKSEndpoint(ctx, base+path) {
			return base + path, nil
		}
	}

	if jwksURI, err := tv.discoverFromOIDC(ctx, base+"/.well-known/openid-configuration"); err == nil {
		return jwksURI, nil
	}

	return "", fmt.Errorf("could not discover JWKS URI for authorization server: %s", authServerURL)
}

func (tv *TokenValidator) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return tv.client.Do(req)
}

func (tv *TokenValidator) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		tv.logger.Debug("Error closing response body", zap.Error(err))
	}
}

func (tv *TokenValidator) isValidJWKSEndpoint(ctx context.Context, jwksURL string) bool {
	resp, err := tv.get(ctx, jwksURL)
	if err != nil {
		return false
	}
	defer tv.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return false
	}

	_, err = jwk.ParseReader(resp.Body)
	return err == nil
}

func (tv *TokenValidator) discoverFromOIDC(ctx context.Context, discoveryURL string) (string, error) {
	resp, err := tv.get(ctx, discoveryURL)
	if err != nil {
		return "", err
	}
	defer tv.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OIDC discovery endpoint returned status %d", resp.StatusCode)
	}

	var doc oidcDiscoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to parse OIDC discovery document: %w", err)
	}
	if doc.JWKSURI == "" {
		return "", fmt.Errorf("OIDC discovery document does not contain jwks_uri")
	}

	return doc.JWKSURI, nil
}
