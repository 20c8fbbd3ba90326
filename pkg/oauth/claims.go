package oauth

import (
	"context"
	"slices"
	"strings"
	"time"
)

// TokenClaims holds the claims of a validated access token.
type TokenClaims struct {
	Subject   string     `json:"sub,omitempty"`
	Issuer    string     `json:"iss,omitempty"`
	Audience  []string   `json:"aud,omitempty"`
	Expiry    *time.Time `json:"exp,omitempty"`
	IssuedAt  *time.Time `json:"iat,omitempty"`
	NotBefore *time.Time `json:"nbf,omitempty"`
	Scope     string     `json:"scope,omitempty"`
	ClientID  string     `json:"client_id,omitempty"`
	Email     string     `json:"email,omitempty"`
}

// Scopes splits the space separated scope claim.
func (c *TokenClaims) Scopes() []string {
	if c == nil {
		return nil
	}
	return strings.Fields(c.Scope)
}

// MissingScopes returns the entries of required the token does not carry.
func (c *TokenClaims) MissingScopes(required []string) []string {
	granted := c.Scopes()
	var missing []string
	for _, s := range required {
		if !slices.Contains(granted, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

type claimKey struct{}

// GetClaimsFromContext returns the claims stored by the bearer middleware, or
// nil for unauthenticated transports.
func GetClaimsFromContext(ctx context.Context) *TokenClaims {
	if claims, ok := ctx.Value(claimKey{}).(*TokenClaims); ok {
		return claims
	}
	return nil
}

// AddClaimsToContext returns a copy of ctx carrying claims.
func AddClaimsToContext(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, claimKey{}, claims)
}
