package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
)

// Validator checks a raw bearer token.
type Validator interface {
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

// RequireBearerToken rejects requests to the MCP endpoint mounted at basePath
// that lack a valid access token. Claims of accepted tokens are stored in the
// request context.
func RequireBearerToken(basePath string, auth *serverconfig.AuthConfig, validator Validator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			challenge := fmt.Sprintf(`Bearer resource_metadata=%q`, resourceURL(r, basePath+WellKnownSuffix))

			token, ok := bearerToken(r)
			if !ok {
				logger.Debug("Rejected request without bearer token", zap.String("path", r.URL.Path))
				w.Header().Set("WWW-Authenticate", challenge)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Warn("Rejected invalid bearer token", zap.Error(err))
				w.Header().Set("WWW-Authenticate", challenge+`, error="invalid_token"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if missing := claims.MissingScopes(auth.RequiredScopes); len(missing) > 0 {
				logger.Warn("Rejected token with insufficient scope",
					zap.String("user_subject", claims.Subject),
					zap.Strings("missing_scopes", missing))
				w.Header().Set("WWW-Authenticate",
					fmt.Sprintf(`%s, error="insufficient_scope", scope=%q`, challenge, strings.Join(auth.RequiredScopes, " ")))
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(AddClaimsToContext(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
