package http

import (
	"context"
	"net/http"
	"strings"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "member_claims"

// AuthMiddleware validates bearer tokens and attaches the member claims to
// the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid access token.
func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		claims, err := a.tokens.ValidateToken(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, http.StatusUnauthorized, "access token required")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only the listed roles through. It assumes Authenticate
// already ran; a request without claims is rejected.
func (a *AuthMiddleware) RequireRole(roles ...domain.MemberRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if claims.Role == string(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.Warn("Role check failed", "member_id", claims.MemberID, "role", claims.Role, "path", r.URL.Path)
			writeError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// ClaimsFromContext returns the authenticated member claims, or nil when the
// request did not pass through Authenticate.
func ClaimsFromContext(ctx context.Context) *security.MemberClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.MemberClaims)
	return claims
}

// RequestLogger logs each request at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
