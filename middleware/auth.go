package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gymAPI/internal/auth"
	"gymAPI/internal/types/account"
	"gymAPI/services"
)

type contextKey string

const claimsKey contextKey = "claims"

// AccountLoader resolves the account behind a token so that deactivated
// users are rejected even while their token is still valid.
type AccountLoader interface {
	GetUser(ctx context.Context, id string) (account.Account, error)
}

type Authenticator struct {
	tokens   *auth.TokenIssuer
	accounts AccountLoader
	logger   *zap.Logger
}

func NewAuthenticator(tokens *auth.TokenIssuer, accounts AccountLoader, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, accounts: accounts, logger: logger}
}

// RequireAuth validates the bearer token and stores its claims in the
// request context.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <token>'")
			return
		}

		claims, err := a.tokens.Parse(token)
		if err != nil {
			a.logger.Debug("token verification failed", zap.Error(err))
			respondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		acc, err := a.accounts.GetUser(r.Context(), claims.UserID)
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			a.logger.Error("failed to load authenticated user", zap.String("user_id", claims.UserID), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to authenticate")
			return
		}
		if !acc.IsActive {
			respondWithError(w, http.StatusUnauthorized, "Account is deactivated")
			return
		}
		claims.Role = acc.Role

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// OptionalAuth attaches claims when a valid token is present and lets the
// request through either way.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := a.tokens.Parse(token); err == nil {
				if acc, err := a.accounts.GetUser(r.Context(), claims.UserID); err == nil && acc.IsActive {
					claims.Role = acc.Role
					r = r.WithContext(WithClaims(r.Context(), claims))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits only the listed roles. It must run after RequireAuth.
func RequireRole(roles ...account.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondWithError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims of the authenticated caller.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": message})
}
