package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-calc-api/internal/auth"
	"go-calc-api/internal/model"
)

type tokenDecoder interface {
	Decode(ctx context.Context, tokenString string, expectedType auth.TokenType) (*auth.Claims, error)
}

type identityResolver interface {
	Resolve(ctx context.Context, payload any) (model.AuthUser, error)
}

type contextKey string

const (
	claimsContextKey   contextKey = "auth_claims"
	identityContextKey contextKey = "auth_identity"
)

// AuthMiddleware turns a bearer token into an authorized identity:
// decode, resolve, then the guard gates. Failures are reported with one
// undifferentiated message so callers cannot probe why a token failed.
type AuthMiddleware struct {
	tokens   tokenDecoder
	resolver identityResolver
}

func NewAuthMiddleware(tokens tokenDecoder, resolver identityResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver}
}

// RequireAuth validates the access token and stores claims and resolved
// identity on the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		token := strings.TrimSpace(header[len("bearer "):])
		claims, err := m.tokens.Decode(r.Context(), token, auth.TokenAccess)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		identity, err := m.resolver.Resolve(r.Context(), claims)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}
		identity, err = auth.RequireResolved(identity)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		ctx = context.WithValue(ctx, identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireActive rejects deactivated accounts. Must run after RequireAuth.
func (m *AuthMiddleware) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		if _, err := auth.RequireActive(identity); err != nil {
			writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Inactive user")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

func IdentityFromContext(ctx context.Context) (model.AuthUser, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.AuthUser)
	return identity, ok
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
