package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates signed tokens and coordinates their
// revocation. A token is valid until its expiry or until its jti is
// blacklisted, whichever comes first; neither state is reversible.
type TokenService struct {
	codec      *Codec
	blacklist  Blacklist
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration, refreshTTL time.Duration, blacklist Blacklist) *TokenService {
	return &TokenService{
		codec:      NewCodec(secret),
		blacklist:  blacklist,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue signs a fresh token for subject. A zero ttlOverride picks the
// token type's default lifetime; any non-zero override is honored as
// given, including negative ones, which produce an already-expired
// token. The jti is a random UUID, assigned per call with no shared
// state.
func (s *TokenService) Issue(subject string, tokenType TokenType, ttlOverride time.Duration) (string, *Claims, error) {
	ttl := ttlOverride
	if ttl == 0 {
		ttl = s.accessTTL
		if tokenType == TokenRefresh {
			ttl = s.refreshTTL
		}
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: tokenType,
	}

	token, err := s.codec.Sign(claims)
	if err != nil {
		return "", nil, err
	}
	return token, &claims, nil
}

// Decode validates tokenString end to end: signature, expiry, token type,
// then revocation. The local checks run first so obviously invalid tokens
// never reach the revocation store.
func (s *TokenService) Decode(ctx context.Context, tokenString string, expectedType TokenType) (*Claims, error) {
	claims, err := s.codec.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != expectedType {
		return nil, ErrInvalidCredentials
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed: an unreachable store means the token cannot be
		// confirmed safe.
		slog.Warn("revocation check failed, rejecting token", "jti", claims.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if revoked {
		return nil, ErrInvalidCredentials
	}

	return claims, nil
}

// Revoke blacklists the token's jti for its remaining natural lifetime.
// An already-expired token is left alone; it can never validate again.
func (s *TokenService) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	return s.blacklist.MarkRevoked(ctx, claims.ID, remaining)
}
