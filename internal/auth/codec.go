package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// Claims is the payload bound to every signed token. Subject carries the
// user id and ID the jti used as the revocation key.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"typ"`
}

// Codec signs and verifies compact HS256 tokens with a process-wide
// secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) Sign(claims Claims) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("%w: signing secret is not configured", ErrTokenCreation)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenCreation, err)
	}
	return signed, nil
}

// Parse verifies the signature and structure, then expiry. Signature and
// malformed-token failures surface as ErrInvalidCredentials; expiry as
// ErrTokenExpired, which still matches ErrInvalidCredentials.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidCredentials
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidCredentials
	}

	return claims, nil
}
