package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testClaims(subject string, tokenType TokenType, ttl time.Duration) Claims {
	now := time.Now().UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: tokenType,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret")

	token, err := codec.Sign(testClaims("u1", TokenAccess, time.Minute))
	require.NoError(t, err)

	claims, err := codec.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, TokenAccess, claims.Type)
	require.NotEmpty(t, claims.ID)
}

func TestCodecSignWithoutSecret(t *testing.T) {
	t.Parallel()

	codec := NewCodec("")

	_, err := codec.Sign(testClaims("u1", TokenAccess, time.Minute))
	require.ErrorIs(t, err, ErrTokenCreation)
}

func TestCodecParseRejections(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret")

	t.Run("foreign signature", func(t *testing.T) {
		other := NewCodec("other-secret")
		token, err := other.Sign(testClaims("u1", TokenAccess, time.Minute))
		require.NoError(t, err)

		_, err = codec.Parse(token)
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.NotErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := codec.Parse("not.a.token")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("expired token is distinguishable in logs but still a credentials error", func(t *testing.T) {
		token, err := codec.Sign(testClaims("u1", TokenAccess, -time.Minute))
		require.NoError(t, err)

		_, err = codec.Parse(token)
		require.ErrorIs(t, err, ErrTokenExpired)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := codec.Sign(testClaims("", TokenAccess, time.Minute))
		require.NoError(t, err)

		_, err = codec.Parse(token)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unexpected signing algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, testClaims("u1", TokenAccess, time.Minute)).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Parse(unsigned)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
