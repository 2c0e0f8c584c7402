package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(4)

	t.Run("same password hashes to different records", func(t *testing.T) {
		first, err := hasher.Hash("SecurePass123!")
		require.NoError(t, err)
		second, err := hasher.Hash("SecurePass123!")
		require.NoError(t, err)

		require.NotEqual(t, first, second)
	})

	t.Run("verify accepts the originating password only", func(t *testing.T) {
		record, err := hasher.Hash("SecurePass123!")
		require.NoError(t, err)

		require.True(t, hasher.Verify("SecurePass123!", record))
		require.False(t, hasher.Verify("WrongPass123!", record))
	})

	t.Run("verify is false for corrupt records", func(t *testing.T) {
		require.False(t, hasher.Verify("SecurePass123!", "not-a-bcrypt-record"))
		require.False(t, hasher.Verify("SecurePass123!", ""))
	})

	t.Run("out of range cost falls back to the bcrypt default", func(t *testing.T) {
		h := NewPasswordHasher(99)
		record, err := h.Hash("SecurePass123!")
		require.NoError(t, err)
		require.True(t, h.Verify("SecurePass123!", record))
	})
}
