package auth

import "go-calc-api/internal/model"

// The guards below are pure gates over an already-resolved identity; all
// I/O happened during token validation and resolution.

// RequireResolved passes the identity through. Holding a resolved
// identity already implies the token checks succeeded upstream.
func RequireResolved(identity model.AuthUser) (model.AuthUser, error) {
	return identity, nil
}

// RequireActive denies deactivated accounts. Verification status is
// deliberately not consulted here; it is policy for higher layers.
func RequireActive(identity model.AuthUser) (model.AuthUser, error) {
	if !identity.IsActive {
		return model.AuthUser{}, ErrInactiveUser
	}
	return identity, nil
}
