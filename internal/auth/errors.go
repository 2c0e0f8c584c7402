package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers every failure to establish a trusted
	// identity: bad signature, malformed payload, wrong token type,
	// expiry, revocation, unresolvable subject. Callers must not be able
	// to tell these apart from the outside.
	ErrInvalidCredentials = errors.New("could not validate credentials")

	// ErrTokenExpired wraps ErrInvalidCredentials so the outward contract
	// stays undifferentiated while logs can still tell expiry apart.
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrInvalidCredentials)

	// ErrTokenCreation means the signing infrastructure failed. Issuance
	// is blocked entirely; this is never downgraded to a credentials
	// error.
	ErrTokenCreation = errors.New("could not create token")

	// ErrInactiveUser means the identity was established but policy
	// denies access.
	ErrInactiveUser = errors.New("inactive user")
)
