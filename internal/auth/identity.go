package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go-calc-api/internal/model"
)

// UserStore is the slice of the external user store the resolver needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
}

// IdentityResolver turns a validated token payload into a concrete user
// identity. Token payloads have been produced by several issuing code
// paths over time, so the resolver absorbs the legacy shapes here and
// hands a single normalized identity to everything downstream.
type IdentityResolver struct {
	users UserStore
}

func NewIdentityResolver(users UserStore) *IdentityResolver {
	return &IdentityResolver{users: users}
}

type payloadKind int

const (
	payloadClaims payloadKind = iota
	payloadSubjectOnly
	payloadBareID
	payloadUnrecognized
)

// classifyPayload tags the decoded-but-unnormalized payload so shape
// sniffing happens in exactly one place.
func classifyPayload(payload any) (payloadKind, string) {
	switch p := payload.(type) {
	case *Claims:
		if p != nil && p.Subject != "" {
			return payloadClaims, p.Subject
		}
	case Claims:
		if p.Subject != "" {
			return payloadClaims, p.Subject
		}
	case map[string]any:
		if sub, ok := p["sub"].(string); ok && sub != "" {
			return payloadSubjectOnly, sub
		}
	case uuid.UUID:
		if p != uuid.Nil {
			return payloadBareID, p.String()
		}
	case string:
		if id, err := uuid.Parse(p); err == nil {
			return payloadBareID, id.String()
		}
	}

	return payloadUnrecognized, ""
}

// Resolve maps payload to an identity. Canonical claims are looked up in
// the user store; a subject-only mapping or a bare id is trusted as far
// as a minimal placeholder goes, since the token signature was already
// verified upstream. Anything else fails with the undifferentiated
// credentials error.
func (r *IdentityResolver) Resolve(ctx context.Context, payload any) (model.AuthUser, error) {
	kind, subject := classifyPayload(payload)

	switch kind {
	case payloadClaims:
		user, err := r.users.FindByID(ctx, subject)
		if errors.Is(err, model.ErrUserNotFound) {
			return model.AuthUser{}, ErrInvalidCredentials
		}
		if err != nil {
			return model.AuthUser{}, err
		}
		return user.AuthUser(), nil

	case payloadSubjectOnly, payloadBareID:
		return placeholderIdentity(subject), nil

	default:
		return model.AuthUser{}, ErrInvalidCredentials
	}
}

func placeholderIdentity(subject string) model.AuthUser {
	return model.AuthUser{
		ID:       subject,
		Username: "unknown",
		IsActive: true,
	}
}
