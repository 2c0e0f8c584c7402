package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-calc-api/internal/auth"
	"go-calc-api/internal/model"
	"go-calc-api/pkg/apierror"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
}

// AuthService drives the credential and token flows on top of the auth
// core: hashing, token issue/decode/revoke, identity resolution.
type AuthService struct {
	users    UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	resolver *auth.IdentityResolver
}

func NewAuthService(users UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		resolver: auth.NewIdentityResolver(users),
	}
}

// Tokens exposes the token service for the auth middleware.
func (s *AuthService) Tokens() *auth.TokenService {
	return s.tokens
}

// Resolver exposes the identity resolver for the auth middleware.
func (s *AuthService) Resolver() *auth.IdentityResolver {
	return s.resolver
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Password == "" || req.Email == "" {
		return model.AuthUser{}, apierror.BadRequest("username, email and password are required", "")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return model.AuthUser{}, apierror.BadRequest("invalid email address", "email")
	}
	if req.Password != req.ConfirmPassword {
		return model.AuthUser{}, apierror.BadRequest("passwords do not match", "confirm_password")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return user.AuthUser(), nil
}

// Login verifies the credential and issues a token pair. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return model.TokenPair{}, auth.ErrInvalidCredentials
	}

	return s.issuePair(user.AuthUser())
}

// Refresh rotates the presented refresh token: once decoded and its
// identity confirmed active, the old jti is revoked and a new pair
// issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.tokens.Decode(ctx, refreshToken, auth.TokenRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	identity, err := s.resolver.Resolve(ctx, claims)
	if err != nil {
		return model.TokenPair{}, err
	}
	if identity, err = auth.RequireActive(identity); err != nil {
		return model.TokenPair{}, err
	}

	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return model.TokenPair{}, err
	}

	return s.issuePair(identity)
}

// Logout revokes the access token presented with the request, plus the
// refresh token when the client supplies one. An unparseable refresh
// token is ignored; the session is gone either way.
func (s *AuthService) Logout(ctx context.Context, accessClaims *auth.Claims, refreshToken string) error {
	if err := s.tokens.Revoke(ctx, accessClaims); err != nil {
		return err
	}

	if refreshToken = strings.TrimSpace(refreshToken); refreshToken != "" {
		if claims, err := s.tokens.Decode(ctx, refreshToken, auth.TokenRefresh); err == nil {
			return s.tokens.Revoke(ctx, claims)
		}
	}

	return nil
}

func (s *AuthService) issuePair(identity model.AuthUser) (model.TokenPair, error) {
	accessToken, accessClaims, err := s.tokens.Issue(identity.ID, auth.TokenAccess, 0)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, _, err := s.tokens.Issue(identity.ID, auth.TokenRefresh, 0)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    accessClaims.ExpiresAt.Unix() - accessClaims.IssuedAt.Unix(),
		User:         identity,
	}, nil
}
