package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/auth/domain/entity"
)

// TokenValidator verifies an access token and returns its identity claim.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// UserFinder looks up users by the email identity claim.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// IdentityResolver turns a bearer token into the authenticated user.
type IdentityResolver struct {
	tokens TokenValidator
	users  UserFinder
}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver(tokens TokenValidator, users UserFinder) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// ResolveUser validates the token and loads the user named by its email claim.
// An invalid token and an unknown user both yield ErrUnauthenticated.
// Store failures are wrapped and returned as-is so they surface as internal errors.
func (r *IdentityResolver) ResolveUser(ctx context.Context, token string) (*entity.User, error) {
	email, err := r.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := r.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user.Public(), nil
}
