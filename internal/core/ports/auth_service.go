package ports

import (
	"context"

	"github.com/userforge/user-api/internal/core/domain"
)

// AuthService authenticates credentials and bearer tokens.
type AuthService interface {
	// Login verifies an email/password pair and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate verifies a bearer token, loads the acting user, and
	// returns a freshly issued token with renewed expiry. Every failure
	// mode (bad signature, expiry, subject since deleted) resolves to
	// domain.ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*domain.User, string, error)
}
