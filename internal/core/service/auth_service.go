package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

// AuthService implements credential and bearer-token authentication.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies an email/password pair and returns a signed token. Unknown
// email and wrong password resolve to the same error so the response does
// not confirm whether an email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

// Authenticate verifies a bearer token, loads the user named by its subject,
// and issues a fresh token of the same claim shape with renewed expiry.
// Every authenticated call extends the session this way.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, "", domain.ErrUnauthenticated
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, "", domain.ErrUnauthenticated
	}

	// The subject may have been deleted since the token was issued; that is
	// an authentication failure, not a 404.
	user, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		return nil, "", domain.ErrUnauthenticated
	}

	fresh, err := s.IssueToken(user)
	if err != nil {
		return nil, "", domain.ErrUnauthenticated
	}

	return user, fresh, nil
}

// IssueToken signs a token carrying the user's id and email.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
