package service

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

// listableColumns are the entity columns a caller may order results by.
// Anything else in an orderBy parameter is silently dropped.
var listableColumns = map[string]struct{}{
	"id":         {},
	"email":      {},
	"role":       {},
	"created_at": {},
	"updated_at": {},
}

// UserService implements user CRUD and the field-update pipeline.
type UserService struct {
	repo       ports.UserRepository
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(repo ports.UserRepository, bcryptCost int, logger zerolog.Logger) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// List returns users matching q. Ordering by an unknown column is treated as
// no ordering, mirroring the lenient query-parameter handling of the API.
func (s *UserService) List(ctx context.Context, q ports.ListQuery) ([]domain.User, error) {
	if _, ok := listableColumns[q.OrderBy]; !ok {
		q.OrderBy = ""
	}
	return s.repo.List(ctx, q)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByEmail(ctx, email)
}

// Create validates and persists a new user, hashing the password at creation
// time. A duplicate email surfaces as domain.ErrEmailTaken.
func (s *UserService) Create(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	user := &domain.User{Email: email, Password: password, Role: role}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// Update applies a partial update payload to user through the ordered gates:
//
//  1. shape: every key must name a field that exists on the entity
//  2. allow-list: every key must be in the operation's mutable-field set
//  3. model validation: invariants re-run on a working copy
//  4. persistence: a single save; duplicate email → domain.ErrEmailTaken
//
// The working copy makes the update all-or-nothing: the stored record and
// the caller's entity are untouched unless every gate passes. The password
// is rehashed if and only if the payload carried a password key.
func (s *UserService) Update(ctx context.Context, user *domain.User, updates map[string]any, allowed []string) (*domain.User, error) {
	for key := range updates {
		if !domain.IsUserField(key) {
			return nil, domain.ErrInvalidField
		}
	}

	for key := range updates {
		if !slices.Contains(allowed, key) {
			return nil, domain.ErrFieldNotUpdatable
		}
	}

	working := *user
	passwordChanged := false
	for key, value := range updates {
		str, ok := value.(string)
		if !ok {
			return nil, domain.ValidationErrors{{Field: key, Message: "must be a string"}}
		}
		switch key {
		case "email":
			working.Email = str
		case "password":
			working.Password = str
			passwordChanged = true
		case "role":
			working.Role = domain.Role(str)
		}
	}

	if err := working.Validate(); err != nil {
		return nil, err
	}

	if passwordChanged {
		hash, err := bcrypt.GenerateFromPassword([]byte(working.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		working.Password = string(hash)
	}

	if err := s.repo.Save(ctx, &working); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", working.ID).Msg("user updated")
	return &working, nil
}

// ChangePassword verifies oldPassword against the stored hash before
// accepting newPassword. Deliberately separate from Update: the generic
// profile allow-list excludes password, so a casual profile update can never
// change one without proving knowledge of the current value.
func (s *UserService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	working := *user
	working.Password = newPassword
	if err := working.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	working.Password = string(hash)

	if err := s.repo.Save(ctx, &working); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *UserService) Delete(ctx context.Context, user *domain.User) error {
	if err := s.repo.Delete(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Uint("user_id", user.ID).Msg("user deleted")
	return nil
}

// DeleteAllNonAdmin removes every user whose role is not ADMIN and returns
// the number of deleted records.
func (s *UserService) DeleteAllNonAdmin(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteByRoleNot(ctx, domain.RoleAdmin)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("deleted", n).Msg("non-admin users deleted")
	return n, nil
}
