package ports

import (
	"context"

	"github.com/userforge/user-api/internal/core/domain"
)

// ListQuery captures the supported filters for listing users. Zero values
// mean "not set"; unrecognised inputs are dropped before reaching here.
type ListQuery struct {
	Role    *domain.Role
	OrderBy string // entity column name, empty means storage order
	Desc    bool
	Skip    int
	Take    int
}

// UserRepository defines the persistence operations for user records.
// Implementations must enforce email uniqueness and surface violations as
// domain.ErrEmailTaken without partial mutation.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, q ListQuery) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, user *domain.User) error
	DeleteByRoleNot(ctx context.Context, role domain.Role) (int64, error)
}
