package ports

import (
	"context"

	"github.com/userforge/user-api/internal/core/domain"
)

// UserService implements user CRUD and the field-update pipeline.
type UserService interface {
	List(ctx context.Context, q ListQuery) ([]domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	// Update applies a partial update payload to user through the ordered
	// validation gates (shape, allow-list, model validation, persistence).
	// The stored record is unchanged unless every gate passes.
	Update(ctx context.Context, user *domain.User, updates map[string]any, allowed []string) (*domain.User, error)
	// ChangePassword verifies oldPassword against the stored hash before
	// accepting newPassword. It never goes through Update's allow-list.
	ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error
	Delete(ctx context.Context, user *domain.User) error
	DeleteAllNonAdmin(ctx context.Context) (int64, error)
}
