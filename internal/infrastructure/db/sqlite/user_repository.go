package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

// GormUserRepository implements ports.UserRepository on gorm/SQLite.
// The unique index on email is the sole serialization point for concurrent
// email changes: the second commit loses and surfaces domain.ErrEmailTaken.
type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context, q ports.ListQuery) ([]domain.User, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{})

	if q.Role != nil {
		tx = tx.Where("role = ?", *q.Role)
	}
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.OrderBy},
			Desc:   q.Desc,
		})
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Take > 0 {
		tx = tx.Limit(q.Take)
	}

	var users []domain.User
	if err := tx.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) Save(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Delete(user)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *GormUserRepository) DeleteByRoleNot(ctx context.Context, role domain.Role) (int64, error) {
	res := r.db.WithContext(ctx).Where("role <> ?", role).Delete(&domain.User{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete users by role: %w", res.Error)
	}
	return res.RowsAffected, nil
}
