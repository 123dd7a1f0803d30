package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/userforge/user-api/internal/core/domain"
)

// Config captures the settings for opening the SQLite database.
type Config struct {
	Path string
}

// Connect opens the database, runs schema migration, and returns the handle.
// TranslateError makes gorm surface uniqueness violations as
// gorm.ErrDuplicatedKey, which the repository maps to domain errors.
func Connect(cfg Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}

	return db, nil
}

// SeedAdmin creates the initial administrator account if no user with the
// given email exists yet. Safe to run on every startup.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string, bcryptCost int) error {
	var existing domain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}

	admin := domain.User{Email: email, Password: string(hash), Role: domain.RoleAdmin}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin create: %w", err)
	}

	return nil
}
