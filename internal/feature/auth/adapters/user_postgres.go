// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation is the Postgres error code for a unique constraint violation.
const pgUniqueViolation = "23505"

// userPostgres implements the user repositories on gorm/Postgres.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres satisfies the usecase interface.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a user repository on the given gorm connection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts a user.
// A duplicate email maps to usecase.ErrEmailAlreadyExists.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address.
// Returns usecase.ErrUserNotFound when no row matches.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// Returns usecase.ErrUserNotFound when no row matches.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update persists the mutable profile fields of an existing user.
// Returns usecase.ErrUserNotFound when the row no longer exists.
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"display_name": u.DisplayName,
			"bio":          u.Bio,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete removes a user row.
// Returns usecase.ErrUserNotFound when the row no longer exists.
func (r *userPostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation detects a duplicate-key failure from either the gorm
// error translation layer or the raw Postgres error code.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
