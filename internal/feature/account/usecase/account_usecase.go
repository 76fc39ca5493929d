// Package usecase implements the business logic for the account feature.
package usecase

import (
	"context"

	"account_backend/internal/feature/auth/domain/entity"
)

// UserRepository is the slice of the user store this feature consumes.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// Update persists the mutable profile fields of the user.
	Update(ctx context.Context, user *entity.User) error
	// Delete removes the user row.
	Delete(ctx context.Context, id uint) error
}

// SessionManager is the slice of the session store this feature consumes.
type SessionManager interface {
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error)
	RevokeAllByUserID(ctx context.Context, userID uint) error
}

// ProfileUpdate carries the optional profile mutations of an update action.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
}

// AccountUsecase implements profile reads/updates and account deletion for
// the authenticated user.
type AccountUsecase struct {
	users    UserRepository
	sessions SessionManager
}

// NewAccountUsecase wires the account business logic.
func NewAccountUsecase(users UserRepository, sessions SessionManager) *AccountUsecase {
	return &AccountUsecase{users: users, sessions: sessions}
}

// Get returns the user behind the authenticated ID.
func (u *AccountUsecase) Get(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of update and returns the
// resulting user.
func (u *AccountUsecase) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. All sessions are revoked first so no live
// refresh token survives the row.
func (u *AccountUsecase) Delete(ctx context.Context, userID uint) error {
	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	return u.users.Delete(ctx, userID)
}

// ListSessions returns the user's active sessions.
func (u *AccountUsecase) ListSessions(ctx context.Context, userID uint) ([]*entity.Session, error) {
	return u.sessions.FindByUserID(ctx, userID)
}

// RevokeSessions revokes every active session of the user ("log out everywhere").
func (u *AccountUsecase) RevokeSessions(ctx context.Context, userID uint) error {
	return u.sessions.RevokeAllByUserID(ctx, userID)
}
