package dto

import (
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

// UserRes is the sanitized view of a user returned to clients.
// It deliberately has no field for the password hash.
type UserRes struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserResFromEntity maps a domain user to its response shape.
func UserResFromEntity(u *entity.User) UserRes {
	return UserRes{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		CreatedAt:   u.CreatedAt,
	}
}
