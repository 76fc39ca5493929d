package dto

import (
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

// SessionRes is the sanitized view of an active session.
// The refresh token value itself is never exposed.
type SessionRes struct {
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResFromEntity maps a session entity to its response shape.
func SessionResFromEntity(s *entity.Session) SessionRes {
	return SessionRes{
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// SessionListRes wraps the session collection for GET /me/sessions.
type SessionListRes struct {
	Sessions []SessionRes `json:"sessions"`
}
