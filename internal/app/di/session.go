// Package di selects concrete implementations at startup.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"account_backend/internal/feature/auth/adapters"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to Postgres.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return adapters.NewSessionPostgres(db)
}
