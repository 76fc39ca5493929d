package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

func marshalSession(t *testing.T, s *entity.Session) string {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

func TestNewSessionRedis_DefaultPrefix(t *testing.T) {
	client, _ := redismock.NewClientMock()

	repo := NewSessionRedis(client, "")
	assert.Equal(t, "session", repo.prefix)

	repo = NewSessionRedis(client, "custom")
	assert.Equal(t, "custom", repo.prefix)
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Run("existing session", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewSessionRedis(client, "session")

		now := time.Now().Truncate(time.Second)
		stored := &entity.Session{
			ID:        "abc",
			UserID:    1,
			UserAgent: "test-agent",
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		mock.ExpectGet("session:abc").SetVal(marshalSession(t, stored))

		found, err := repo.FindByID(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, uint(1), found.UserID)
		assert.Equal(t, "test-agent", found.UserAgent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing session", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewSessionRedis(client, "session")

		mock.ExpectGet("session:missing").RedisNil()

		_, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt payload", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewSessionRedis(client, "session")

		mock.ExpectGet("session:bad").SetVal("{not json")

		_, err := repo.FindByID(context.Background(), "bad")
		assert.Error(t, err)
	})
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	client, _ := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	expired := &entity.Session{
		ID:        "expired",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	err := repo.Create(context.Background(), expired)
	assert.Error(t, err, "an already expired session must not be stored")
}

func TestSessionRedis_Revoke_NotFound(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	mock.ExpectGet("session:missing").RedisNil()

	err := repo.Revoke(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	now := time.Now().Truncate(time.Second)
	active := &entity.Session{ID: "a", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	revoked := &entity.Session{ID: "b", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour), RevokedAt: &now}

	mock.ExpectSMembers("session:user:7").SetVal([]string{"a", "b"})
	mock.ExpectGet("session:a").SetVal(marshalSession(t, active))
	mock.ExpectGet("session:b").SetVal(marshalSession(t, revoked))

	count, err := repo.CountByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "revoked sessions must not count as active")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_DeleteExpired_NoOp(t *testing.T) {
	client, _ := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
