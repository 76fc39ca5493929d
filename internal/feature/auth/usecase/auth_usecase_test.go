package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"account_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a function-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockSessionRepository is a function-field mock of SessionRepository with
// call counters for the cap-eviction assertions.
type mockSessionRepository struct {
	CreateFunc       func(ctx context.Context, session *entity.Session) error
	FindByIDFunc     func(ctx context.Context, id string) (*entity.Session, error)
	RevokeFunc       func(ctx context.Context, id string) error
	CountFunc        func(ctx context.Context, userID uint) (int64, error)
	DeleteOldestFunc func(ctx context.Context, userID uint) error

	createCalls       int
	revokeCalls       int
	deleteOldestCalls int
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	return nil, nil
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	m.revokeCalls++
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	m.deleteOldestCalls++
	if m.DeleteOldestFunc != nil {
		return m.DeleteOldestFunc(ctx, userID)
	}
	return nil
}

// mockTokenGenerator is a function-field mock of TokenGenerator.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "test-access-token", nil
}

func newTestUsecase(users *mockUserRepository, sessions *mockSessionRepository) *AuthUsecase {
	return NewAuthUsecase(users, sessions, &mockTokenGenerator{}, 15*time.Minute, 24*time.Hour, 5)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("hashes the password before persisting", func(t *testing.T) {
		var created *entity.User
		users := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				user.ID = 1
				return nil
			},
		}
		uc := newTestUsecase(users, &mockSessionRepository{})

		user, err := uc.Signup(context.Background(), "new@example.com", "password123", "New User")
		require.NoError(t, err)

		assert.Equal(t, uint(1), user.ID)
		require.NotNil(t, created)
		assert.NotEqual(t, "password123", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		users := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc := newTestUsecase(users, &mockSessionRepository{})

		_, err := uc.Signup(context.Background(), "taken@example.com", "password123", "Dup")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"

	t.Run("valid credentials open a session", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, PasswordHash: hashPassword(t, password)}, nil
			},
		}
		sessions := &mockSessionRepository{}
		uc := newTestUsecase(users, sessions)

		pair, err := uc.Login(context.Background(), "user@example.com", password, "test-agent", "127.0.0.1")
		require.NoError(t, err)

		assert.Equal(t, "test-access-token", pair.AccessToken)
		assert.Len(t, pair.RefreshToken, 64)
		assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)
		assert.Equal(t, 1, sessions.createCalls)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, PasswordHash: hashPassword(t, password)}, nil
			},
		}
		sessions := &mockSessionRepository{}
		uc := newTestUsecase(users, sessions)

		_, err := uc.Login(context.Background(), "user@example.com", "wrong-password", "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Zero(t, sessions.createCalls)
	})

	t.Run("unknown email yields the same error as a wrong password", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockSessionRepository{})

		_, err := uc.Login(context.Background(), "nobody@example.com", password, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("provider failure is not masked as bad credentials", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, dbErr
			},
		}
		uc := newTestUsecase(users, &mockSessionRepository{})

		_, err := uc.Login(context.Background(), "user@example.com", password, "", "")
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("session cap evicts the oldest session", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, PasswordHash: hashPassword(t, password)}, nil
			},
		}
		sessions := &mockSessionRepository{
			CountFunc: func(ctx context.Context, userID uint) (int64, error) { return 5, nil },
		}
		uc := newTestUsecase(users, sessions)

		_, err := uc.Login(context.Background(), "user@example.com", password, "", "")
		require.NoError(t, err)
		assert.Equal(t, 1, sessions.deleteOldestCalls)
		assert.Equal(t, 1, sessions.createCalls)
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	activeSession := func(id string) *entity.Session {
		now := time.Now()
		return &entity.Session{ID: id, UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	}

	t.Run("rotates the refresh token", func(t *testing.T) {
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Email: "user@example.com"}, nil
			},
		}
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				return activeSession(id), nil
			},
		}
		uc := newTestUsecase(users, sessions)

		pair, err := uc.Refresh(context.Background(), "old-token", "test-agent", "127.0.0.1")
		require.NoError(t, err)

		assert.NotEqual(t, "old-token", pair.RefreshToken)
		assert.Equal(t, 1, sessions.revokeCalls, "old session must be revoked")
		assert.Equal(t, 1, sessions.createCalls, "new session must be created")
	})

	t.Run("unknown token", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockSessionRepository{})

		_, err := uc.Refresh(context.Background(), "missing", "", "")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("revoked session", func(t *testing.T) {
		now := time.Now()
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := activeSession(id)
				s.RevokedAt = &now
				return s, nil
			},
		}
		uc := newTestUsecase(&mockUserRepository{}, sessions)

		_, err := uc.Refresh(context.Background(), "revoked", "", "")
		assert.ErrorIs(t, err, ErrSessionRevoked)
	})

	t.Run("expired session", func(t *testing.T) {
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := activeSession(id)
				s.ExpiresAt = time.Now().Add(-time.Minute)
				return s, nil
			},
		}
		uc := newTestUsecase(&mockUserRepository{}, sessions)

		_, err := uc.Refresh(context.Background(), "expired", "", "")
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	t.Run("revokes the session", func(t *testing.T) {
		sessions := &mockSessionRepository{}
		uc := newTestUsecase(&mockUserRepository{}, sessions)

		err := uc.Logout(context.Background(), "some-token")
		require.NoError(t, err)
		assert.Equal(t, 1, sessions.revokeCalls)
	})

	t.Run("unknown token is not an error", func(t *testing.T) {
		sessions := &mockSessionRepository{
			RevokeFunc: func(ctx context.Context, id string) error { return ErrSessionNotFound },
		}
		uc := newTestUsecase(&mockUserRepository{}, sessions)

		assert.NoError(t, uc.Logout(context.Background(), "missing"))
	})
}
