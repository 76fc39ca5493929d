package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"account_backend/internal/feature/auth/domain/entity"
)

// dummyHash is a bcrypt hash compared against when the user does not exist,
// so login latency does not reveal whether an email is registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// AuthUsecase implements signup, login and session lifecycle.
type AuthUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator

	accessTTL   time.Duration
	sessionTTL  time.Duration
	maxSessions int
}

// NewAuthUsecase wires the auth business logic.
// maxSessions caps concurrent sessions per user; the oldest is evicted
// when the cap would be exceeded.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator,
	accessTTL, sessionTTL time.Duration, maxSessions int) *AuthUsecase {
	return &AuthUsecase{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		accessTTL:   accessTTL,
		sessionTTL:  sessionTTL,
		maxSessions: maxSessions,
	}
}

// Signup registers a new user with a hashed password and returns it.
// Duplicate emails surface as ErrEmailAlreadyExists.
func (u *AuthUsecase) Signup(ctx context.Context, email, password, displayName string) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  displayName,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and opens a session.
// A bcrypt comparison runs even when the user does not exist so the
// response time does not leak account existence.
func (u *AuthUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*TokenPair, error) {
	user, findErr := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if findErr == nil {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if findErr != nil || compareErr != nil {
		if findErr != nil && !errors.Is(findErr, ErrUserNotFound) {
			// Provider failure, not a wrong password.
			return nil, findErr
		}
		return nil, ErrInvalidCredentials
	}

	return u.openSession(ctx, user, userAgent, ipAddress)
}

// Refresh rotates a refresh token: the presented session is revoked and a
// new session plus access token are issued.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}
	return u.openSession(ctx, user, userAgent, ipAddress)
}

// Logout revokes the session identified by the refresh token.
// Revoking an unknown token is not an error so logout stays idempotent.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// openSession enforces the per-user session cap, persists a new session and
// issues the token pair.
func (u *AuthUsecase) openSession(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*TokenPair, error) {
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(u.maxSessions) {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	refreshToken, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refreshToken,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.accessTTL.Seconds()),
	}, nil
}

// newSessionID generates a 64-character hex refresh token.
func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
