// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/validation"
)

// AuthUsecase defines the auth operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns it.
	Signup(ctx context.Context, email, password, displayName string) (*entity.User, error)
	// Login authenticates a user and returns a token pair on success.
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
	// Refresh rotates a refresh token and returns a fresh token pair.
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
	// Logout revokes the session for the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles the HTTP requests for signup, login and sessions.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// bindJSON binds the request body into req. On failure it writes the
// field-level error map (or a generic message for malformed JSON) and
// reports false. The DAL is never reached for invalid input.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Errors: fields})
	} else {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
	}
	return false
}

// Signup handles the user registration endpoint.
// - 400 with a field-error map on invalid input
// - 409 when the email is already registered
// - 500 on provider failure
// - 201 with the sanitized user on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already exists"})
			return
		}
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "something went wrong"})
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.UserResFromEntity(user))
}

// Login handles the user login endpoint.
// - 400 with a field-error map on invalid input
// - 401 on bad credentials (the real reason is never exposed)
// - 500 on provider failure
// - 200 with the token pair on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "something went wrong"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Refresh handles refresh-token rotation.
// Any session defect (unknown, revoked, expired) is a 401; the session
// repository is the only authority consulted.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired),
			errors.Is(err, usecase.ErrUserNotFound):
			slog.Warn("refresh rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid session"})
		default:
			slog.Error("refresh failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Logout revokes the presented refresh token. Revoking an already dead
// session still returns 200 so clients can always clear local state.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
