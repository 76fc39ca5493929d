// Package handler provides the HTTP handlers for the account feature.
// All routes here sit behind the auth middleware; the user ID comes from
// the request context, never from the request body.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	accountdto "account_backend/internal/feature/account/transport/http/dto"
	accountusecase "account_backend/internal/feature/account/usecase"
	"account_backend/internal/feature/auth/domain/entity"
	authdto "account_backend/internal/feature/auth/transport/http/dto"
	authusecase "account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/middleware"
	"account_backend/internal/platform/validation"
)

// AccountUsecase defines the account operations consumed by this handler.
type AccountUsecase interface {
	Get(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, update accountusecase.ProfileUpdate) (*entity.User, error)
	Delete(ctx context.Context, userID uint) error
	ListSessions(ctx context.Context, userID uint) ([]*entity.Session, error)
	RevokeSessions(ctx context.Context, userID uint) error
}

// AccountHandler handles the HTTP requests for the authenticated account.
type AccountHandler struct {
	account AccountUsecase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(account AccountUsecase) *AccountHandler {
	return &AccountHandler{account: account}
}

// currentUserID extracts the guarded user ID. A missing ID means the route
// was mounted without the auth middleware; fail closed with 401.
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
	}
	return id, ok
}

// GetMe returns the authenticated user's profile.
func (h *AccountHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.account.Get(c.Request.Context(), userID)
	if err != nil {
		h.renderUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, authdto.UserResFromEntity(user))
}

// UpdateMe applies a partial profile update.
// - 400 with a field-error map on invalid input
// - 200 with the updated profile on success
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req accountdto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", userID)
		if fields := validation.FieldErrors(err); len(fields) > 0 {
			c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Errors: fields})
		} else {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		}
		return
	}

	user, err := h.account.UpdateProfile(c.Request.Context(), userID, accountusecase.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		h.renderUserError(c, err)
		return
	}

	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, authdto.UserResFromEntity(user))
}

// DeleteMe deletes the authenticated account and all its sessions.
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.account.Delete(c.Request.Context(), userID); err != nil {
		h.renderUserError(c, err)
		return
	}

	slog.Info("account deleted", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "account deleted"})
}

// ListSessions returns the authenticated user's active sessions.
func (h *AccountHandler) ListSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessions, err := h.account.ListSessions(c.Request.Context(), userID)
	if err != nil {
		h.renderUserError(c, err)
		return
	}

	res := accountdto.SessionListRes{Sessions: make([]accountdto.SessionRes, 0, len(sessions))}
	for _, s := range sessions {
		res.Sessions = append(res.Sessions, accountdto.SessionResFromEntity(s))
	}
	c.JSON(http.StatusOK, res)
}

// RevokeSessions logs the user out everywhere.
func (h *AccountHandler) RevokeSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.account.RevokeSessions(c.Request.Context(), userID); err != nil {
		h.renderUserError(c, err)
		return
	}

	slog.Info("all sessions revoked", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "sessions revoked"})
}

// renderUserError maps domain errors to responses; anything unexpected is
// logged and hidden behind a generic message.
func (h *AccountHandler) renderUserError(c *gin.Context, err error) {
	if errors.Is(err, authusecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "account not found"})
		return
	}
	slog.Error("account operation failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "something went wrong"})
}
