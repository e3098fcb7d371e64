package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madprep/madprep-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type upsertUserRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type userResponse struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateOrUpdate registers or refreshes the profile the identity provider
// handed to the frontend.
func (uh *UserHandler) CreateOrUpdate(c *gin.Context) {
	var req upsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := uh.userService.CreateOrUpdate(c.Request.Context(), req.UserID, req.UserName, req.Email)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "user_upsert_failed", err)
		return
	}

	RespondOK(c, userResponse{
		UserID:    user.UserID,
		UserName:  user.UserName,
		Email:     user.UserEmail,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (uh *UserHandler) Get(c *gin.Context) {
	user, err := uh.userService.Get(c.Request.Context(), c.Param("user_id"))
	if errors.Is(err, services.ErrUserNotFound) {
		RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "user_fetch_failed", err)
		return
	}

	RespondOK(c, userResponse{
		UserID:    user.UserID,
		UserName:  user.UserName,
		Email:     user.UserEmail,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
