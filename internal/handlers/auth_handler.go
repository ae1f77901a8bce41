package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/middleware"
	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/pkg/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, "User registered successfully.", profile)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	utils.APIResponse(c, http.StatusOK, "Login successful.", result)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		_ = c.Error(apperror.Unauthorized("Not authenticated."))
		return
	}

	profile, err := h.auth.Me(c.Request.Context(), identity.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	utils.APIResponse(c, http.StatusOK, "", profile)
}
