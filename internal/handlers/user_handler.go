package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/pkg/utils"
)

// UserHandler serves the clinic's staff list. Admin only.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List GET /api/:tenant/users?role=DOCTOR
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), tenantID(c), c.Query("role"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var input models.CreateStaffInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.users.CreateStaff(c.Request.Context(), tenantID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, "Staff created successfully.", user)
}
