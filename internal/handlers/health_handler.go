package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medicloud-backend/internal/database"
	"medicloud-backend/pkg/utils"
)

type HealthHandler struct {
	db      *gorm.DB
	version string
}

func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Index GET /
func (h *HealthHandler) Index(c *gin.Context) {
	utils.APIResponse(c, http.StatusOK, "MediCloud API", gin.H{"version": h.version})
}

// Health GET /api/health pings the database.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		utils.APIError(c, http.StatusServiceUnavailable, "Database unavailable.", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
