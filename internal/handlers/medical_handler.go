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

// RecordHandler serves SOAP medical records.
type RecordHandler struct {
	records *services.RecordService
}

func NewRecordHandler(records *services.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// Create POST /api/:tenant/records (DOCTOR). The author is always the caller.
func (h *RecordHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		_ = c.Error(apperror.Unauthorized("Not authenticated."))
		return
	}

	var input models.CreateRecordInput
	if !bindJSON(c, &input) {
		return
	}

	record, err := h.records.Create(c.Request.Context(), tenantID(c), identity.ID, input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, "Medical record created successfully.", record)
}

func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.records.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", record)
}
