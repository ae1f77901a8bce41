package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/pkg/utils"
)

type PrescriptionHandler struct {
	prescriptions *services.PrescriptionService
}

func NewPrescriptionHandler(prescriptions *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions}
}

// List GET /api/:tenant/prescriptions?status=PENDING
func (h *PrescriptionHandler) List(c *gin.Context) {
	prescriptions, err := h.prescriptions.List(c.Request.Context(), tenantID(c), c.Query("status"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", prescriptions)
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var input models.CreatePrescriptionInput
	if !bindJSON(c, &input) {
		return
	}

	prescription, err := h.prescriptions.Create(c.Request.Context(), tenantID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, "Prescription created successfully.", prescription)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	prescription, err := h.prescriptions.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", prescription)
}

// UpdateStatus PATCH /api/:tenant/prescriptions/:id (PHARMACIST)
func (h *PrescriptionHandler) UpdateStatus(c *gin.Context) {
	var input models.UpdatePrescriptionStatusInput
	if !bindJSON(c, &input) {
		return
	}

	prescription, err := h.prescriptions.UpdateStatus(c.Request.Context(), tenantID(c), c.Param("id"), input.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "Prescription status updated successfully.", prescription)
}
