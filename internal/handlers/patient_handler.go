package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/pkg/utils"
)

type PatientHandler struct {
	patients *services.PatientService
	records  *services.RecordService
}

func NewPatientHandler(patients *services.PatientService, records *services.RecordService) *PatientHandler {
	return &PatientHandler{patients: patients, records: records}
}

// List GET /api/:tenant/patients?search=
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patients.List(c.Request.Context(), tenantID(c), c.Query("search"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var input models.CreatePatientInput
	if !bindJSON(c, &input) {
		return
	}

	patient, err := h.patients.Create(c.Request.Context(), tenantID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, "Patient registered successfully.", patient)
}

func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.patients.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var input models.UpdatePatientInput
	if !bindJSON(c, &input) {
		return
	}

	patient, err := h.patients.Update(c.Request.Context(), tenantID(c), c.Param("id"), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "Patient updated successfully.", patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.patients.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "Patient deleted successfully.", nil)
}

// Records GET /api/:tenant/patients/:id/records, newest visit first.
func (h *PatientHandler) Records(c *gin.Context) {
	records, err := h.records.ListByPatient(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", records)
}
