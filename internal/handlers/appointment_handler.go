package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/internal/validation"
	"medicloud-backend/pkg/utils"
)

type AppointmentHandler struct {
	appointments *services.AppointmentService
}

func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// List GET /api/:tenant/appointments?date=2025-01-15&doctorId=&status=
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter models.AppointmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(validation.Error(err))
		return
	}

	appointments, err := h.appointments.List(c.Request.Context(), tenantID(c), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", appointments)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var input models.CreateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	appointment, err := h.appointments.Create(c.Request.Context(), tenantID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, "Appointment created successfully.", appointment)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	appointment, err := h.appointments.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", appointment)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var input models.UpdateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	appointment, err := h.appointments.Update(c.Request.Context(), tenantID(c), c.Param("id"), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "Appointment updated successfully.", appointment)
}

// Delete cancels the appointment by removing it.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.appointments.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "Appointment cancelled successfully.", nil)
}
