package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/pkg/utils"
)

type InventoryHandler struct {
	inventory *services.InventoryService
}

func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) List(c *gin.Context) {
	drugs, err := h.inventory.List(c.Request.Context(), tenantID(c), c.Query("search"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "", drugs)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var input models.CreateDrugInput
	if !bindJSON(c, &input) {
		return
	}

	drug, err := h.inventory.Create(c.Request.Context(), tenantID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, "Drug added successfully.", drug)
}

// UpdateStock PATCH /api/:tenant/inventory/:id sets the absolute stock level.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var input models.UpdateDrugStockInput
	if !bindJSON(c, &input) {
		return
	}

	drug, err := h.inventory.UpdateStock(c.Request.Context(), tenantID(c), c.Param("id"), int(*input.Stock))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.APIResponse(c, http.StatusOK, "Drug stock updated successfully.", drug)
}
