// internal/handlers/archive.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotkeeper/carstock-backend/internal/services"
	"github.com/lotkeeper/carstock-backend/internal/utils"
)

type ArchiveHandler struct {
	inventoryService *services.InventoryService
}

func NewArchiveHandler(inventoryService *services.InventoryService) *ArchiveHandler {
	return &ArchiveHandler{inventoryService: inventoryService}
}

// GET /archive
func (h *ArchiveHandler) ListArchived(c *gin.Context) {
	vehicles, err := h.inventoryService.ListArchived()
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, vehicles)
}

// POST /archive/:vin/restore
func (h *ArchiveHandler) RestoreVehicle(c *gin.Context) {
	vehicle, err := h.inventoryService.RestoreVehicle(c.Param("vin"))
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": "Car restored to inventory!",
		"vehicle": vehicle,
	})
}

// DELETE /archive/:vin
func (h *ArchiveHandler) DeleteArchived(c *gin.Context) {
	deleted, err := h.inventoryService.DeleteArchived(c.Param("vin"))
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": deleted})
}
