// internal/handlers/document.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotkeeper/carstock-backend/internal/services"
	"github.com/lotkeeper/carstock-backend/internal/utils"
)

type DocumentHandler struct {
	inventoryService *services.InventoryService
	documentService  *services.DocumentService
}

func NewDocumentHandler(inventoryService *services.InventoryService, documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		inventoryService: inventoryService,
		documentService:  documentService,
	}
}

// GET /vehicles/:vin/window-sticker
func (h *DocumentHandler) WindowSticker(c *gin.Context) {
	vehicle, err := h.inventoryService.GetVehicle(c.Param("vin"))
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	data, err := h.documentService.WindowSticker(vehicle)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	servePDF(c, fmt.Sprintf("window-sticker-%s.pdf", vehicle.StockNumber), data)
}

// GET /documents/inventory-sheet
func (h *DocumentHandler) InventorySheet(c *gin.Context) {
	vehicles, err := h.inventoryService.ListVehicles()
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	data, err := h.documentService.InventorySheet(vehicles)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	servePDF(c, "inventory-sheet.pdf", data)
}

func servePDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
