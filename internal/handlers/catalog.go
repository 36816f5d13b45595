// internal/handlers/catalog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lotkeeper/carstock-backend/internal/services"
	"github.com/lotkeeper/carstock-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	categories := h.catalogService.Categories()

	// keep category order in the response, so a JSON object will not do
	out := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		out = append(out, gin.H{
			"category": cat.Name,
			"features": cat.Features,
		})
	}
	utils.SuccessResponse(c, out)
}

// POST /catalog/features
func (h *CatalogHandler) AddFeature(c *gin.Context) {
	var req services.AddFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.catalogService.AddFeature(req.Category, req.Feature); err != nil {
		if errors.Is(err, services.ErrDuplicateFeature) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"message": "Feature saved!"})
}

// DELETE /catalog/features
func (h *CatalogHandler) RemoveFeature(c *gin.Context) {
	var req services.RemoveFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	removed, err := h.catalogService.RemoveFeature(req.Category, req.Feature)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"removed": removed})
}
