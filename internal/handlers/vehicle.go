// internal/handlers/vehicle.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lotkeeper/carstock-backend/internal/compose"
	"github.com/lotkeeper/carstock-backend/internal/decoder"
	"github.com/lotkeeper/carstock-backend/internal/services"
	"github.com/lotkeeper/carstock-backend/internal/utils"
	"github.com/lotkeeper/carstock-backend/internal/vin"
)

type VehicleHandler struct {
	inventoryService *services.InventoryService
	catalogService   *services.CatalogService
}

func NewVehicleHandler(inventoryService *services.InventoryService, catalogService *services.CatalogService) *VehicleHandler {
	return &VehicleHandler{
		inventoryService: inventoryService,
		catalogService:   catalogService,
	}
}

type addVehicleRequest struct {
	VIN string `json:"vin" validate:"required,vin"`
}

type updateOptionsRequest struct {
	Options string `json:"options"`
}

// POST /vehicles
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	var req addVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	vehicle, err := h.inventoryService.AddVehicle(c.Request.Context(), req.VIN)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Car added successfully!",
		"vehicle": vehicle,
	})
}

// GET /vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.inventoryService.ListVehicles()
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, vehicles)
}

// GET /vehicles/:vin
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.inventoryService.GetVehicle(c.Param("vin"))
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, vehicle)
}

// PUT /vehicles/:vin
func (h *VehicleHandler) UpdateVehicleDetails(c *gin.Context) {
	var req services.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	vehicle, err := h.inventoryService.UpdateVehicleDetails(c.Param("vin"), &req)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Details updated successfully!",
		"vehicle": vehicle,
	})
}

// PUT /vehicles/:vin/options
func (h *VehicleHandler) UpdateVehicleOptions(c *gin.Context) {
	var req updateOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	vehicle, err := h.inventoryService.UpdateVehicleOptions(c.Param("vin"), req.Options)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Car options updated successfully!",
		"vehicle": vehicle,
	})
}

// DELETE /vehicles/:vin
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	deleted, err := h.inventoryService.DeleteVehicle(c.Param("vin"))
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": deleted})
}

// POST /vehicles/:vin/archive
func (h *VehicleHandler) ArchiveVehicle(c *gin.Context) {
	if err := h.inventoryService.ArchiveVehicle(c.Param("vin")); err != nil {
		respondInventoryError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Car archived!"})
}

// GET /vehicles/:vin/selection
//
// Returns the edit-screen selection state derived from the stored record:
// which catalog features its options and key-features text select, plus the
// wheel section. This is the inverse of composing the text fields.
func (h *VehicleHandler) GetSelection(c *gin.Context) {
	vehicle, err := h.inventoryService.GetVehicle(c.Param("vin"))
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	cat := h.catalogService.Catalog()
	utils.SuccessResponse(c, gin.H{
		"options":      compose.ParseOptionsIntoSelection(vehicle.Options, cat),
		"key_features": compose.ParseKeyFeaturesIntoSelection(vehicle.KeyFeatures, cat),
		"wheels":       compose.ParseWheelSection(vehicle),
	})
}

type updateSelectionRequest struct {
	Options     compose.Selection      `json:"options"`
	KeyFeatures compose.Selection      `json:"key_features"`
	Wheels      compose.WheelSelection `json:"wheels"`
}

// PUT /vehicles/:vin/selection
//
// The inverse of GetSelection: takes the edit-screen checkbox state, derives
// the options and key-features text from it in catalog order, and persists
// the texts together with the wheel section.
func (h *VehicleHandler) UpdateSelection(c *gin.Context) {
	var req updateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if req.Wheels.Material != "" && !req.Wheels.Material.Valid() {
		utils.BadRequestResponse(c, "Unknown wheel material", nil)
		return
	}

	cat := h.catalogService.Catalog()
	wheelDescription := req.Wheels.Description()
	optionsText := compose.ComposeOptions(req.Options, cat, wheelDescription)
	keyFeaturesText := compose.ComposeKeyFeatures(req.KeyFeatures, cat, req.Wheels.IsKeyFeature, wheelDescription)

	vehicle, err := h.inventoryService.UpdateVehicleSelection(
		c.Param("vin"),
		optionsText,
		keyFeaturesText,
		req.Wheels.Size,
		req.Wheels.Material,
		req.Wheels.Custom,
		req.Wheels.IsKeyFeature,
	)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Car options updated successfully!",
		"vehicle": vehicle,
	})
}

// respondInventoryError maps the service error taxonomy onto HTTP statuses.
func respondInventoryError(c *gin.Context, err error) {
	var (
		serviceErr     *decoder.ServiceError
		persistenceErr *services.PersistenceError
	)

	switch {
	case errors.Is(err, vin.ErrInvalidCharacters), errors.Is(err, vin.ErrInvalidLength):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, decoder.ErrNoResults):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrDuplicateVIN), errors.Is(err, services.ErrArchiveConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrUnknownVIN):
		utils.NotFoundResponse(c, err.Error())
	case errors.As(err, &serviceErr):
		utils.BadGatewayResponse(c, err.Error())
	case errors.As(err, &persistenceErr):
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
