// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lotkeeper/carstock-backend/internal/config"
	"github.com/lotkeeper/carstock-backend/internal/decoder"
	"github.com/lotkeeper/carstock-backend/internal/handlers"
	"github.com/lotkeeper/carstock-backend/internal/middleware"
	"github.com/lotkeeper/carstock-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	notificationService := services.NewNotificationService(services.DefaultNotificationTTL)
	catalogService, err := services.NewCatalogService(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	decoderClient := decoder.NewClient(cfg.Decoder)
	inventoryService := services.NewInventoryService(db, decoderClient, notificationService)
	documentService := services.NewDocumentService(cfg.Documents)

	// Initialize handlers
	vehicleHandler := handlers.NewVehicleHandler(inventoryService, catalogService)
	archiveHandler := handlers.NewArchiveHandler(inventoryService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	documentHandler := handlers.NewDocumentHandler(inventoryService, documentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		vehicles := v1.Group("/vehicles")
		{
			// adding a vehicle calls out to the decode service
			vehicles.POST("", middleware.DecodeRateLimit(), vehicleHandler.AddVehicle)

			vehicles.GET("", vehicleHandler.ListVehicles)
			vehicles.GET("/:vin", vehicleHandler.GetVehicle)
			vehicles.GET("/:vin/selection", vehicleHandler.GetSelection)
			vehicles.PUT("/:vin/selection", vehicleHandler.UpdateSelection)
			vehicles.PUT("/:vin", vehicleHandler.UpdateVehicleDetails)
			vehicles.PUT("/:vin/options", vehicleHandler.UpdateVehicleOptions)
			vehicles.POST("/:vin/archive", vehicleHandler.ArchiveVehicle)
			vehicles.DELETE("/:vin", vehicleHandler.DeleteVehicle)
			vehicles.GET("/:vin/window-sticker", documentHandler.WindowSticker)
		}

		archive := v1.Group("/archive")
		{
			archive.GET("", archiveHandler.ListArchived)
			archive.POST("/:vin/restore", archiveHandler.RestoreVehicle)
			archive.DELETE("/:vin", archiveHandler.DeleteArchived)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", catalogHandler.GetCatalog)
			catalog.POST("/features", catalogHandler.AddFeature)
			catalog.DELETE("/features", catalogHandler.RemoveFeature)
		}

		documents := v1.Group("/documents")
		{
			documents.GET("/inventory-sheet", documentHandler.InventorySheet)
		}

		v1.GET("/notifications", notificationHandler.ListNotifications)
	}

	return r, nil
}
