// internal/handlers/vehicle_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lotkeeper/carstock-backend/internal/config"
	"github.com/lotkeeper/carstock-backend/internal/decoder"
	"github.com/lotkeeper/carstock-backend/internal/models"
	"github.com/lotkeeper/carstock-backend/internal/services"
)

type stubDecoder struct {
	results map[string]*decoder.DecodedVehicle
}

func (s *stubDecoder) Decode(ctx context.Context, vinStr string) (*decoder.DecodedVehicle, error) {
	if decoded, ok := s.results[vinStr]; ok {
		return decoded, nil
	}
	return nil, decoder.ErrNoResults
}

type VehicleHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *VehicleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), db.AutoMigrate(&models.Vehicle{}, &models.ArchivedVehicle{}))

	catalogPath := filepath.Join(suite.T().TempDir(), "car_options.json")
	require.NoError(suite.T(), os.WriteFile(catalogPath, []byte(`{
		"Comfort": ["HEATED SEATS", "POWER WINDOWS, LOCKS AND SEAT"],
		"Audio": ["NAVIGATION"]
	}`), 0o644))

	catalogService, err := services.NewCatalogService(config.CatalogConfig{Path: catalogPath})
	require.NoError(suite.T(), err)

	stub := &stubDecoder{results: map[string]*decoder.DecodedVehicle{
		"1HGCM82633A004352": {Make: "HONDA", Model: "Accord", ModelYear: "2003", Series: "EX"},
	}}
	inventoryService := services.NewInventoryService(db, stub, nil)

	vehicleHandler := NewVehicleHandler(inventoryService, catalogService)
	archiveHandler := NewArchiveHandler(inventoryService)
	catalogHandler := NewCatalogHandler(catalogService)

	suite.router = gin.New()
	v1 := suite.router.Group("/v1")
	{
		v1.POST("/vehicles", vehicleHandler.AddVehicle)
		v1.GET("/vehicles", vehicleHandler.ListVehicles)
		v1.GET("/vehicles/:vin", vehicleHandler.GetVehicle)
		v1.GET("/vehicles/:vin/selection", vehicleHandler.GetSelection)
		v1.PUT("/vehicles/:vin/selection", vehicleHandler.UpdateSelection)
		v1.PUT("/vehicles/:vin", vehicleHandler.UpdateVehicleDetails)
		v1.PUT("/vehicles/:vin/options", vehicleHandler.UpdateVehicleOptions)
		v1.POST("/vehicles/:vin/archive", vehicleHandler.ArchiveVehicle)
		v1.DELETE("/vehicles/:vin", vehicleHandler.DeleteVehicle)
		v1.GET("/archive", archiveHandler.ListArchived)
		v1.POST("/archive/:vin/restore", archiveHandler.RestoreVehicle)
		v1.POST("/catalog/features", catalogHandler.AddFeature)
	}
}

func (suite *VehicleHandlerTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *VehicleHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *VehicleHandlerTestSuite) TestAddVehicle() {
	w := suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1hgcm82633a004352"})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	vehicle := response["data"].(map[string]interface{})["vehicle"].(map[string]interface{})
	assert.Equal(suite.T(), "1HGCM82633A004352", vehicle["vin"])
	assert.Equal(suite.T(), "4352", vehicle["stock_number"])
	assert.Equal(suite.T(), "HONDA", vehicle["make"])
}

func (suite *VehicleHandlerTestSuite) TestAddVehicleInvalidVIN() {
	w := suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "BADQ12345678"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	response := suite.decode(w)
	assert.False(suite.T(), response["success"].(bool))
	assert.Equal(suite.T(), "VALIDATION_ERROR", response["error"].(map[string]interface{})["code"])
}

func (suite *VehicleHandlerTestSuite) TestAddVehicleDuplicate() {
	suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})
	w := suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *VehicleHandlerTestSuite) TestAddVehicleNoDecodeResults() {
	w := suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "12345678901"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *VehicleHandlerTestSuite) TestGetVehicleNotFound() {
	w := suite.do(http.MethodGet, "/v1/vehicles/12345678901", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *VehicleHandlerTestSuite) TestDeleteVehicleReportsRowsAffected() {
	suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})

	w := suite.do(http.MethodDelete, "/v1/vehicles/1HGCM82633A004352", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), suite.decode(w)["data"].(map[string]interface{})["deleted"].(bool))

	// absent VIN is not an error but reports deleted=false
	w = suite.do(http.MethodDelete, "/v1/vehicles/1HGCM82633A004352", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.False(suite.T(), suite.decode(w)["data"].(map[string]interface{})["deleted"].(bool))
}

func (suite *VehicleHandlerTestSuite) TestArchiveAndRestoreFlow() {
	suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})

	w := suite.do(http.MethodPost, "/v1/vehicles/1HGCM82633A004352/archive", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// gone from active
	w = suite.do(http.MethodGet, "/v1/vehicles/1HGCM82633A004352", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// listed in archive
	w = suite.do(http.MethodGet, "/v1/archive", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	archived := suite.decode(w)["data"].([]interface{})
	require.Len(suite.T(), archived, 1)

	// restore brings it back
	w = suite.do(http.MethodPost, "/v1/archive/1HGCM82633A004352/restore", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/v1/vehicles/1HGCM82633A004352", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *VehicleHandlerTestSuite) TestUpdateOptionsAndSelection() {
	suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})

	w := suite.do(http.MethodPut, "/v1/vehicles/1HGCM82633A004352/options", gin.H{
		"options": "HEATED SEATS, POWER WINDOWS, LOCKS AND SEAT",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/v1/vehicles/1HGCM82633A004352/selection", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	options := data["options"].(map[string]interface{})
	assert.Equal(suite.T(), true, options["HEATED SEATS"])
	// the comma-bearing phrase matched whole
	assert.Equal(suite.T(), true, options["POWER WINDOWS, LOCKS AND SEAT"])
}

func (suite *VehicleHandlerTestSuite) TestUpdateSelectionComposesTexts() {
	suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})

	w := suite.do(http.MethodPut, "/v1/vehicles/1HGCM82633A004352/selection", gin.H{
		"options": gin.H{
			"HEATED SEATS":                  true,
			"POWER WINDOWS, LOCKS AND SEAT": true,
		},
		"key_features": gin.H{
			"POWER WINDOWS, LOCKS AND SEAT": true,
		},
		"wheels": gin.H{
			"size":           "18\"",
			"material":       "ALLOY WHEELS",
			"is_key_feature": true,
		},
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	vehicle := suite.decode(w)["data"].(map[string]interface{})["vehicle"].(map[string]interface{})
	assert.Equal(suite.T(), "HEATED SEATS, POWER WINDOWS, LOCKS AND SEAT, 18\" ALLOY WHEELS", vehicle["options"])
	// the long phrase collapses to its short form in key features
	assert.Equal(suite.T(), "POWER SEAT, 18\" ALLOY WHEELS", vehicle["key_features"])
	assert.Equal(suite.T(), true, vehicle["alloy_wheels"])
	assert.Equal(suite.T(), false, vehicle["chrome_wheels"])
}

func (suite *VehicleHandlerTestSuite) TestUpdateSelectionUnknownMaterial() {
	suite.do(http.MethodPost, "/v1/vehicles", gin.H{"vin": "1HGCM82633A004352"})

	w := suite.do(http.MethodPut, "/v1/vehicles/1HGCM82633A004352/selection", gin.H{
		"wheels": gin.H{"material": "WOODEN WHEELS"},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *VehicleHandlerTestSuite) TestAddCatalogFeature() {
	w := suite.do(http.MethodPost, "/v1/catalog/features", gin.H{
		"category": "Exterior",
		"feature":  "ROOF RACK",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	// missing fields rejected
	w = suite.do(http.MethodPost, "/v1/catalog/features", gin.H{"category": "Exterior"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestVehicleHandlerSuite(t *testing.T) {
	suite.Run(t, new(VehicleHandlerTestSuite))
}
