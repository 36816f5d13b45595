// internal/services/inventory_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lotkeeper/carstock-backend/internal/decoder"
	"github.com/lotkeeper/carstock-backend/internal/models"
	"github.com/lotkeeper/carstock-backend/internal/vin"
)

var (
	ErrDuplicateVIN    = errors.New("car with this VIN already exists in the inventory")
	ErrUnknownVIN      = errors.New("no car with this VIN in the inventory")
	ErrArchiveConflict = errors.New("car with this VIN already exists in the archive")
)

// PersistenceError wraps an underlying storage failure. The operation it
// came from was rolled back; prior state is unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// VINDecoder is the outbound decode collaborator. Satisfied by
// *decoder.Client; tests substitute their own.
type VINDecoder interface {
	Decode(ctx context.Context, vin string) (*decoder.DecodedVehicle, error)
}

type InventoryService struct {
	db                  *gorm.DB
	decoder             VINDecoder
	notificationService *NotificationService
}

// UpdateDetailsRequest is a full field replace for one record. The VIN
// itself is immutable and never part of the update.
type UpdateDetailsRequest struct {
	Make              string               `json:"make"`
	Model             string               `json:"model"`
	ModelYear         string               `json:"model_year"`
	Series            string               `json:"series"`
	Options           string               `json:"options"`
	KeyFeatures       string               `json:"key_features"`
	WheelSize         string               `json:"wheel_size"`
	WheelMaterial     models.WheelMaterial `json:"wheel_material" validate:"omitempty,wheel_material"`
	CustomWheels      string               `json:"custom_wheels"`
	IsWheelKeyFeature bool                 `json:"is_wheel_key_feature"`
}

func NewInventoryService(db *gorm.DB, dec VINDecoder, notificationService *NotificationService) *InventoryService {
	return &InventoryService{
		db:                  db,
		decoder:             dec,
		notificationService: notificationService,
	}
}

// AddVehicle validates and decodes the VIN, then inserts a fresh record.
// The stock number is derived from the validated VIN here, once, and stored.
// Options and key features start empty; the caller fills them in later.
func (s *InventoryService) AddVehicle(ctx context.Context, rawVIN string) (*models.Vehicle, error) {
	normalized, err := vin.Validate(rawVIN)
	if err != nil {
		return nil, err
	}

	// Duplicate check before the network call; no reason to decode a VIN
	// that can't be inserted.
	var count int64
	if err := s.db.Model(&models.Vehicle{}).Where("vin = ?", normalized).Count(&count).Error; err != nil {
		return nil, &PersistenceError{Op: "checking for existing VIN", Err: err}
	}
	if count > 0 {
		return nil, ErrDuplicateVIN
	}

	decoded, err := s.decoder.Decode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		VIN:         normalized,
		Make:        decoded.Make,
		Model:       decoded.Model,
		ModelYear:   decoded.ModelYear,
		Series:      decoded.Series,
		StockNumber: vin.StockNumber(normalized),
	}

	if err := s.db.Create(vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateVIN
		}
		return nil, &PersistenceError{Op: "inserting car", Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"vin":          vehicle.VIN,
		"make":         vehicle.Make,
		"model":        vehicle.Model,
		"stock_number": vehicle.StockNumber,
	}).Info("Car added to inventory")

	s.notify(fmt.Sprintf("Car with VIN %s added successfully!", vehicle.VIN))
	return vehicle, nil
}

// UpdateVehicleDetails replaces the record's editable fields in a single
// transaction. Options and key-features text is stored exactly as sent:
// manual edits are allowed to diverge from the checkbox-derived text.
func (s *InventoryService) UpdateVehicleDetails(vinStr string, req *UpdateDetailsRequest) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vin = ?", vinStr).First(&vehicle).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownVIN
			}
			return &PersistenceError{Op: "fetching car", Err: err}
		}

		vehicle.Make = req.Make
		vehicle.Model = req.Model
		vehicle.ModelYear = req.ModelYear
		vehicle.Series = req.Series
		vehicle.Options = req.Options
		vehicle.KeyFeatures = req.KeyFeatures
		vehicle.WheelSize = req.WheelSize
		vehicle.CustomWheels = req.CustomWheels
		vehicle.IsWheelKeyFeature = req.IsWheelKeyFeature

		material := req.WheelMaterial
		if material == "" {
			material = models.WheelMaterialNone
		}
		vehicle.SetMaterial(material)

		if err := tx.Save(&vehicle).Error; err != nil {
			return &PersistenceError{Op: "updating car details", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("vin", vinStr).Info("Car details updated")
	s.notify("Details updated successfully!")
	return &vehicle, nil
}

// UpdateVehicleSelection persists the checkbox-derived text fields together
// with the wheel section they were derived from, leaving the identity and
// decode fields alone.
func (s *InventoryService) UpdateVehicleSelection(vinStr, optionsText, keyFeaturesText string, wheelSize string, material models.WheelMaterial, customWheels string, wheelIsKeyFeature bool) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vin = ?", vinStr).First(&vehicle).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownVIN
			}
			return &PersistenceError{Op: "fetching car", Err: err}
		}

		vehicle.Options = optionsText
		vehicle.KeyFeatures = keyFeaturesText
		vehicle.WheelSize = wheelSize
		vehicle.CustomWheels = customWheels
		vehicle.IsWheelKeyFeature = wheelIsKeyFeature
		vehicle.SetMaterial(material)

		if err := tx.Save(&vehicle).Error; err != nil {
			return &PersistenceError{Op: "updating car selection", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("vin", vinStr).Info("Car selection updated")
	s.notify("Car options updated successfully!")
	return &vehicle, nil
}

// UpdateVehicleOptions touches only the options text.
func (s *InventoryService) UpdateVehicleOptions(vinStr, optionsText string) (*models.Vehicle, error) {
	result := s.db.Model(&models.Vehicle{}).Where("vin = ?", vinStr).Update("options", optionsText)
	if result.Error != nil {
		return nil, &PersistenceError{Op: "updating car options", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, ErrUnknownVIN
	}

	logrus.WithFields(logrus.Fields{"vin": vinStr, "options": optionsText}).Debug("Car options updated")
	s.notify("Car options updated successfully!")
	return s.GetVehicle(vinStr)
}

// ListVehicles returns the active inventory in insertion order.
func (s *InventoryService) ListVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Order("id").Find(&vehicles).Error; err != nil {
		return nil, &PersistenceError{Op: "fetching cars", Err: err}
	}
	return vehicles, nil
}

// GetVehicle fetches one active record by VIN.
func (s *InventoryService) GetVehicle(vinStr string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.Where("vin = ?", vinStr).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownVIN
		}
		return nil, &PersistenceError{Op: "fetching car", Err: err}
	}
	return &vehicle, nil
}

// ArchiveVehicle moves a record from the active table to the archive table.
// Copy and removal run in one transaction: if the copy fails (VIN already
// archived, storage failure) the record stays in the active table untouched.
func (s *InventoryService) ArchiveVehicle(vinStr string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.Where("vin = ?", vinStr).First(&vehicle).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownVIN
			}
			return &PersistenceError{Op: "fetching car to archive", Err: err}
		}

		var archivedCount int64
		if err := tx.Model(&models.ArchivedVehicle{}).Where("vin = ?", vinStr).Count(&archivedCount).Error; err != nil {
			return &PersistenceError{Op: "checking archive for VIN", Err: err}
		}
		if archivedCount > 0 {
			return ErrArchiveConflict
		}

		if err := tx.Create(vehicle.Archived()).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrArchiveConflict
			}
			return &PersistenceError{Op: "copying car to archive", Err: err}
		}

		if err := tx.Delete(&vehicle).Error; err != nil {
			return &PersistenceError{Op: "removing car from inventory", Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("vin", vinStr).Info("Car archived")
	s.notify(fmt.Sprintf("Car with VIN %s archived!", vinStr))
	return nil
}

// DeleteVehicle removes a record from the active table. Deleting an absent
// VIN is not an error; the return value tells the caller whether a row
// actually went away so the UI can word its confirmation.
func (s *InventoryService) DeleteVehicle(vinStr string) (bool, error) {
	result := s.db.Where("vin = ?", vinStr).Delete(&models.Vehicle{})
	if result.Error != nil {
		return false, &PersistenceError{Op: "deleting car", Err: result.Error}
	}

	deleted := result.RowsAffected > 0
	if deleted {
		logrus.WithField("vin", vinStr).Info("Car deleted from inventory")
		s.notify(fmt.Sprintf("Car with VIN %s deleted successfully!", vinStr))
	}
	return deleted, nil
}

// ListArchived returns the archive table in insertion order.
func (s *InventoryService) ListArchived() ([]models.ArchivedVehicle, error) {
	var vehicles []models.ArchivedVehicle
	if err := s.db.Order("id").Find(&vehicles).Error; err != nil {
		return nil, &PersistenceError{Op: "fetching archived cars", Err: err}
	}
	return vehicles, nil
}

// RestoreVehicle moves an archived record back into the active table, with
// the same duplicate and atomicity rules as archiving.
func (s *InventoryService) RestoreVehicle(vinStr string) (*models.Vehicle, error) {
	var restored *models.Vehicle

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var archived models.ArchivedVehicle
		if err := tx.Where("vin = ?", vinStr).First(&archived).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownVIN
			}
			return &PersistenceError{Op: "fetching archived car", Err: err}
		}

		var activeCount int64
		if err := tx.Model(&models.Vehicle{}).Where("vin = ?", vinStr).Count(&activeCount).Error; err != nil {
			return &PersistenceError{Op: "checking inventory for VIN", Err: err}
		}
		if activeCount > 0 {
			return ErrDuplicateVIN
		}

		restored = archived.Restored()
		if err := tx.Create(restored).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVIN
			}
			return &PersistenceError{Op: "restoring car to inventory", Err: err}
		}

		if err := tx.Delete(&archived).Error; err != nil {
			return &PersistenceError{Op: "removing car from archive", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("vin", vinStr).Info("Car restored from archive")
	s.notify(fmt.Sprintf("Car with VIN %s restored to inventory!", vinStr))
	return restored, nil
}

// DeleteArchived permanently removes a record from the archive table, with
// the same idempotent semantics as DeleteVehicle.
func (s *InventoryService) DeleteArchived(vinStr string) (bool, error) {
	result := s.db.Where("vin = ?", vinStr).Delete(&models.ArchivedVehicle{})
	if result.Error != nil {
		return false, &PersistenceError{Op: "deleting archived car", Err: result.Error}
	}

	deleted := result.RowsAffected > 0
	if deleted {
		logrus.WithField("vin", vinStr).Info("Car deleted from archive")
		s.notify(fmt.Sprintf("Car with VIN %s deleted from archive!", vinStr))
	}
	return deleted, nil
}

func (s *InventoryService) notify(message string) {
	if s.notificationService != nil {
		s.notificationService.Add(message)
	}
}
