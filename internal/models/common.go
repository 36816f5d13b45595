// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type WheelMaterial string

const (
	WheelMaterialNone    WheelMaterial = "None"
	WheelMaterialAlloy   WheelMaterial = "ALLOY WHEELS"
	WheelMaterialTwoTone WheelMaterial = "TWO-TONE WHEELS"
	WheelMaterialChrome  WheelMaterial = "CHROME WHEELS"
	WheelMaterialPlain   WheelMaterial = "WHEELS"
)

// WheelMaterials lists the selectable materials in display order.
var WheelMaterials = []WheelMaterial{
	WheelMaterialNone,
	WheelMaterialAlloy,
	WheelMaterialChrome,
	WheelMaterialTwoTone,
	WheelMaterialPlain,
}

func (m WheelMaterial) Valid() bool {
	switch m {
	case WheelMaterialNone, WheelMaterialAlloy, WheelMaterialTwoTone, WheelMaterialChrome, WheelMaterialPlain:
		return true
	}
	return false
}
