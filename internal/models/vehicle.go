// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

// Vehicle is one active inventory record, keyed by VIN. The stock number is
// derived from the VIN once at creation and stored, never recomputed.
//
// The four wheel-material booleans are the persisted schema; at most one may
// be true. Writes normalize them through Material/SetMaterial so the flags
// can never disagree (the flag bundle predates the enum and stays for schema
// compatibility with existing databases).
type Vehicle struct {
	BaseModel
	VIN               string `json:"vin" gorm:"column:vin;uniqueIndex;not null"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	ModelYear         string `json:"model_year"`
	Series            string `json:"series"`
	Options           string `json:"options"`
	KeyFeatures       string `json:"key_features"`
	StockNumber       string `json:"stock_number"`
	WheelSize         string `json:"wheel_size"`
	AlloyWheels       bool   `json:"alloy_wheels"`
	TwoToneWheels     bool   `json:"two_tone_wheels"`
	ChromeWheels      bool   `json:"chrome_wheels"`
	Wheels            bool   `json:"wheels"`
	CustomWheels      string `json:"custom_wheels"`
	IsWheelKeyFeature bool   `json:"is_wheel_key_feature"`
}

func (Vehicle) TableName() string {
	return "inventory"
}

// ArchivedVehicle mirrors Vehicle in a separate table. A VIN lives in at
// most one of the two tables at a time.
type ArchivedVehicle struct {
	BaseModel
	VIN               string `json:"vin" gorm:"column:vin;uniqueIndex;not null"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	ModelYear         string `json:"model_year"`
	Series            string `json:"series"`
	Options           string `json:"options"`
	KeyFeatures       string `json:"key_features"`
	StockNumber       string `json:"stock_number"`
	WheelSize         string `json:"wheel_size"`
	AlloyWheels       bool   `json:"alloy_wheels"`
	TwoToneWheels     bool   `json:"two_tone_wheels"`
	ChromeWheels      bool   `json:"chrome_wheels"`
	Wheels            bool   `json:"wheels"`
	CustomWheels      string `json:"custom_wheels"`
	IsWheelKeyFeature bool   `json:"is_wheel_key_feature"`
}

func (ArchivedVehicle) TableName() string {
	return "archived_cars"
}

// Material resolves the flag bundle to a single material. When more than one
// flag is set (possible in databases written by older tools) the fixed
// priority order alloy, two-tone, chrome, plain decides.
func (v *Vehicle) Material() WheelMaterial {
	return materialFromFlags(v.AlloyWheels, v.TwoToneWheels, v.ChromeWheels, v.Wheels)
}

// SetMaterial rewrites the flag bundle so exactly the flag for m is set, or
// none for WheelMaterialNone.
func (v *Vehicle) SetMaterial(m WheelMaterial) {
	v.AlloyWheels = m == WheelMaterialAlloy
	v.TwoToneWheels = m == WheelMaterialTwoTone
	v.ChromeWheels = m == WheelMaterialChrome
	v.Wheels = m == WheelMaterialPlain
}

// BeforeSave keeps the at-most-one-flag invariant: any record going to disk
// is normalized through the priority resolution.
func (v *Vehicle) BeforeSave(tx *gorm.DB) error {
	v.SetMaterial(v.Material())
	return nil
}

func (a *ArchivedVehicle) Material() WheelMaterial {
	return materialFromFlags(a.AlloyWheels, a.TwoToneWheels, a.ChromeWheels, a.Wheels)
}

func (a *ArchivedVehicle) BeforeSave(tx *gorm.DB) error {
	m := a.Material()
	a.AlloyWheels = m == WheelMaterialAlloy
	a.TwoToneWheels = m == WheelMaterialTwoTone
	a.ChromeWheels = m == WheelMaterialChrome
	a.Wheels = m == WheelMaterialPlain
	return nil
}

func materialFromFlags(alloy, twoTone, chrome, plain bool) WheelMaterial {
	switch {
	case alloy:
		return WheelMaterialAlloy
	case twoTone:
		return WheelMaterialTwoTone
	case chrome:
		return WheelMaterialChrome
	case plain:
		return WheelMaterialPlain
	}
	return WheelMaterialNone
}

// Archived copies the record into the archive table's model. The VIN keeps
// its identity; the archive row gets its own surrogate ID.
func (v *Vehicle) Archived() *ArchivedVehicle {
	return &ArchivedVehicle{
		VIN:               v.VIN,
		Make:              v.Make,
		Model:             v.Model,
		ModelYear:         v.ModelYear,
		Series:            v.Series,
		Options:           v.Options,
		KeyFeatures:       v.KeyFeatures,
		StockNumber:       v.StockNumber,
		WheelSize:         v.WheelSize,
		AlloyWheels:       v.AlloyWheels,
		TwoToneWheels:     v.TwoToneWheels,
		ChromeWheels:      v.ChromeWheels,
		Wheels:            v.Wheels,
		CustomWheels:      v.CustomWheels,
		IsWheelKeyFeature: v.IsWheelKeyFeature,
	}
}

// Restored is the inverse of Archived.
func (a *ArchivedVehicle) Restored() *Vehicle {
	return &Vehicle{
		VIN:               a.VIN,
		Make:              a.Make,
		Model:             a.Model,
		ModelYear:         a.ModelYear,
		Series:            a.Series,
		Options:           a.Options,
		KeyFeatures:       a.KeyFeatures,
		StockNumber:       a.StockNumber,
		WheelSize:         a.WheelSize,
		AlloyWheels:       a.AlloyWheels,
		TwoToneWheels:     a.TwoToneWheels,
		ChromeWheels:      a.ChromeWheels,
		Wheels:            a.Wheels,
		CustomWheels:      a.CustomWheels,
		IsWheelKeyFeature: a.IsWheelKeyFeature,
	}
}
