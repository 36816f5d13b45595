// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lotkeeper/carstock-backend/internal/models"
	"github.com/lotkeeper/carstock-backend/internal/vin"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("vin", validateVIN)
	validate.RegisterValidation("wheel_material", validateWheelMaterial)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateVIN(fl validator.FieldLevel) bool {
	_, err := vin.Validate(fl.Field().String())
	return err == nil
}

func validateWheelMaterial(fl validator.FieldLevel) bool {
	return models.WheelMaterial(fl.Field().String()).Valid()
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "vin":
		return "VIN must be 11-17 characters and cannot contain I, O, or Q"
	case "wheel_material":
		return "Unknown wheel material"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	default:
		return e.Field() + " is invalid"
	}
}
