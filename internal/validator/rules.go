package validator

import (
	"github.com/go-playground/validator/v10"

	"returnit_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("item_category", validateItemCategory); err != nil {
		return err
	}
	if err := v.RegisterValidation("latitude_deg", validateLatitude); err != nil {
		return err
	}
	return v.RegisterValidation("longitude_deg", validateLongitude)
}

func validateItemCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}
