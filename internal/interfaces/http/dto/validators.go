package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/faktulove/backend/internal/domain/compliance"
)

// RegisterCustomValidators installs domain validation tags on gin's binding
// engine. Must run before the first request is bound.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("nip", validNIP)
}

// validNIP accepts NIPs in any common formatting; the checksum decides
func validNIP(fl validator.FieldLevel) bool {
	return compliance.ValidateNIP(compliance.NormalizeNIP(fl.Field().String()))
}
