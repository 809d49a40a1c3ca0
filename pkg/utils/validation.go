package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var phoneRegex = regexp.MustCompile(`^\+?[0-9\- ()]{7,20}$`)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "admin", "donor", "agent":
			return true
		}
		return false
	})
}

// ValidateStruct runs validator tags on a request DTO.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
