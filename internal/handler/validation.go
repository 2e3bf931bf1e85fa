package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"beachtrack/internal/domain"
)

// RegisterValidators adds the custom binding tags used by request structs to
// gin's validator. It must be called once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("profiletype", validateProfileType)
}

func validateProfileType(fl validator.FieldLevel) bool {
	return domain.ProfileType(fl.Field().String()).Valid()
}
