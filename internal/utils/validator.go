package utils

import (
	"Recipe-Share-Backend/domain"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New()
	_ = v.RegisterValidation("dietary_tag", func(fl validator.FieldLevel) bool {
		return domain.IsDietaryTag(fl.Field().String())
	})
	_ = v.RegisterValidation("dietary_restriction", func(fl validator.FieldLevel) bool {
		return domain.IsDietaryRestriction(fl.Field().String())
	})
	Validate = v
}
