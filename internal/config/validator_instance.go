package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/elementkit/internal/dom"
	"github.com/alexisbeaulieu97/elementkit/internal/element"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	attributeNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("element_name", func(fl validator.FieldLevel) bool {
			return dom.ValidName(fl.Field().String())
		})

		_ = v.RegisterValidation("attribute_name", func(fl validator.FieldLevel) bool {
			return attributeNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("encapsulation", func(fl validator.FieldLevel) bool {
			_, err := element.ParseEncapsulation(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
