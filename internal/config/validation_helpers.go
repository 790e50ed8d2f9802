package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	elementkiterrors "github.com/alexisbeaulieu97/elementkit/pkg/errors"
)

// ValidateManifest checks struct tags, then that the template parses.
func ValidateManifest(m *Manifest) error {
	if m == nil {
		return elementkiterrors.NewValidationError("manifest", "manifest is empty", nil)
	}
	if err := validatorInstance().Struct(m); err != nil {
		return convertValidationError(err)
	}
	if _, err := parseTemplate(m.Tag, m.Template); err != nil {
		return elementkiterrors.NewValidationError("template", err.Error(), err)
	}
	return nil
}

// convertValidationError normalizes validator errors into elementkit validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := manifestFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return elementkiterrors.NewValidationError(field, msg, err)
	}

	return elementkiterrors.NewValidationError("manifest", err.Error(), err)
}

// manifestFieldName lower-cases the struct namespace and drops the root type
// name, so Manifest.Tag is reported as tag.
func manifestFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
