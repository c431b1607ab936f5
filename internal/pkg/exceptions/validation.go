package exceptions

import (
	"bitecare-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors maps every failed field to a display message, keyed
// by the field's namespace without the root struct name.
func FormatValidationErrors(err error) map[string]string {
	fields := make(map[string]string)
	if err == nil {
		return fields
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["_"] = constvars.ErrDevInvalidInput
		return fields
	}

	for _, fieldErr := range validationErrors {
		key := fieldKey(fieldErr.Namespace())
		if _, exists := fields[key]; exists {
			continue
		}
		fields[key] = formatFieldError(fieldErr)
	}
	return fields
}

func formatFieldError(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		switch tag {
		case "oneof":
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		default:
			customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
		}
	}
	return customMessage
}

func fieldKey(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return namespace
}
