package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"mimetypes":   "{field} must be one of the allowed content types: {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

// message renders every violation, one clause per failing field.
func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		parts := make([]string, 0, len(valErrors))

		for _, valErr := range valErrors {
			errStr := messages[valErr.Tag()]
			if errStr == "" {
				parts = append(parts, valErr.Error())

				continue
			}

			errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
			errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

			parts = append(parts, errStr)
		}

		return strings.Join(parts, "; ")
	}

	return err.Error()
}
