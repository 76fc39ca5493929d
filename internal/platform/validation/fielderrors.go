// Package validation maps binding failures to field-level error messages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts a gin binding error into a map of lowercase field
// name to a user-displayable message. A non-validation error (malformed
// JSON, wrong types) yields an empty map; callers should then report a
// generic invalid-request error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

// message renders a single validation failure.
// Tags mirror the binding tags used on the request DTOs.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation on %q", fe.Tag())
	}
}
