package crud

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance generated validation bindings
// dispatch to. Rules live in the `validate` struct tags the types renderer
// emits on the DTOs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator exposes the shared validator for callers that need to register
// custom rules.
func Validator() *validator.Validate { return validate }

// ValidateStruct validates a DTO against its struct tags.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
