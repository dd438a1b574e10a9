package message

import (
	"fmt"

	"github.com/simcesplatform/domain-messages/errors"
)

// Validation error codes, standardized across the platform so consumers and
// tooling can map failures to specific schema rules:
//   - "required": field is required but missing (or required and empty)
//   - "type": value cannot be coerced to the declared kind
//   - "min": numeric value below the declared minimum
//   - "max": numeric value above the declared maximum
//   - "enum": value not in the declared allowed set
//   - "unknown": document carries a field the schema does not declare
const (
	CodeRequired = "required"
	CodeType     = "type"
	CodeMin      = "min"
	CodeMax      = "max"
	CodeEnum     = "enum"
	CodeUnknown  = "unknown"
)

// ValidationError reports a single field's failure against its attribute
// declaration. It carries the offending field and the violated rule, suitable
// for direct surfacing to an operator or log.
type ValidationError struct {
	Field   string `json:"field"`   // Name of the field that failed validation
	Message string `json:"message"` // Human-readable error message
	Code    string `json:"code"`    // Machine-readable error code (see above)
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Unwrap maps the error code onto the platform's validation error variables
// so callers can branch on the violated rule with errors.Is.
func (e *ValidationError) Unwrap() error {
	switch e.Code {
	case CodeRequired:
		return errors.ErrMissingRequiredField
	case CodeType:
		return errors.ErrTypeMismatch
	case CodeMin, CodeMax:
		return errors.ErrOutOfRange
	case CodeEnum:
		return errors.ErrInvalidEnumValue
	case CodeUnknown:
		return errors.ErrUnknownField
	default:
		return nil
	}
}

func newValidationError(field, code, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}
