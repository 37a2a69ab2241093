package webprint

import (
	"fmt"

	"github.com/ghettovoice/webprint/internal/errorutil"
)

// Error represents a webprint sentinel error.
// See [errorutil.Error].
type Error = errorutil.Error

// Validation errors.
const (
	ErrInvalidArgument            = errorutil.ErrInvalidArgument
	ErrMissingRequired      Error = "missing required field"
	ErrConflictingFields    Error = "conflicting fields"
	ErrUnsupportedValueType Error = "unsupported value type"
	ErrInvalidURI           Error = "invalid print URI"
)

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}

// MissingRequiredError is returned when neither field of an exclusive pair is set.
// It matches [ErrMissingRequired] with [errors.Is].
type MissingRequiredError struct {
	Pair   string    // pair name, e.g. "file source"
	Fields [2]string // pair members
}

func (e *MissingRequiredError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("missing %s: either '%s' or '%s' must be provided", e.Pair, e.Fields[0], e.Fields[1])
}

func (*MissingRequiredError) Unwrap() error { return ErrMissingRequired }

// ConflictingFieldsError is returned when both fields of an exclusive pair are set.
// It matches [ErrConflictingFields] with [errors.Is].
type ConflictingFieldsError struct {
	Fields [2]string
}

func (e *ConflictingFieldsError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: only one of '%s' or '%s' can be provided, not both", ErrConflictingFields, e.Fields[0], e.Fields[1])
}

func (*ConflictingFieldsError) Unwrap() error { return ErrConflictingFields }

// UnsupportedValueTypeError is returned when a field holds a value
// that is not a string, number, boolean or absent.
// It matches [ErrUnsupportedValueType] with [errors.Is].
type UnsupportedValueTypeError struct {
	Field string
	Type  string // Go type of the offending value
}

func (e *UnsupportedValueTypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: field '%s' holds %s", ErrUnsupportedValueType, e.Field, e.Type)
}

func (*UnsupportedValueTypeError) Unwrap() error { return ErrUnsupportedValueType }
