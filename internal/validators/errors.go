package validators

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation is the parent of every input validation failure.
	ErrValidation = errors.New("validation failed")
)

// Form messages shown next to the offending field.
const (
	MsgAccountIDTooShort = "Account ID must have atleast 10 characters"
	MsgNameRequired      = "Name is required"
	MsgInvalidEmail      = "Invalid email"
	MsgInvalidRole       = "Role must be Student or Admin"
	MsgInvalidStatus     = "Status must be Ready or Blocked"
	MsgPasswordRequired  = "Password is required"
	MsgMessageRequired   = "Message cannot be empty"
)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Error lists the failed fields in name order.
func (fe FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(fe))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap makes errors.Is(err, ErrValidation) true.
func (fe FieldErrors) Unwrap() error {
	return ErrValidation
}

// Fields extracts the per-field messages from err, or nil when err is not a
// validation failure.
func Fields(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
