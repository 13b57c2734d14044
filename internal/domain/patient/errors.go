package patient

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the repository error taxonomy. Every backing
// store maps its native failures onto these so callers can branch with
// errors.Is regardless of which store is configured.
var (
	// ErrNotFound means no patient has the requested id.
	ErrNotFound = errors.New("patient not found")

	// ErrPermission means the backing call was rejected as unauthorized
	// (401/403 semantics).
	ErrPermission = errors.New("permission denied")

	// ErrConnection means a transport or backend failure not otherwise
	// classified.
	ErrConnection = errors.New("connection failed")
)

// FieldError is a single failed validation check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports locally checked constraint failures. It is
// raised before a record reaches the backing store, never round-tripped.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Add records a failed check for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Empty reports whether any check failed.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// connectionErr wraps a transport-level failure into the taxonomy while
// keeping the underlying cause in the message.
func connectionErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrConnection, err)
}
