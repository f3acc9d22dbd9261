package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist,
	// including a clock-out with no open session to close.
	ErrNotFound = errors.New("application: not found")
	// ErrConflict is returned when a write collides with existing state, such
	// as a clock-in while a session is already open or a duplicate account.
	ErrConflict = errors.New("application: conflict")
	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
