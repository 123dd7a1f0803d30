package domain

import (
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidField = errors.New("invalid updates")
var ErrFieldNotUpdatable = errors.New("field cannot be updated")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("authentication failed")

// FieldError describes a single entity invariant violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the itemized result of entity validation.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
