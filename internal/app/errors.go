package app

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists indicates that the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidToken indicates a missing, malformed, forged or expired token.
	ErrInvalidToken = errors.New("token is not valid")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDestinationNotFound indicates that the destination does not exist.
	ErrDestinationNotFound = errors.New("destination not found")
	// ErrForbidden indicates that the destination belongs to another user.
	ErrForbidden = errors.New("user not authorized")
	// ErrItemNotFound indicates that the packing item does not exist.
	ErrItemNotFound = errors.New("item not found")
)

// ValidationError is a user input problem, reported back verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
