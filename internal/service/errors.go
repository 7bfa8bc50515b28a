package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers map these onto HTTP
// status codes; everything else is a 500.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidState         = errors.New("invalid state")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrAlreadyDone          = errors.New("already done")
	ErrUnauthorized         = errors.New("unauthorized")
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}

func insufficient(what string) error {
	return fmt.Errorf("%s: %w", what, ErrInsufficientResource)
}

func alreadyDone(what string) error {
	return fmt.Errorf("%s: %w", what, ErrAlreadyDone)
}

func unauthorized(what string) error {
	return fmt.Errorf("%s: %w", what, ErrUnauthorized)
}
