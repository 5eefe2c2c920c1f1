// Package common defines shared constants, sentinel errors and small helpers
// used by the postit service and the cleandb sweeper. Callers should match
// errors with errors.Is; every specific error wraps one of the category
// errors below.
package common

import (
	"errors"
	"fmt"
)

// Error categories.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Validation errors.
var (
	ErrMalformedSignature = fmt.Errorf("%w: invalid signature format (base 10)", ErrValidation)
	ErrEmptyText          = fmt.Errorf("%w: message can not be empty", ErrValidation)
	ErrInvalidKeyFormat   = fmt.Errorf("%w: invalid RSA key format", ErrValidation)
	ErrMissingName        = fmt.Errorf("%w: please supply a username", ErrValidation)
)

// Account errors.
var (
	ErrUnknownAccount = fmt.Errorf("%w: a user with that name does not exist", ErrNotFound)
	ErrDuplicateName  = fmt.Errorf("%w: a user with that name already exists", ErrConflict)
)

// Authentication errors. Every failed verification yields ErrInvalidSignature.
var (
	ErrInvalidSignature = fmt.Errorf("%w: invalid signature", ErrUnauthorized)
	ErrNotAuthenticated = fmt.Errorf("%w: not logged in", ErrUnauthorized)
)
