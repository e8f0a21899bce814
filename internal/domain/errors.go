package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInsufficientResource = errors.New("insufficient resource")

	// ErrCorruptValue marks a stored value outside its closed set.
	ErrCorruptValue = errors.New("data integrity error")
)

var (
	ErrInvalidTransition  = fmt.Errorf("%w: invalid status transition", ErrValidation)
	ErrPhylumNotAllowed   = fmt.Errorf("%w: phylum not allowed", ErrValidation)
	ErrUnsupportedType    = fmt.Errorf("%w: unsupported file type", ErrValidation)
	ErrTooLarge           = fmt.Errorf("%w: file too large", ErrValidation)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInsufficientPoints = fmt.Errorf("%w: insufficient points", ErrInsufficientResource)
	ErrOutOfStock         = fmt.Errorf("%w: out of stock", ErrInsufficientResource)
)

// AllowedPhyla are the only phyla a report or taxonomy lookup may carry.
var AllowedPhyla = map[string]struct{}{
	"Chordata":      {},
	"Arthropoda":    {},
	"Mollusca":      {},
	"Cnidaria":      {},
	"Echinodermata": {},
}

func IsPhylumAllowed(phylum string) bool {
	_, ok := AllowedPhyla[phylum]
	return ok
}
