package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrConflict           = errors.New("conflict")
	ErrStorage            = errors.New("storage failure")

	// Returned by blob stores when the object is already gone.
	ErrBlobNotFound = errors.New("blob not found")
)
