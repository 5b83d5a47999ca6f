package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrUnknownView = errors.New("unknown view")
)

// Context keys for error values
const (
	ViewKey = "view"
)
