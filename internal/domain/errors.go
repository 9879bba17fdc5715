package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrToggleInFlight  = errors.New("status update already in progress")
	ErrReadOnly        = errors.New("data source is read-only")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

func invalidProduct(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProduct, reason)
}

func invalidSettings(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, reason)
}
