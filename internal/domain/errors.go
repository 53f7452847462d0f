package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidProduct      = errors.New("invalid product identity")
	ErrUnauthorized        = errors.New("provider: unauthorized")
	ErrForbidden           = errors.New("provider: forbidden")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrLocked              = errors.New("refresh already in progress")
)
