package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound  = errors.New("event not found")
	ErrBadRecord = errors.New("malformed event record")
)
