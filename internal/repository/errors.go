package repository

import "errors"

// Store errors are classified so that services can map them without
// inspecting driver-specific values.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrVersionConflict = errors.New("version conflict")
	ErrUnavailable     = errors.New("store unavailable")
)
