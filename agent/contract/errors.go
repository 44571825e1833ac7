package contract

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrBackend      = errors.New("database error")
	ErrTransport    = errors.New("transport failed")
	ErrToolNotFound = errors.New("tool not found")
)
