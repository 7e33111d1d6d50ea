package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrSessionOpen  = errors.New("pos session is still open")
	ErrDuplicate    = errors.New("duplicate resource")
)
