package domain

import "errors"

// Store-level errors. Repositories translate driver errors into these so
// callers never inspect driver types.
var (
	ErrDuplicateEmail = errors.New("email already in use")
	ErrNotFound       = errors.New("account not found")
)
