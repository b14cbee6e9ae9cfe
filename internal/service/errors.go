package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerIDRequired = errors.New("player id is required")
	ErrUsernameTooLong  = errors.New("username must be at most 32 characters")

	// ErrUsernameTaken surfaces the schema's UNIQUE(username) colliding
	// on first insert. The resolver's conflict target is id, so this is
	// not silently absorbed; it is reported as a validation failure.
	ErrUsernameTaken = errors.New("username is already taken by another player")
)
