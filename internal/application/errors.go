package application

import "errors"

// Sentinel errors the HTTP and GraphQL layers translate into statuses.
// Repositories report absence as (nil, nil); services turn that into
// ErrNotFound once they know the caller asked for something specific.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)
