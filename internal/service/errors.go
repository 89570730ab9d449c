package service

import "errors"

// Request-terminal errors returned by the services. The API layer maps each
// one to its HTTP status; anything else is treated as an internal error.
var (
	ErrUnauthorized    = errors.New("Unauthorized")
	ErrUsernameTaken   = errors.New("Username already registered")
	ErrContactNotFound = errors.New("Contact is not found")
	ErrAddressNotFound = errors.New("Address is not found")
)
