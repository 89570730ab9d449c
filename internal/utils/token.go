package utils

import (
	"github.com/google/uuid" // Random token generation
)

// NewSessionToken returns a fresh opaque session token. The token carries
// no user information; it is only meaningful as a database lookup key.
func NewSessionToken() string {
	return uuid.NewString()
}
