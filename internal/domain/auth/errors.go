package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrMissingIdentity = errors.New("token carries no user identity")
)
