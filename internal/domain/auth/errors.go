package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid or missing token")
	ErrMissingIdentity = errors.New("token carries no employee identity")
)
