package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrOwnerAccessRequired = errors.New("owner access required")
	ErrInvalidRole         = errors.New("invalid role")
)
