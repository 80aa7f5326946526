package service

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrMissingField       = errors.New("missing field")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrInvalidStatus      = errors.New("invalid status")
)
