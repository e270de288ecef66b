package domain

import "errors"

var (
	ErrNilUser          = errors.New("user is required")
	ErrInvalidUser      = errors.New("user name and email cannot be empty")
	ErrUserAlreadyExist = errors.New("user already exists")
)
