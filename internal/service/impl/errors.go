package impl

import "errors"

var (
	ErrEmptyName      = errors.New("empty first or last name")
	ErrEmptyEmail     = errors.New("empty email")
	ErrEmptyPassword  = errors.New("empty password")
	ErrPasswordLength = errors.New("password too short")
)
