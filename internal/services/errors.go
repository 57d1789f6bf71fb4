package services

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrForbidden       = errors.New("not allowed")
	ErrAlreadyExists   = errors.New("already exists")
)
