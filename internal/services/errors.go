package services

import "errors"

// Common service errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("record already exists")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthorized    = errors.New("unauthorized")
)
