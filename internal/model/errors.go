package model

import "errors"

var (
	// Credential related errors
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password too long")

	// Store related errors
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// Token related errors
	ErrMissingToken = errors.New("token not present")
	ErrInvalidToken = errors.New("invalid token")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal failure")
)
