package domain

import "errors"

var (
	// ErrInvalidURL means the user-supplied string is not a usable URL.
	// It is fatal to the save operation: no enrichment, no store write.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNotFound is returned by the store when a record does not exist
	// (or does not belong to the requesting user).
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
