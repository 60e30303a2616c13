// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned by Login for both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when a bearer token cannot be resolved to a user.
	// It does not distinguish a bad token from a missing user.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrInvalidPassword is returned when a password does not meet the length requirements.
	ErrInvalidPassword = errors.New("invalid password")
)
