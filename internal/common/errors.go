// Package common defines shared constants and sentinel errors used across
// the chatlite data core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository/lookup errors.
	ErrorNotFound = errors.New("not found")

	// Registration and login errors.
	ErrorDuplicateEmail     = errors.New("email already registered")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Social graph errors.
	ErrorDuplicateContact = errors.New("contact already exists")
	ErrorSelfContact      = errors.New("cannot add yourself as a contact")

	// Message status machine errors.
	ErrorInvalidTransition = errors.New("invalid status transition")

	// Store-level errors. A failed write means the in-memory side effect
	// must not be considered durable.
	ErrorPersistence = errors.New("persistence failure")
)
