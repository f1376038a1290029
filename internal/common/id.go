package common

import "github.com/google/uuid"

// NewID returns an opaque unique identifier for a new record. UUIDv7 combines
// a millisecond timestamp with random bits, so ids sort roughly by creation
// time and collisions are negligible. If v7 generation fails (entropy
// exhaustion), a random v4 is used instead.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
