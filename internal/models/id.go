package models

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a random opaque identifier of 16 hex characters.
// Uniqueness is probabilistic; callers do not check for collisions.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:8])
}
