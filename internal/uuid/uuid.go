// Package uuid issues the instance ids for guild-scoped creatures and regions
// behind an interface, so tests can pin ids deterministically.
package uuid

import (
	"github.com/google/uuid"
)

// Generator produces unique instance ids
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
