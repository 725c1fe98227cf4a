// uuid simple generator that allows mocking
package uuid

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating bonus and document IDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// FixedGenerator returns a fixed sequence of IDs, for deterministic tests.
type FixedGenerator struct {
	IDs  []string
	next int
}

// New returns the next fixed ID, cycling when the sequence is exhausted.
func (g *FixedGenerator) New() string {
	if len(g.IDs) == 0 {
		return "fixed-id"
	}
	id := g.IDs[g.next%len(g.IDs)]
	g.next++
	return id
}
