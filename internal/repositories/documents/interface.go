// Package documents implements the document store the engine reads host
// documents from and writes resource deductions to. Actors and scenes are
// the persistence roots; items, effects, tokens and templates live nested
// inside them, so every deduction is one atomic root-document write.
package documents

//go:generate mockgen -destination=mock/mock.go -package=mockdocuments -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// Repository is the engine's persistence contract.
type Repository interface {
	// GetActor retrieves an actor with items and effects hydrated.
	GetActor(ctx context.Context, id string) (*entities.Actor, error)

	// SaveActor persists the full actor document.
	SaveActor(ctx context.Context, actor *entities.Actor) error

	// GetScene retrieves a scene with tokens, templates, walls and each
	// token's actor hydrated.
	GetScene(ctx context.Context, id string) (*entities.Scene, error)

	// SaveScene persists the full scene document.
	SaveScene(ctx context.Context, scene *entities.Scene) error

	// Resolve maps a dotted document UUID ("Actor.a1.Item.i2") to its
	// document. Broken references return a NotFound error.
	Resolve(ctx context.Context, uuid string) (entities.Document, error)
}
