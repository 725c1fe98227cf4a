package documents

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
)

// InMemoryRepository keeps documents in process memory. Useful for tests
// and for hosts that feed the engine a transient battlefield snapshot.
// Documents are stored as JSON so reads hand out independent copies.
type InMemoryRepository struct {
	mu     sync.RWMutex
	actors map[string][]byte
	scenes map[string][]byte
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		actors: make(map[string][]byte),
		scenes: make(map[string][]byte),
	}
}

// GetActor retrieves an actor by ID.
func (r *InMemoryRepository) GetActor(ctx context.Context, id string) (*entities.Actor, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("actor ID is required")
	}

	r.mu.RLock()
	raw, exists := r.actors[id]
	r.mu.RUnlock()
	if !exists {
		return nil, engerr.NotFoundf("actor '%s' not found", id).WithMeta("actor_id", id)
	}

	var actor entities.Actor
	if err := json.Unmarshal(raw, &actor); err != nil {
		return nil, engerr.Wrap(err, "failed to unmarshal actor")
	}
	hydrateActor(&actor)
	return &actor, nil
}

// SaveActor persists an actor.
func (r *InMemoryRepository) SaveActor(ctx context.Context, actor *entities.Actor) error {
	if actor == nil {
		return engerr.InvalidArgument("actor cannot be nil")
	}
	if actor.ID == "" {
		return engerr.InvalidArgument("actor ID is required")
	}

	raw, err := json.Marshal(actor)
	if err != nil {
		return engerr.Wrap(err, "failed to marshal actor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors[actor.ID] = raw
	return nil
}

// GetScene retrieves a scene by ID with token actors attached.
func (r *InMemoryRepository) GetScene(ctx context.Context, id string) (*entities.Scene, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("scene ID is required")
	}

	r.mu.RLock()
	raw, exists := r.scenes[id]
	r.mu.RUnlock()
	if !exists {
		return nil, engerr.NotFoundf("scene '%s' not found", id).WithMeta("scene_id", id)
	}

	var scene entities.Scene
	if err := json.Unmarshal(raw, &scene); err != nil {
		return nil, engerr.Wrap(err, "failed to unmarshal scene")
	}
	hydrateScene(&scene)

	for _, token := range scene.Tokens {
		if token.ActorID == "" {
			continue
		}
		actor, err := r.GetActor(ctx, token.ActorID)
		if err != nil {
			if engerr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		token.Actor = actor
	}
	return &scene, nil
}

// SaveScene persists a scene.
func (r *InMemoryRepository) SaveScene(ctx context.Context, scene *entities.Scene) error {
	if scene == nil {
		return engerr.InvalidArgument("scene cannot be nil")
	}
	if scene.ID == "" {
		return engerr.InvalidArgument("scene ID is required")
	}

	raw, err := json.Marshal(scene)
	if err != nil {
		return engerr.Wrap(err, "failed to marshal scene")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes[scene.ID] = raw
	return nil
}

// Resolve maps a dotted document UUID to its document.
func (r *InMemoryRepository) Resolve(ctx context.Context, uuid string) (entities.Document, error) {
	return resolveWith(ctx, r, uuid)
}
