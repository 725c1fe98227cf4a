package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
)

const (
	actorKeyPrefix = "bonus-engine:actor:"
	sceneKeyPrefix = "bonus-engine:scene:"
)

// redisRepo implements Repository using Redis. Documents are stored as
// JSON blobs keyed by kind and id.
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig configures the Redis-backed repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed document repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	return &redisRepo{client: cfg.Client}
}

// NewRedis creates a Redis-backed repository with default configuration.
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func actorKey(id string) string { return actorKeyPrefix + id }
func sceneKey(id string) string { return sceneKeyPrefix + id }

// GetActor retrieves an actor by ID.
func (r *redisRepo) GetActor(ctx context.Context, id string) (*entities.Actor, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("actor ID is required")
	}

	raw, err := r.client.Get(ctx, actorKey(id)).Result()
	if err == redis.Nil {
		return nil, engerr.NotFoundf("actor '%s' not found", id).WithMeta("actor_id", id)
	}
	if err != nil {
		return nil, engerr.Wrapf(err, "failed to get actor '%s'", id)
	}

	var actor entities.Actor
	if err := json.Unmarshal([]byte(raw), &actor); err != nil {
		return nil, engerr.Wrap(err, "failed to unmarshal actor")
	}
	hydrateActor(&actor)
	return &actor, nil
}

// SaveActor persists an actor.
func (r *redisRepo) SaveActor(ctx context.Context, actor *entities.Actor) error {
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

	if err := r.client.Set(ctx, actorKey(actor.ID), raw, 0).Err(); err != nil {
		return engerr.Wrapf(err, "failed to save actor '%s'", actor.ID)
	}
	return nil
}

// GetScene retrieves a scene and hydrates each token's actor, fetching
// the actors concurrently.
func (r *redisRepo) GetScene(ctx context.Context, id string) (*entities.Scene, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("scene ID is required")
	}

	raw, err := r.client.Get(ctx, sceneKey(id)).Result()
	if err == redis.Nil {
		return nil, engerr.NotFoundf("scene '%s' not found", id).WithMeta("scene_id", id)
	}
	if err != nil {
		return nil, engerr.Wrapf(err, "failed to get scene '%s'", id)
	}

	var scene entities.Scene
	if err := json.Unmarshal([]byte(raw), &scene); err != nil {
		return nil, engerr.Wrap(err, "failed to unmarshal scene")
	}
	hydrateScene(&scene)

	g, gctx := errgroup.WithContext(ctx)
	for _, token := range scene.Tokens {
		if token.ActorID == "" {
			continue
		}
		token := token
		g.Go(func() error {
			actor, err := r.GetActor(gctx, token.ActorID)
			if err != nil {
				if engerr.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("hydrating token '%s': %w", token.ID, err)
			}
			token.Actor = actor
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, engerr.Wrap(err, "failed to hydrate scene tokens")
	}
	return &scene, nil
}

// SaveScene persists a scene.
func (r *redisRepo) SaveScene(ctx context.Context, scene *entities.Scene) error {
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

	if err := r.client.Set(ctx, sceneKey(scene.ID), raw, 0).Err(); err != nil {
		return engerr.Wrapf(err, "failed to save scene '%s'", scene.ID)
	}
	return nil
}

// Resolve maps a dotted document UUID to its document.
func (r *redisRepo) Resolve(ctx context.Context, uuid string) (entities.Document, error) {
	return resolveWith(ctx, r, uuid)
}
