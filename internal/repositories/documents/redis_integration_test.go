//go:build integration
// +build integration

package documents_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
	"github.com/KirkDiggler/bonus-engine/internal/repositories/documents"
	"github.com/KirkDiggler/bonus-engine/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)

	repo := documents.NewRedisRepository(&documents.RedisRepoConfig{
		Client: client,
	})

	ctx := context.Background()

	t.Run("save and retrieve actor", func(t *testing.T) {
		actor := testutils.NewActorBuilder("int-actor-1", "Aramis").
			WithAbility("str", 16, 3).
			WithWeapon("int-item-1", "longsword").
			Build()

		err := repo.SaveActor(ctx, actor)
		require.NoError(t, err)

		got, err := repo.GetActor(ctx, actor.ID)
		require.NoError(t, err)
		assert.Equal(t, actor.Name, got.Name)
		require.Len(t, got.Items, 1)
		assert.Same(t, got, got.Items[0].Parent)
	})

	t.Run("scene round trip hydrates token actors", func(t *testing.T) {
		actor := testutils.NewActorBuilder("int-actor-2", "Porthos").Build()
		require.NoError(t, repo.SaveActor(ctx, actor))

		scene := &entities.Scene{
			ID:           "int-scene-1",
			GridSize:     100,
			GridDistance: 5,
			Tokens: []*entities.Token{
				{ID: "int-token-1", ActorID: actor.ID, X: 100, Y: 100, Width: 1, Height: 1},
			},
		}
		require.NoError(t, repo.SaveScene(ctx, scene))

		got, err := repo.GetScene(ctx, scene.ID)
		require.NoError(t, err)
		require.Len(t, got.Tokens, 1)
		require.NotNil(t, got.Tokens[0].Actor)
		assert.Equal(t, "Porthos", got.Tokens[0].Actor.Name)
	})

	t.Run("resolve dotted uuid", func(t *testing.T) {
		actor := testutils.NewActorBuilder("int-actor-3", "Athos").
			WithWeapon("int-item-3", "rapier").
			Build()
		require.NoError(t, repo.SaveActor(ctx, actor))

		doc, err := repo.Resolve(ctx, "Actor.int-actor-3.Item.int-item-3")
		require.NoError(t, err)
		assert.Equal(t, entities.KindItem, doc.DocumentKind())
	})
}
