package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

func TestUUIDs(t *testing.T) {
	actor := &entities.Actor{ID: "hero"}
	sword := &entities.Item{ID: "sword", Parent: actor}
	effect := &entities.ActiveEffect{ID: "bless", ParentActor: actor}
	nested := &entities.ActiveEffect{ID: "keen", ParentItem: sword}
	scene := &entities.Scene{ID: "cave"}
	token := &entities.Token{ID: "t1", Scene: scene}
	template := &entities.Template{ID: "zone", Scene: scene}

	assert.Equal(t, "Actor.hero", actor.UUID())
	assert.Equal(t, "Actor.hero.Item.sword", sword.UUID())
	assert.Equal(t, "Actor.hero.ActiveEffect.bless", effect.UUID())
	assert.Equal(t, "Actor.hero.Item.sword.ActiveEffect.keen", nested.UUID())
	assert.Equal(t, "Scene.cave", scene.UUID())
	assert.Equal(t, "Scene.cave.Token.t1", token.UUID())
	assert.Equal(t, "Scene.cave.MeasuredTemplate.zone", template.UUID())
}

func TestItem_IsSuppressed(t *testing.T) {
	tests := []struct {
		name string
		item entities.Item
		want bool
	}{
		{
			name: "equipped weapon active",
			item: entities.Item{Type: entities.ItemTypeWeapon, Equipped: true},
			want: false,
		},
		{
			name: "unequipped weapon suppressed",
			item: entities.Item{Type: entities.ItemTypeWeapon},
			want: true,
		},
		{
			name: "feat ignores the equipped toggle",
			item: entities.Item{Type: entities.ItemTypeFeat},
			want: false,
		},
		{
			name: "spell ignores the equipped toggle",
			item: entities.Item{Type: entities.ItemTypeSpell},
			want: false,
		},
		{
			name: "attunement pending suppressed",
			item: entities.Item{Type: entities.ItemTypeEquipment, Equipped: true, Attunement: entities.AttunementRequired},
			want: true,
		},
		{
			name: "attuned item active",
			item: entities.Item{Type: entities.ItemTypeEquipment, Equipped: true, Attunement: entities.AttunementAttuned},
			want: false,
		},
		{
			name: "uncrewed component suppressed",
			item: entities.Item{Type: entities.ItemTypeFeat, RequiresCrew: true},
			want: true,
		},
		{
			name: "crewed component active",
			item: entities.Item{Type: entities.ItemTypeFeat, RequiresCrew: true, Crewed: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.IsSuppressed())
		})
	}
}

func TestItem_RollData_LayersOverOwner(t *testing.T) {
	actor := &entities.Actor{
		ID: "hero",
		Abilities: map[string]entities.AbilityScore{
			"str": {Value: 18, Mod: 4},
		},
		HP: entities.HitPoints{Value: 15, Max: 20},
	}
	staff := &entities.Item{
		ID:     "staff",
		Name:   "Staff",
		Level:  3,
		Parent: actor,
		Uses:   entities.ItemUses{Value: 2, Max: 5},
	}

	data := staff.RollData()

	item, ok := data["item"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, item["level"])

	abilities, ok := data["abilities"].(map[string]any)
	require.True(t, ok)
	str, ok := abilities["str"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4, str["mod"])
}

func TestScene_PixelsPerUnit(t *testing.T) {
	scene := &entities.Scene{GridSize: 100, GridDistance: 5}
	assert.InDelta(t, 20, scene.PixelsPerUnit(), 1e-9)

	degenerate := &entities.Scene{}
	assert.Greater(t, degenerate.PixelsPerUnit(), 0.0, "degenerate grids still convert")
}

func TestToken_Footprint(t *testing.T) {
	assert.Equal(t, 1, (&entities.Token{}).Footprint(), "zero sizes clamp to one cell")
	assert.Equal(t, 2, (&entities.Token{Width: 2, Height: 1}).Footprint())
	assert.Equal(t, 3, (&entities.Token{Width: 2, Height: 3}).Footprint())
}

func TestActor_AppliedEffects(t *testing.T) {
	actor := &entities.Actor{ID: "hero"}
	active := &entities.ActiveEffect{ID: "bless", ParentActor: actor}
	disabled := &entities.ActiveEffect{ID: "off", Disabled: true, ParentActor: actor}
	actor.Effects = []*entities.ActiveEffect{active, disabled}

	applied := actor.AppliedEffects()
	require.Len(t, applied, 1)
	assert.Equal(t, "bless", applied[0].ID)
}
