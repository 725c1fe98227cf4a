package bonus_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	"github.com/KirkDiggler/bonus-engine/internal/errors"
	"github.com/KirkDiggler/bonus-engine/internal/filters"
)

func TestNew(t *testing.T) {
	b, err := bonus.New(bonus.TypeAttack, "Bless")
	require.NoError(t, err)
	assert.Equal(t, "Bless", b.Name)
	assert.Equal(t, bonus.TypeAttack, b.Type)
	assert.True(t, b.Enabled)
	assert.NotEmpty(t, b.Img, "every variant gets a default icon")
}

func TestNew_Invalid(t *testing.T) {
	_, err := bonus.New(bonus.Type("initiative"), "Nope")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = bonus.New(bonus.TypeAttack, "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFromData(t *testing.T) {
	actor := &entities.Actor{ID: "hero"}

	b, err := bonus.FromData(bonus.Data{
		ID:      "b1",
		Name:    "Rage",
		Type:    bonus.TypeDamage,
		Enabled: true,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Actor.hero.Bonus.b1", b.UUID())

	_, err = bonus.FromData(bonus.Data{Name: "No ID", Type: bonus.TypeDamage}, actor)
	assert.Error(t, err)

	_, err = bonus.FromData(bonus.Data{ID: "b2", Name: "Bad Type", Type: "nope"}, actor)
	assert.Error(t, err)
}

func TestFromData_NormalizesConsumption(t *testing.T) {
	actor := &entities.Actor{ID: "hero"}

	b, err := bonus.FromData(bonus.Data{
		ID:   "b1",
		Name: "Inverted Band",
		Type: bonus.TypeAttack,
		Consume: bonus.Consumption{
			Enabled: true,
			Type:    bonus.ConsumeHealth,
			Scales:  true,
			Value:   bonus.ConsumptionValue{Min: 10, Max: 2},
		},
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Consume.Value.Min)
	assert.Equal(t, 10, b.Consume.Value.Max)

	effect, err := bonus.FromData(bonus.Data{
		ID:   "b2",
		Name: "Effect Consumer",
		Type: bonus.TypeAttack,
		Consume: bonus.Consumption{
			Enabled: true,
			Type:    bonus.ConsumeEffect,
			Scales:  true,
		},
	}, actor)
	require.NoError(t, err)
	assert.False(t, effect.Consume.Scales, "effect consumption never scales")
}

func TestToData_RestrictsFormulasToVariant(t *testing.T) {
	actor := &entities.Actor{ID: "hero"}
	b, err := bonus.FromData(bonus.Data{
		ID:   "b1",
		Name: "Over-Authored",
		Type: bonus.TypeTest,
		Bonuses: bonus.Formulas{
			Bonus:         "1d4",
			CriticalRange: "19",
			DamageType:    "fire",
		},
	}, actor)
	require.NoError(t, err)

	data := b.ToData(filters.Storable)
	assert.Equal(t, "1d4", data.Bonuses.Bonus)
	assert.Empty(t, data.Bonuses.CriticalRange, "attack-only field dropped for test bonuses")
	assert.Empty(t, data.Bonuses.DamageType, "damage-only field dropped for test bonuses")
}

func TestToData_DropsNonPresentAndForeignFilters(t *testing.T) {
	actor := &entities.Actor{ID: "hero"}
	b, err := bonus.FromData(bonus.Data{
		ID:   "b1",
		Name: "Messy",
		Type: bonus.TypeAttack,
		Filters: map[string]json.RawMessage{
			"statusEffects": json.RawMessage(`["raging"]`),
			"damageTypes":   json.RawMessage(`[]`),
			"throwTypes":    json.RawMessage(`["dex"]`),
			"madeUpFilter":  json.RawMessage(`["x"]`),
		},
	}, actor)
	require.NoError(t, err)

	data := b.ToData(filters.Storable)
	assert.Contains(t, data.Filters, "statusEffects")
	assert.NotContains(t, data.Filters, "damageTypes", "empty value is not present")
	assert.NotContains(t, data.Filters, "throwTypes", "outside the attack schema")
	assert.NotContains(t, data.Filters, "madeUpFilter")
}

func TestToData_RoundTripsPresentFilters(t *testing.T) {
	record := bonus.Data{
		ID:       "b1",
		Sort:     2,
		Name:     "Searing Smite",
		Type:     bonus.TypeDamage,
		Enabled:  true,
		Optional: true,
		Consume: bonus.Consumption{
			Enabled: true,
			Type:    "slots",
			Scales:  true,
			Value:   bonus.ConsumptionValue{Min: 1, Max: 3, Step: 1},
		},
		Aura: bonus.Aura{
			Enabled:     true,
			Range:       "30",
			Disposition: bonus.AuraAlly,
			Blockers:    []string{"unconscious"},
		},
		Bonuses: bonus.Formulas{
			Bonus:      "1d6",
			DamageType: "fire",
			Modifiers: &bonus.Modifiers{
				Reroll: bonus.ModifierReroll{Enabled: true, Formula: "1"},
			},
		},
		Filters: map[string]json.RawMessage{
			"statusEffects":     json.RawMessage(`["raging"]`),
			"baseArmors":        json.RawMessage(`["!padded"]`),
			"healthPercentages": json.RawMessage(`{"value":50,"type":"atMost"}`),
			"damageTypes":       json.RawMessage(`["fire","radiant"]`),
			"customScripts":     json.RawMessage(`"return true"`),
		},
	}

	b, err := bonus.FromData(record, &entities.Actor{ID: "hero"})
	require.NoError(t, err)
	assert.Equal(t, record, b.ToData(filters.Storable))
}

func TestDataClone_IsDeep(t *testing.T) {
	original := bonus.Data{
		ID:   "b1",
		Name: "Cloneable",
		Type: bonus.TypeAttack,
		Filters: map[string]json.RawMessage{
			"statusEffects": json.RawMessage(`["raging"]`),
		},
		Bonuses: bonus.Formulas{
			Modifiers: &bonus.Modifiers{
				Amount: bonus.ModifierValue{Enabled: true, Value: "1"},
			},
		},
	}

	clone := original.Clone()
	clone.Filters["statusEffects"] = json.RawMessage(`["prone"]`)
	clone.Bonuses.Modifiers.Amount.Value = "2"

	assert.Equal(t, json.RawMessage(`["raging"]`), original.Filters["statusEffects"])
	assert.Equal(t, "1", original.Bonuses.Modifiers.Amount.Value)
}

func TestAllowedFilters(t *testing.T) {
	attack := bonus.AllowedFilters(bonus.TypeAttack)
	assert.True(t, attack["statusEffects"])
	assert.True(t, attack["baseWeapons"])
	assert.True(t, attack["attackModes"])
	assert.False(t, attack["throwTypes"])

	hitdie := bonus.AllowedFilters(bonus.TypeHitDie)
	assert.True(t, hitdie["statusEffects"])
	assert.False(t, hitdie["baseWeapons"], "hit-die bonuses are not item-bound")

	test := bonus.AllowedFilters(bonus.TypeTest)
	assert.True(t, test["skillIds"])
	assert.True(t, test["baseTools"])
	assert.False(t, test["spellSchools"])
}

func TestFormulas_HasNumericEffect(t *testing.T) {
	assert.False(t, bonus.Formulas{}.HasNumericEffect())
	assert.True(t, bonus.Formulas{Bonus: "1d4"}.HasNumericEffect())
	assert.True(t, bonus.Formulas{CriticalRange: "19"}.HasNumericEffect())
	assert.False(t, bonus.Formulas{Modifiers: &bonus.Modifiers{}}.HasNumericEffect())
	assert.True(t, bonus.Formulas{Modifiers: &bonus.Modifiers{
		Reroll: bonus.ModifierReroll{Enabled: true},
	}}.HasNumericEffect())
}
