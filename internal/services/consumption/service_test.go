package consumption

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
	"github.com/KirkDiggler/bonus-engine/internal/repositories/documents"
	"github.com/KirkDiggler/bonus-engine/internal/testutils"
)

type ConsumptionTestSuite struct {
	suite.Suite
	repo *documents.InMemoryRepository
	svc  Service
	ctx  context.Context
}

func (s *ConsumptionTestSuite) SetupTest() {
	s.repo = documents.NewInMemoryRepository()
	s.svc = NewService(&ServiceConfig{Repository: s.repo})
	s.ctx = context.Background()
}

func TestConsumptionTestSuite(t *testing.T) {
	suite.Run(t, new(ConsumptionTestSuite))
}

// consumingBonus builds a bonus on host with the given consumption config.
func consumingBonus(host entities.Document, c bonus.Consumption) *bonus.Bonus {
	b := testutils.CreateTestBonus(host, "cb1", bonus.TypeDamage, "Consuming")
	b.Optional = true
	b.Consume = c
	b.Consume.Normalize()
	return b
}

func (s *ConsumptionTestSuite) TestIsValidConsumption() {
	actor := testutils.NewActorBuilder("hero", "Hero").Build()
	potion := &entities.Item{
		ID: "potion", Type: entities.ItemTypeConsumable,
		Uses: entities.ItemUses{Value: 3, Max: 3},
	}
	actor.Items = append(actor.Items, potion)
	potion.Parent = actor

	// Uses on a limited-uses item with a positive minimum.
	s.True(s.svc.IsValidConsumption(consumingBonus(potion, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeUses, Value: bonus.ConsumptionValue{Min: 1},
	})))
	// Zero minimum fails.
	s.False(s.svc.IsValidConsumption(consumingBonus(potion, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeUses,
	})))
	// Uses on an actor host has no item to decrement.
	s.False(s.svc.IsValidConsumption(consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeUses, Value: bonus.ConsumptionValue{Min: 1},
	})))
	// Currency needs a recognized denomination.
	s.True(s.svc.IsValidConsumption(consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeCurrency, Subtype: "gp",
		Value: bonus.ConsumptionValue{Min: 5},
	})))
	s.False(s.svc.IsValidConsumption(consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeCurrency, Subtype: "doubloons",
		Value: bonus.ConsumptionValue{Min: 5},
	})))
	// Disabled consumption is trivially valid.
	s.True(s.svc.IsValidConsumption(consumingBonus(actor, bonus.Consumption{})))
	// Unknown type fails.
	s.False(s.svc.IsValidConsumption(consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: "mana", Value: bonus.ConsumptionValue{Min: 1},
	})))
}

func (s *ConsumptionTestSuite) TestResourceExhaustionExcludesBonus() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").Build()
	wand := &entities.Item{
		ID: "wand", Type: entities.ItemTypeConsumable,
		Uses: entities.ItemUses{Value: 0, Max: 3},
	}
	actor.Items = append(actor.Items, wand)
	wand.Parent = actor

	b := consumingBonus(wand, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeUses, Value: bonus.ConsumptionValue{Min: 1},
	})

	// Schema-wise fine, but the pool is empty.
	s.True(s.svc.IsValidConsumption(b))
	s.False(s.svc.CanActorConsume(b, actor, "user-1"))
	s.Empty(s.svc.ScalingOptions(b, actor))
}

func (s *ConsumptionTestSuite) TestOwnershipRequired() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").WithInspiration().Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeInspiration,
	})

	s.True(s.svc.CanActorConsume(b, actor, "user-1"))
	s.False(s.svc.CanActorConsume(b, actor, "stranger"))
}

func (s *ConsumptionTestSuite) TestScalingOptionsStepped() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithCurrency("gp", 43).Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeCurrency, Subtype: "gp", Scales: true,
		Value: bonus.ConsumptionValue{Min: 10, Max: 50, Step: 10},
	})

	opts := s.svc.ScalingOptions(b, actor)
	s.Equal([]Option{{Amount: 10}, {Amount: 20}, {Amount: 30}, {Amount: 40}}, opts)
}

func (s *ConsumptionTestSuite) TestSlotOptionsPreferNonStandard() {
	actor := testutils.NewActorBuilder("hero", "Hero").
		WithSpellSlot("spell2", 1, 3, 2, "standard").
		WithSpellSlot("spell3", 2, 3, 3, "standard").
		WithSpellSlot("pact", 1, 2, 3, "pact").
		Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeSlots, Scales: true,
		Value: bonus.ConsumptionValue{Min: 2, Max: 5},
	})

	opts := s.svc.ScalingOptions(b, actor)
	s.Equal([]Option{{Amount: 2, Key: "spell2"}, {Amount: 3, Key: "pact"}}, opts)
}

func (s *ConsumptionTestSuite) TestHitDiceOrdering() {
	actor := testutils.NewActorBuilder("hero", "Hero").
		WithClass("fighter", 3, 10, 0).
		WithClass("wizard", 2, 6, 0).
		Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeHitDice, Subtype: bonus.HitDiceSmallest, Scales: true,
		Value: bonus.ConsumptionValue{Min: 1, Max: 3},
	})
	opts := s.svc.ScalingOptions(b, actor)
	s.Equal([]Option{{Amount: 1}, {Amount: 2}, {Amount: 3}}, opts)

	// Specific denomination is bounded by that die size's availability.
	b = consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeHitDice, Subtype: "d6", Scales: true,
		Value: bonus.ConsumptionValue{Min: 1, Max: 4},
	})
	opts = s.svc.ScalingOptions(b, actor)
	s.Equal([]Option{{Amount: 1}, {Amount: 2}}, opts)
}

func (s *ConsumptionTestSuite) TestConsumeUsesWithAutoDestroy() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").Build()
	potion := &entities.Item{
		ID: "potion", Type: entities.ItemTypeConsumable,
		Uses: entities.ItemUses{Value: 1, Max: 1, AutoDestroy: true},
	}
	actor.Items = append(actor.Items, potion)
	potion.Parent = actor

	b := consumingBonus(potion, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeUses, Value: bonus.ConsumptionValue{Min: 1},
	})
	b.Bonuses.Bonus = "1d4"

	out, err := s.svc.Consume(s.ctx, &ConsumeInput{
		Bonus: b, Actor: actor, UserID: "user-1", Amount: 1, DestroyOnExhaust: true,
	})
	s.Require().NoError(err)
	s.True(out.ItemDeleted)
	s.Equal("1d4", out.Formula)
	s.Empty(actor.Items)

	// The deduction was persisted atomically with the actor document.
	saved, err := s.repo.GetActor(s.ctx, "hero")
	s.Require().NoError(err)
	s.Empty(saved.Items)
}

func (s *ConsumptionTestSuite) TestConsumeWithoutDestroyConfirmationKeepsItem() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").Build()
	potion := &entities.Item{
		ID: "potion", Type: entities.ItemTypeConsumable,
		Uses: entities.ItemUses{Value: 1, Max: 1, AutoDestroy: true},
	}
	actor.Items = append(actor.Items, potion)
	potion.Parent = actor

	b := consumingBonus(potion, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeUses, Value: bonus.ConsumptionValue{Min: 1},
	})

	_, err := s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 1})
	s.Require().NoError(err)
	s.Len(actor.Items, 1)
	s.Equal(0, potion.Uses.Value)
}

func (s *ConsumptionTestSuite) TestConsumeHealthDrainsTempFirst() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").WithHP(20, 20).Build()
	actor.HP.Temp = 5

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeHealth, Value: bonus.ConsumptionValue{Min: 8},
	})

	_, err := s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 8})
	s.Require().NoError(err)
	s.Equal(0, actor.HP.Temp)
	s.Equal(17, actor.HP.Value)
}

func (s *ConsumptionTestSuite) TestConsumeSlotScalesFormula() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").
		WithSpellSlot("spell1", 2, 4, 1, "standard").
		WithSpellSlot("spell3", 1, 2, 3, "standard").
		Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeSlots, Scales: true, Formula: "1d6",
		Value: bonus.ConsumptionValue{Min: 1, Max: 5},
	})
	b.Bonuses.Bonus = "1d6"

	out, err := s.svc.Consume(s.ctx, &ConsumeInput{
		Bonus: b, Actor: actor, UserID: "user-1", Amount: 3, Key: "spell3",
	})
	s.Require().NoError(err)
	s.Equal(2, out.Scale)
	s.Equal("1d6 + 2 * (1d6)", out.Formula)
	s.Equal(0, actor.SpellSlots["spell3"].Value)
	s.Equal(2, actor.SpellSlots["spell1"].Value)
}

func (s *ConsumptionTestSuite) TestConsumeHitDiceSpreadsAcrossClasses() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").
		WithClass("fighter", 3, 10, 2).
		WithClass("wizard", 2, 6, 0).
		Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeHitDice, Subtype: bonus.HitDiceSmallest, Scales: true,
		Value: bonus.ConsumptionValue{Min: 1, Max: 3},
	})

	_, err := s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 3})
	s.Require().NoError(err)
	// Smallest first: both wizard d6 dice, then one fighter d10.
	s.Equal(2, actor.Classes[1].HitDiceUsed)
	s.Equal(3, actor.Classes[0].HitDiceUsed)
}

func (s *ConsumptionTestSuite) TestConsumeEffectDeletesHost() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").
		WithEffect(&entities.ActiveEffect{ID: "inspired", Name: "Inspired"}).
		Build()

	b := consumingBonus(actor.Effects[0], bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeEffect,
	})

	out, err := s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 1})
	s.Require().NoError(err)
	s.True(out.EffectDeleted)
	s.Empty(actor.Effects)
}

func (s *ConsumptionTestSuite) TestConsumeInspiration() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").WithInspiration().Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeInspiration,
	})

	_, err := s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 1})
	s.Require().NoError(err)
	s.False(actor.Inspiration)

	// Spent means unavailable.
	_, err = s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 1})
	s.True(engerr.IsPermissionDenied(err))
}

func (s *ConsumptionTestSuite) TestConsumeIllegalAmountRejected() {
	actor := testutils.NewActorBuilder("hero", "Hero").WithOwner("user-1").WithCurrency("gp", 100).Build()

	b := consumingBonus(actor, bonus.Consumption{
		Enabled: true, Type: bonus.ConsumeCurrency, Subtype: "gp", Scales: true,
		Value: bonus.ConsumptionValue{Min: 10, Max: 50, Step: 10},
	})

	_, err := s.svc.Consume(s.ctx, &ConsumeInput{Bonus: b, Actor: actor, UserID: "user-1", Amount: 15})
	s.True(engerr.IsInvalidArgument(err))
}

// Scaling bounds: every enumerated amount v satisfies min <= v <= max and
// (v - min) % step == 0.
func TestScalingOptionBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		min := rapid.IntRange(1, 50).Draw(t, "min")
		max := rapid.IntRange(min, 100).Draw(t, "max")
		step := rapid.IntRange(1, 10).Draw(t, "step")
		available := rapid.IntRange(0, 150).Draw(t, "available")

		actor := testutils.NewActorBuilder("hero", "Hero").WithCurrency("gp", available).Build()
		b := consumingBonus(actor, bonus.Consumption{
			Enabled: true, Type: bonus.ConsumeCurrency, Subtype: "gp", Scales: true,
			Value: bonus.ConsumptionValue{Min: min, Max: max, Step: step},
		})

		svc := NewService(&ServiceConfig{Repository: documents.NewInMemoryRepository()})
		for _, opt := range svc.ScalingOptions(b, actor) {
			if opt.Amount < min || opt.Amount > max {
				t.Fatalf("amount %d outside [%d, %d]", opt.Amount, min, max)
			}
			if (opt.Amount-min)%step != 0 {
				t.Fatalf("amount %d does not step from %d by %d", opt.Amount, min, step)
			}
			if opt.Amount > available {
				t.Fatalf("amount %d exceeds available %d", opt.Amount, available)
			}
		}
	})
}
