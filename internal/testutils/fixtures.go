// Package testutils provides fixture builders and a disposable Redis
// instance for tests.
package testutils

import (
	"encoding/json"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// ActorBuilder assembles test actors. Every actor starts as a character
// with full hit points and a proficiency bonus of 2.
type ActorBuilder struct {
	actor *entities.Actor
}

// NewActorBuilder creates a builder for a test actor.
func NewActorBuilder(id, name string) *ActorBuilder {
	return &ActorBuilder{
		actor: &entities.Actor{
			ID:               id,
			Name:             name,
			Type:             entities.ActorTypeCharacter,
			HP:               entities.HitPoints{Value: 20, Max: 20},
			ProficiencyBonus: 2,
			Abilities:        map[string]entities.AbilityScore{},
			Skills:           map[string]entities.SkillProficiency{},
			Tools:            map[string]float64{},
			Statuses:         map[string]bool{},
		},
	}
}

func (b *ActorBuilder) WithType(t entities.ActorType) *ActorBuilder {
	b.actor.Type = t
	return b
}

func (b *ActorBuilder) WithOwner(userID string) *ActorBuilder {
	if b.actor.Owners == nil {
		b.actor.Owners = map[string]bool{}
	}
	b.actor.Owners[userID] = true
	return b
}

func (b *ActorBuilder) WithHP(value, max int) *ActorBuilder {
	b.actor.HP = entities.HitPoints{Value: value, Max: max}
	return b
}

func (b *ActorBuilder) WithAbility(id string, value, mod int) *ActorBuilder {
	b.actor.Abilities[id] = entities.AbilityScore{Value: value, Mod: mod}
	return b
}

func (b *ActorBuilder) WithSaveProficiency(ability string, multiplier float64) *ActorBuilder {
	score := b.actor.Abilities[ability]
	score.SaveProficiency = multiplier
	b.actor.Abilities[ability] = score
	return b
}

func (b *ActorBuilder) WithSkill(id, ability string, multiplier float64) *ActorBuilder {
	b.actor.Skills[id] = entities.SkillProficiency{Multiplier: multiplier, Ability: ability}
	return b
}

func (b *ActorBuilder) WithTool(id string, multiplier float64) *ActorBuilder {
	b.actor.Tools[id] = multiplier
	return b
}

func (b *ActorBuilder) WithStatus(id string) *ActorBuilder {
	b.actor.Statuses[id] = true
	return b
}

func (b *ActorBuilder) WithImmunity(id string) *ActorBuilder {
	b.actor.ConditionImmunities = append(b.actor.ConditionImmunities, id)
	return b
}

func (b *ActorBuilder) WithCreatureTypes(types ...string) *ActorBuilder {
	b.actor.CreatureTypes = types
	return b
}

func (b *ActorBuilder) WithSpellSlot(id string, value, max, level int, slotType string) *ActorBuilder {
	if b.actor.SpellSlots == nil {
		b.actor.SpellSlots = map[string]entities.SpellSlot{}
	}
	b.actor.SpellSlots[id] = entities.SpellSlot{Value: value, Max: max, Level: level, Type: slotType}
	return b
}

func (b *ActorBuilder) WithCurrency(denomination string, amount int) *ActorBuilder {
	if b.actor.Currency == nil {
		b.actor.Currency = map[string]int{}
	}
	b.actor.Currency[denomination] = amount
	return b
}

func (b *ActorBuilder) WithClass(identifier string, levels, hitDieSize, hitDiceUsed int) *ActorBuilder {
	b.actor.Classes = append(b.actor.Classes, entities.ClassRecord{
		Identifier:  identifier,
		Levels:      levels,
		HitDieSize:  hitDieSize,
		HitDiceUsed: hitDiceUsed,
	})
	return b
}

func (b *ActorBuilder) WithInspiration() *ActorBuilder {
	b.actor.Inspiration = true
	return b
}

// WithWeapon adds an equipped weapon item.
func (b *ActorBuilder) WithWeapon(id, baseItem string) *ActorBuilder {
	b.actor.Items = append(b.actor.Items, &entities.Item{
		ID:       id,
		Name:     baseItem,
		Type:     entities.ItemTypeWeapon,
		BaseItem: baseItem,
		Equipped: true,
		Parent:   b.actor,
		Activities: []*entities.Activity{
			{ID: id + "-atk", Identifier: "attack", Type: "attack"},
		},
	})
	return b
}

// WithItem adds an arbitrary item and sets its parent back-reference.
func (b *ActorBuilder) WithItem(item *entities.Item) *ActorBuilder {
	item.Parent = b.actor
	b.actor.Items = append(b.actor.Items, item)
	return b
}

// WithEffect adds an applied effect and sets its parent back-reference.
func (b *ActorBuilder) WithEffect(effect *entities.ActiveEffect) *ActorBuilder {
	effect.ParentActor = b.actor
	b.actor.Effects = append(b.actor.Effects, effect)
	return b
}

func (b *ActorBuilder) Build() *entities.Actor {
	return b.actor
}

// CreateTestSpell creates a prepared leveled spell item.
func CreateTestSpell(id, name string, level int, school string) *entities.Item {
	return &entities.Item{
		ID:              id,
		Name:            name,
		Type:            entities.ItemTypeSpell,
		Level:           level,
		School:          school,
		PreparationMode: "prepared",
		Activities: []*entities.Activity{
			{ID: id + "-cast", Identifier: "cast", Type: "attack"},
		},
	}
}

// CreateTestScene creates a scene with a 100px, 5ft grid.
func CreateTestScene(id string) *entities.Scene {
	return &entities.Scene{
		ID:           id,
		Name:         "Test Scene",
		GridSize:     100,
		GridDistance: 5,
	}
}

// PlaceToken adds a token for the actor at cell coordinates (cx, cy) and
// wires the scene and actor references.
func PlaceToken(scene *entities.Scene, id string, actor *entities.Actor, cx, cy int, disposition entities.Disposition) *entities.Token {
	token := &entities.Token{
		ID:          id,
		Name:        actor.Name,
		ActorID:     actor.ID,
		Actor:       actor,
		X:           float64(cx) * scene.GridSize,
		Y:           float64(cy) * scene.GridSize,
		Width:       1,
		Height:      1,
		Disposition: disposition,
		Scene:       scene,
	}
	scene.Tokens = append(scene.Tokens, token)
	return token
}

// CreateTestBonus creates an enabled bonus of the given type hosted on doc.
func CreateTestBonus(host entities.Document, id string, typ bonus.Type, name string) *bonus.Bonus {
	b, err := bonus.FromData(bonus.Data{
		ID:      id,
		Name:    name,
		Type:    typ,
		Enabled: true,
	}, host)
	if err != nil {
		panic(err)
	}
	return b
}

// SetRawFilter attaches a raw JSON filter value to a bonus, bypassing
// schema checks.
func SetRawFilter(b *bonus.Bonus, name string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	b.SetFilter(name, json.RawMessage(raw))
}
