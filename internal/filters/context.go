// Package filters implements the predicate framework: a name-keyed
// registry of filter descriptors, the shared include/exclude set helper,
// and the canonical predicate set. Every predicate treats an empty or
// unset value as "no constraint" and never errors on missing context.
package filters

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	"github.com/KirkDiggler/bonus-engine/internal/scripting"
)

// Details carries the roll-kind specific inputs predicates dispatch on.
type Details struct {
	// AbilityID is the ability powering the check or save ("str", "dex"...).
	AbilityID string
	// SkillID is set for skill checks.
	SkillID string
	// ToolID is set for tool checks.
	ToolID string
	// ThrowType is set for saving throws: an ability id, "death" or
	// "concentration".
	ThrowType string
	// AttackMode is how the weapon is swung ("oneHanded", "twoHanded",
	// "offhand", "thrown", "ranged").
	AttackMode string
	// SpellLevel is the slot level a spell is cast at; 0 falls back to the
	// item's base level.
	SpellLevel int
}

// Context is the transient per-roll bundle every predicate consumes. It is
// constructed fresh for each roll, carries the per-roll collaborators the
// legacy globals used to hold, and is discarded when the roll completes.
type Context struct {
	// Type is the roll kind being resolved.
	Type bonus.Type

	Actor    *entities.Actor
	Item     *entities.Item
	Activity *entities.Activity

	// Token is the acting token, when the actor is placed on a scene.
	Token *entities.Token
	// Target is the targeted token, when one is selected.
	Target *entities.Token

	Detail Details

	// RollData is the acting subject's formula variable tree.
	RollData map[string]any

	// Scripts runs custom-script predicates; nil behaves as disabled.
	Scripts *scripting.Runner
	// Eval simplifies and substitutes formulas for numeric predicates.
	Eval dice.Evaluator
	// Logger receives soft-error diagnostics. Nil is replaced by a no-op.
	Logger *zap.Logger
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Context) evaluator() dice.Evaluator {
	if c.Eval == nil {
		return dice.NewStandardEvaluator()
	}
	return c.Eval
}

// TargetActor returns the targeted token's actor, or nil.
func (c *Context) TargetActor() *entities.Actor {
	if c.Target == nil {
		return nil
	}
	return c.Target.Actor
}

// SpellLevel returns the cast level: the explicit slot level when set,
// else the spell item's base level.
func (c *Context) SpellLevel() int {
	if c.Detail.SpellLevel > 0 {
		return c.Detail.SpellLevel
	}
	if c.Item != nil && c.Item.Type == entities.ItemTypeSpell {
		return c.Item.Level
	}
	return 0
}

// AbilityID returns the ability powering this roll, preferring the
// explicit detail over the item's configured ability.
func (c *Context) AbilityID() string {
	if c.Detail.AbilityID != "" {
		return c.Detail.AbilityID
	}
	if c.Item != nil {
		return c.Item.Ability
	}
	return ""
}
