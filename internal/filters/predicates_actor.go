package filters

import (
	"encoding/json"
	"math"

	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// Predicates reading the acting creature's state.

func init() {
	register(Descriptor{Name: "baseArmors", Evaluate: evalBaseArmors, Storable: storableStringSet})
	register(Descriptor{Name: "statusEffects", Evaluate: evalStatusEffects, Storable: storableStringSet})
	register(Descriptor{Name: "healthPercentages", Evaluate: evalHealthPercentages, Storable: storableHealthPercentage})
	register(Descriptor{Name: "remainingSpellSlots", Evaluate: evalRemainingSpellSlots, Storable: storableSlotRange})
	register(Descriptor{Name: "proficiencyLevels", Evaluate: evalProficiencyLevels, Storable: storableNumberSet})
	register(Descriptor{Name: "customScripts", Evaluate: evalCustomScripts, Storable: storableNonEmptyString})
}

func evalBaseArmors(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	armor := ""
	if ctx.Actor != nil {
		armor = ctx.Actor.ArmorBase()
	}
	return TestInclusion(decodeStrings(raw), singleton(armor))
}

func evalStatusEffects(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), statusSet(ctx.Actor))
}

func statusSet(actor *entities.Actor) []string {
	if actor == nil {
		return nil
	}
	out := make([]string, 0, len(actor.Statuses))
	for id, active := range actor.Statuses {
		if active {
			out = append(out, id)
		}
	}
	return out
}

// healthPercentageValue is the stored shape: a threshold plus a direction.
type healthPercentageValue struct {
	Value *int   `json:"value"`
	Type  string `json:"type"` // "atMost" or "atLeast"
}

func evalHealthPercentages(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var value healthPercentageValue
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil || value.Value == nil {
		return true
	}
	if ctx.Actor == nil || ctx.Actor.HP.Max <= 0 {
		// A configured threshold is an inclusion requirement; without a
		// measurable HP pool it cannot be met.
		return false
	}
	pct := int(math.Round(float64(ctx.Actor.HP.Value) / float64(ctx.Actor.HP.Max) * 100))
	if value.Type == "atLeast" {
		return pct >= *value.Value
	}
	return pct <= *value.Value
}

func storableHealthPercentage(raw json.RawMessage) bool {
	var value healthPercentageValue
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return false
	}
	return value.Value != nil && (value.Type == "atMost" || value.Type == "atLeast")
}

// slotRangeValue is an inclusive band over remaining spell slots. Size
// weights each slot by its level.
type slotRangeValue struct {
	Min  *int `json:"min"`
	Max  *int `json:"max"`
	Size bool `json:"size"`
}

func evalRemainingSpellSlots(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var value slotRangeValue
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return true
	}
	if value.Min == nil && value.Max == nil {
		return true
	}

	total := 0
	if ctx.Actor != nil {
		for _, slot := range ctx.Actor.SpellSlots {
			if slot.Value <= 0 {
				continue
			}
			if value.Size {
				total += slot.Value * slot.Level
			} else {
				total += slot.Value
			}
		}
	}

	min := 0
	if value.Min != nil {
		min = *value.Min
	}
	max := math.MaxInt
	if value.Max != nil {
		max = *value.Max
	}
	return total >= min && total <= max
}

func storableSlotRange(raw json.RawMessage) bool {
	var value slotRangeValue
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return false
	}
	// Numeric range rule: present only when both bounds are set.
	return value.Min != nil && value.Max != nil
}

func evalProficiencyLevels(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	levels := decodeFloats(raw)
	if len(levels) == 0 {
		return true
	}
	mult, ok := proficiencyMultiplier(ctx)
	if !ok {
		return true
	}
	for _, l := range levels {
		if l == mult {
			return true
		}
	}
	return false
}

// proficiencyMultiplier dispatches on the kind of roll to pick the correct
// proficiency source. Skill and tool ids take precedence over a bare
// ability so a skill check never reads the ability-check multiplier.
func proficiencyMultiplier(ctx *Context) (float64, bool) {
	if ctx.Actor == nil {
		return 0, false
	}
	if id := ctx.Detail.SkillID; id != "" {
		return ctx.Actor.Skills[id].Multiplier, true
	}
	if id := ctx.Detail.ToolID; id != "" {
		return ctx.Actor.Tools[id], true
	}
	if ctx.Type == bonus.TypeThrow {
		// Death saves carry no proficiency concept.
		if ctx.Detail.ThrowType == "death" {
			return 0, false
		}
		if ab, ok := ctx.Actor.Abilities[ctx.Detail.ThrowType]; ok {
			return ab.SaveProficiency, true
		}
		return 0, false
	}
	if ctx.Item != nil {
		if ctx.Item.Proficient {
			return 1, true
		}
		return 0, true
	}
	if ctx.AbilityID() != "" {
		// Raw ability checks are unproficient by default.
		return 0, true
	}
	return 0, false
}

func evalCustomScripts(ctx *Context, b *bonus.Bonus, raw json.RawMessage) bool {
	var script string
	if len(raw) == 0 || json.Unmarshal(raw, &script) != nil || script == "" {
		return true
	}
	if ctx.Scripts == nil || !ctx.Scripts.Enabled() {
		return true
	}

	ok, err := ctx.Scripts.EvaluateBool(script, scriptEnv(ctx, b))
	if err != nil {
		// Broken scripts fail closed, never abort the pass.
		ctx.logger().Warn("custom script failed",
			zap.String("bonus", b.Name),
			zap.Error(err))
		return false
	}
	return ok
}

// scriptEnv snapshots the roll context into plain tables for the sandbox.
func scriptEnv(ctx *Context, b *bonus.Bonus) map[string]any {
	env := map[string]any{
		"bonus": map[string]any{
			"id":   b.ID,
			"name": b.Name,
			"type": string(b.Type),
		},
		"details": map[string]any{
			"ability":    ctx.Detail.AbilityID,
			"skill":      ctx.Detail.SkillID,
			"tool":       ctx.Detail.ToolID,
			"throwType":  ctx.Detail.ThrowType,
			"attackMode": ctx.Detail.AttackMode,
			"spellLevel": ctx.SpellLevel(),
		},
	}
	if ctx.Actor != nil {
		env["actor"] = map[string]any{
			"name":     ctx.Actor.Name,
			"hp":       map[string]any{"value": ctx.Actor.HP.Value, "max": ctx.Actor.HP.Max},
			"statuses": statusSet(ctx.Actor),
		}
	}
	if ctx.Item != nil {
		env["item"] = map[string]any{
			"name":       ctx.Item.Name,
			"type":       string(ctx.Item.Type),
			"identifier": ctx.Item.Identifier,
		}
	}
	if ctx.Token != nil {
		env["token"] = map[string]any{
			"name":      ctx.Token.Name,
			"x":         ctx.Token.X,
			"y":         ctx.Token.Y,
			"elevation": ctx.Token.Elevation,
			"size":      ctx.Token.Footprint(),
		}
	}
	return env
}

func decodeFloats(raw json.RawMessage) []float64 {
	if len(raw) == 0 {
		return nil
	}
	var out []float64
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func storableNumberSet(raw json.RawMessage) bool {
	return len(decodeFloats(raw)) > 0
}
