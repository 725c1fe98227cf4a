package filters

import (
	"encoding/json"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
)

// Predicates reading the targeted token. Missing target means: pass unless
// the filter carries a non-empty inclusion requirement.

func init() {
	register(Descriptor{Name: "creatureTypes", Evaluate: evalCreatureTypes, Storable: storableStringSet})
	register(Descriptor{Name: "targetEffects", Evaluate: evalTargetEffects, Storable: storableStringSet})
	register(Descriptor{Name: "targetArmors", Evaluate: evalTargetArmors, Storable: storableStringSet})
	register(Descriptor{Name: "tokenSizes", Evaluate: evalTokenSizes, Storable: storableTokenSize})
}

func evalCreatureTypes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var subject []string
	if target := ctx.TargetActor(); target != nil {
		subject = target.CreatureTypes
	}
	return TestInclusion(decodeStrings(raw), subject)
}

func evalTargetEffects(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), statusSet(ctx.TargetActor()))
}

func evalTargetArmors(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	armor := ""
	if target := ctx.TargetActor(); target != nil {
		armor = target.ArmorBase()
	}
	return TestInclusion(decodeStrings(raw), singleton(armor))
}

// tokenSizeValue compares the target token's footprint against a
// threshold. Self additionally clamps the threshold to the acting token's
// own footprint, so "bigger than me" style filters stay correct as the
// actor's size changes.
type tokenSizeValue struct {
	Size *int   `json:"size"`
	Type string `json:"type"` // "atLeast" or "atMost"
	Self bool   `json:"self"`
}

func evalTokenSizes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var value tokenSizeValue
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil || value.Size == nil {
		return true
	}
	if ctx.Target == nil {
		// A size threshold is an inclusion requirement.
		return false
	}

	threshold := *value.Size
	if value.Self && ctx.Token != nil && ctx.Token.Footprint() > threshold {
		threshold = ctx.Token.Footprint()
	}

	size := ctx.Target.Footprint()
	if value.Type == "atMost" {
		return size <= threshold
	}
	return size >= threshold
}

func storableTokenSize(raw json.RawMessage) bool {
	var value tokenSizeValue
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return false
	}
	return value.Size != nil && (value.Type == "atLeast" || value.Type == "atMost")
}
