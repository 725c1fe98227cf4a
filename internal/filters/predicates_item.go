package filters

import (
	"encoding/json"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// Item and roll-detail oriented predicates. All of them are string-set
// filters funneling through TestInclusion; the subject varies.

func init() {
	register(Descriptor{Name: "abilities", Evaluate: evalAbilities, Storable: storableStringSet})
	register(Descriptor{Name: "attackModes", Evaluate: evalAttackModes, Storable: storableStringSet})
	register(Descriptor{Name: "baseTools", Evaluate: evalBaseTools, Storable: storableStringSet})
	register(Descriptor{Name: "baseWeapons", Evaluate: evalBaseWeapons, Storable: storableStringSet})
	register(Descriptor{Name: "damageTypes", Evaluate: evalDamageTypes, Storable: storableStringSet})
	register(Descriptor{Name: "featureTypes", Evaluate: evalFeatureTypes, Storable: storableStringSet})
	register(Descriptor{Name: "identifiers", Evaluate: evalIdentifiers, Storable: storableStringSet})
	register(Descriptor{Name: "itemTypes", Evaluate: evalItemTypes, Storable: storableStringSet})
	register(Descriptor{Name: "preparationModes", Evaluate: evalPreparationModes, Storable: storableStringSet})
	register(Descriptor{Name: "saveAbilities", Evaluate: evalSaveAbilities, Storable: storableStringSet})
	register(Descriptor{Name: "skillIds", Evaluate: evalSkillIDs, Storable: storableStringSet})
	register(Descriptor{Name: "spellComponents", Evaluate: evalSpellComponents, Storable: storableStringSet})
	register(Descriptor{Name: "spellLevels", Evaluate: evalSpellLevels, Storable: storableIntSet})
	register(Descriptor{Name: "spellSchools", Evaluate: evalSpellSchools, Storable: storableStringSet})
	register(Descriptor{Name: "throwTypes", Evaluate: evalThrowTypes, Storable: storableStringSet})
	register(Descriptor{Name: "weaponProperties", Evaluate: evalWeaponProperties, Storable: storableStringSet})
}

func evalAbilities(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), singleton(ctx.AbilityID()))
}

func evalAttackModes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), singleton(ctx.Detail.AttackMode))
}

func evalBaseTools(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), singleton(ctx.Detail.ToolID))
}

func evalBaseWeapons(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	base := ""
	if ctx.Item != nil && ctx.Item.Type == entities.ItemTypeWeapon {
		base = ctx.Item.BaseItem
	}
	return TestInclusion(decodeStrings(raw), singleton(base))
}

func evalDamageTypes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var subject []string
	if ctx.Item != nil {
		subject = ctx.Item.DamageTypes
	}
	return TestInclusion(decodeStrings(raw), subject)
}

func evalFeatureTypes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	feature := ""
	if ctx.Item != nil {
		feature = ctx.Item.FeatureType
	}
	return TestInclusion(decodeStrings(raw), singleton(feature))
}

func evalIdentifiers(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var subject []string
	if ctx.Item != nil && ctx.Item.Identifier != "" {
		subject = append(subject, ctx.Item.Identifier)
	}
	if ctx.Activity != nil && ctx.Activity.Identifier != "" {
		subject = append(subject, ctx.Activity.Identifier)
	}
	return TestInclusion(decodeStrings(raw), subject)
}

func evalItemTypes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	itemType := ""
	if ctx.Item != nil {
		itemType = string(ctx.Item.Type)
	}
	return TestInclusion(decodeStrings(raw), singleton(itemType))
}

func evalPreparationModes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	mode := ""
	if ctx.Item != nil {
		mode = ctx.Item.PreparationMode
	}
	return TestInclusion(decodeStrings(raw), singleton(mode))
}

func evalSaveAbilities(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	ability := ""
	if ctx.Activity != nil {
		ability = ctx.Activity.SaveAbility
	}
	return TestInclusion(decodeStrings(raw), singleton(ability))
}

func evalSkillIDs(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), singleton(ctx.Detail.SkillID))
}

func evalSpellComponents(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var subject []string
	if ctx.Item != nil {
		subject = ctx.Item.Components
	}
	return TestInclusion(decodeStrings(raw), subject)
}

func evalSpellLevels(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	levels := decodeInts(raw)
	if len(levels) == 0 {
		return true
	}
	level := ctx.SpellLevel()
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

func evalSpellSchools(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	school := ""
	if ctx.Item != nil {
		school = ctx.Item.School
	}
	return TestInclusion(decodeStrings(raw), singleton(school))
}

func evalThrowTypes(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	return TestInclusion(decodeStrings(raw), singleton(ctx.Detail.ThrowType))
}

func evalWeaponProperties(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var subject []string
	if ctx.Item != nil {
		subject = ctx.Item.WeaponProperties
	}
	return TestInclusion(decodeStrings(raw), subject)
}

// singleton wraps a non-empty value as a one-element subject set.
func singleton(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func decodeInts(raw json.RawMessage) []int {
	if len(raw) == 0 {
		return nil
	}
	var out []int
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func storableIntSet(raw json.RawMessage) bool {
	return len(decodeInts(raw)) > 0
}
