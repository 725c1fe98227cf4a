package bonus

// Variant schemas. The six bonus types share a base filter set; the three
// item-bound types (attack, damage, save) layer item and spell oriented
// filters on top, strictly additively. Availability is a table lookup, not
// an inheritance chain.

var baseFilters = []string{
	"arbitraryComparisons",
	"baseArmors",
	"creatureTypes",
	"customScripts",
	"healthPercentages",
	"proficiencyLevels",
	"remainingSpellSlots",
	"statusEffects",
	"targetEffects",
	"tokenSizes",
}

var itemBoundFilters = []string{
	"abilities",
	"baseWeapons",
	"damageTypes",
	"featureTypes",
	"identifiers",
	"itemTypes",
	"preparationModes",
	"spellComponents",
	"spellLevels",
	"spellSchools",
	"targetArmors",
	"weaponProperties",
}

var extraFilters = map[Type][]string{
	TypeAttack: {"attackModes"},
	TypeDamage: {"attackModes"},
	TypeSave:   {"saveAbilities"},
	TypeThrow:  {"throwTypes", "abilities"},
	TypeTest:   {"abilities", "baseTools", "skillIds"},
	TypeHitDie: nil,
}

// formulaFields lists the bonus formula fields each variant honors.
var formulaFields = map[Type][]string{
	TypeAttack: {"bonus", "criticalRange", "fumbleRange"},
	TypeDamage: {"bonus", "criticalBonusDice", "criticalBonusDamage", "damageType", "modifiers"},
	TypeSave:   {"bonus", "deathSaveTargetValue"},
	TypeThrow:  {"bonus", "targetValue", "deathSaveTargetValue"},
	TypeTest:   {"bonus"},
	TypeHitDie: {"bonus", "modifiers"},
}

var defaultIcons = map[Type]string{
	TypeAttack: "icons/skills/melee/strike-sword-steel-yellow.webp",
	TypeDamage: "icons/skills/melee/strike-hammer-destructive-orange.webp",
	TypeSave:   "icons/magic/defensive/shield-barrier-glowing-blue.webp",
	TypeThrow:  "icons/magic/time/arrows-circling-green.webp",
	TypeTest:   "icons/skills/social/diplomacy-handshake-gray.webp",
	TypeHitDie: "icons/sundries/gaming/dice-runed-brown.webp",
}

func defaultIcon(t Type) string {
	return defaultIcons[t]
}

// itemBound reports whether the variant exposes item and spell filters.
func itemBound(t Type) bool {
	switch t {
	case TypeAttack, TypeDamage, TypeSave:
		return true
	}
	return false
}

// AllowedFilters returns the set of filter names the given variant exposes.
func AllowedFilters(t Type) map[string]bool {
	out := make(map[string]bool, len(baseFilters)+len(itemBoundFilters)+2)
	for _, name := range baseFilters {
		out[name] = true
	}
	if itemBound(t) {
		for _, name := range itemBoundFilters {
			out[name] = true
		}
	}
	for _, name := range extraFilters[t] {
		out[name] = true
	}
	return out
}

// AllowsFilter reports whether the variant's schema declares the filter.
func AllowsFilter(t Type, name string) bool {
	return AllowedFilters(t)[name]
}

// FormulaFields returns the bonus formula field names the variant honors.
func FormulaFields(t Type) []string {
	return formulaFields[t]
}

func fieldAllowed(t Type, field string) bool {
	for _, f := range formulaFields[t] {
		if f == field {
			return true
		}
	}
	return false
}
