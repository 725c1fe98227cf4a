package entities

// ActorType distinguishes playable characters from NPCs and group actors.
// Group actors never project or receive auras.
type ActorType string

const (
	ActorTypeCharacter ActorType = "character"
	ActorTypeNPC       ActorType = "npc"
	ActorTypeGroup     ActorType = "group"
)

// HitPoints tracks an actor's current, maximum and temporary hit points.
type HitPoints struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	Temp  int `json:"temp"`
}

// AbilityScore is one of the six ability scores with its modifier and
// saving-throw proficiency multiplier.
type AbilityScore struct {
	Value           int     `json:"value"`
	Mod             int     `json:"mod"`
	SaveProficiency float64 `json:"save_proficiency"`
}

// SkillProficiency records a skill's proficiency multiplier and default ability.
type SkillProficiency struct {
	Multiplier float64 `json:"multiplier"`
	Ability    string  `json:"ability"`
}

// SpellSlot is one castable slot bucket ("spell3", "pact", ...).
type SpellSlot struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	Level int `json:"level"`
	// Type is "standard" for leveled slots, anything else ("pact", ...) for
	// non-standard buckets.
	Type string `json:"type"`
}

// ClassRecord carries the per-class data hit-die consumption needs.
type ClassRecord struct {
	Identifier  string `json:"identifier"`
	Levels      int    `json:"levels"`
	HitDieSize  int    `json:"hit_die_size"`
	HitDiceUsed int    `json:"hit_dice_used"`
}

// Actor is a creature document: the holder of items, effects and bonuses.
type Actor struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type ActorType `json:"type"`

	// Owners maps user id -> true for users with owner permission.
	Owners map[string]bool `json:"owners,omitempty"`

	CreatureTypes []string `json:"creature_types,omitempty"`
	Size          string   `json:"size,omitempty"`

	HP        HitPoints                   `json:"hp"`
	Abilities map[string]AbilityScore     `json:"abilities,omitempty"`
	Skills    map[string]SkillProficiency `json:"skills,omitempty"`
	Tools     map[string]float64          `json:"tools,omitempty"`

	SpellSlots map[string]SpellSlot `json:"spell_slots,omitempty"`
	Currency   map[string]int       `json:"currency,omitempty"`
	Classes    []ClassRecord        `json:"classes,omitempty"`

	// Statuses is the set of active status-condition identifiers.
	Statuses map[string]bool `json:"statuses,omitempty"`
	// ConditionImmunities lists status ids this actor cannot suffer.
	ConditionImmunities []string `json:"condition_immunities,omitempty"`

	Inspiration      bool `json:"inspiration"`
	ProficiencyBonus int  `json:"proficiency_bonus"`

	Items   []*Item         `json:"items,omitempty"`
	Effects []*ActiveEffect `json:"effects,omitempty"`

	FlagData FlagBag `json:"flags,omitempty"`
}

func (a *Actor) DocumentKind() DocumentKind { return KindActor }
func (a *Actor) DocumentID() string         { return a.ID }
func (a *Actor) DocumentName() string       { return a.Name }
func (a *Actor) UUID() string               { return BuildUUID("", KindActor, a.ID) }

func (a *Actor) Flags() FlagBag {
	if a.FlagData == nil {
		a.FlagData = make(FlagBag)
	}
	return a.FlagData
}

// HasStatus reports whether the actor currently has the given status condition.
func (a *Actor) HasStatus(id string) bool {
	return a.Statuses[id]
}

// IsImmuneTo reports whether the actor is immune to the given status condition.
func (a *Actor) IsImmuneTo(id string) bool {
	for _, s := range a.ConditionImmunities {
		if s == id {
			return true
		}
	}
	return false
}

// IsOwner reports whether the given user has owner permission for this actor.
func (a *Actor) IsOwner(userID string) bool {
	return a.Owners[userID]
}

// Item returns the owned item with the given id, or nil.
func (a *Actor) Item(id string) *Item {
	for _, it := range a.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Effect returns the applied effect with the given id, or nil.
func (a *Actor) Effect(id string) *ActiveEffect {
	for _, ef := range a.Effects {
		if ef.ID == id {
			return ef
		}
	}
	return nil
}

// AppliedEffects returns the actor's effects that are not disabled.
// Suppression by the owning item's equip/attune state is handled where the
// item itself is gated.
func (a *Actor) AppliedEffects() []*ActiveEffect {
	var out []*ActiveEffect
	for _, ef := range a.Effects {
		if ef.Disabled {
			continue
		}
		out = append(out, ef)
	}
	return out
}

// ArmorBase returns the base-item identifier of the actor's equipped armor,
// or "" when unarmored.
func (a *Actor) ArmorBase() string {
	for _, it := range a.Items {
		if it.Type == ItemTypeEquipment && it.Equipped && it.BaseItem != "" {
			return it.BaseItem
		}
	}
	return ""
}

// SpentHitDice returns the total hit dice the actor has used across classes.
func (a *Actor) SpentHitDice() int {
	total := 0
	for _, c := range a.Classes {
		total += c.HitDiceUsed
	}
	return total
}

// AvailableHitDice returns remaining hit dice keyed by die size.
func (a *Actor) AvailableHitDice() map[int]int {
	out := make(map[int]int)
	for _, c := range a.Classes {
		remaining := c.Levels - c.HitDiceUsed
		if remaining > 0 {
			out[c.HitDieSize] += remaining
		}
	}
	return out
}

// RollData returns the actor's formula variable tree. Formula fields
// reference these paths with @-prefixed variables, e.g. "@abilities.str.mod".
func (a *Actor) RollData() map[string]any {
	abilities := make(map[string]any, len(a.Abilities))
	for id, ab := range a.Abilities {
		abilities[id] = map[string]any{"value": ab.Value, "mod": ab.Mod}
	}
	skills := make(map[string]any, len(a.Skills))
	for id, sk := range a.Skills {
		skills[id] = map[string]any{"multiplier": sk.Multiplier}
	}
	return map[string]any{
		"name":      a.Name,
		"abilities": abilities,
		"skills":    skills,
		"attributes": map[string]any{
			"hp":   map[string]any{"value": a.HP.Value, "max": a.HP.Max, "temp": a.HP.Temp},
			"prof": a.ProficiencyBonus,
		},
		"details": map[string]any{
			"type": map[string]any{"value": firstOrEmpty(a.CreatureTypes)},
		},
	}
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
