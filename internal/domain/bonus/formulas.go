package bonus

// Formulas holds the type-dependent bonus formula fields. Every field is a
// dice-formula string that may reference @-path roll-data variables; the
// engine substitutes variables and simplifies thresholds but leaves full
// evaluation to the dice pipeline. The variant schema decides which fields
// are honored.
type Formulas struct {
	// Bonus is the additive formula appended to the roll.
	Bonus string `json:"bonus,omitempty"`

	// Attack-only threshold adjustments.
	CriticalRange string `json:"criticalRange,omitempty"`
	FumbleRange   string `json:"fumbleRange,omitempty"`

	// Damage-only fields.
	CriticalBonusDice   string `json:"criticalBonusDice,omitempty"`
	CriticalBonusDamage string `json:"criticalBonusDamage,omitempty"`
	DamageType          string `json:"damageType,omitempty"`

	// Throw/save target adjustments.
	TargetValue          string `json:"targetValue,omitempty"`
	DeathSaveTargetValue string `json:"deathSaveTargetValue,omitempty"`

	// Modifiers adjust individual dice in already-decided roll parts.
	Modifiers *Modifiers `json:"modifiers,omitempty"`
}

// restrict clears every field outside the variant's schema.
func (f Formulas) restrict(t Type) Formulas {
	out := Formulas{}
	if fieldAllowed(t, "bonus") {
		out.Bonus = f.Bonus
	}
	if fieldAllowed(t, "criticalRange") {
		out.CriticalRange = f.CriticalRange
	}
	if fieldAllowed(t, "fumbleRange") {
		out.FumbleRange = f.FumbleRange
	}
	if fieldAllowed(t, "criticalBonusDice") {
		out.CriticalBonusDice = f.CriticalBonusDice
	}
	if fieldAllowed(t, "criticalBonusDamage") {
		out.CriticalBonusDamage = f.CriticalBonusDamage
	}
	if fieldAllowed(t, "damageType") {
		out.DamageType = f.DamageType
	}
	if fieldAllowed(t, "targetValue") {
		out.TargetValue = f.TargetValue
	}
	if fieldAllowed(t, "deathSaveTargetValue") {
		out.DeathSaveTargetValue = f.DeathSaveTargetValue
	}
	if fieldAllowed(t, "modifiers") {
		out.Modifiers = f.Modifiers
	}
	return out
}

// HasNumericEffect reports whether any formula field carries content. A
// reminder bonus has none by definition; a non-reminder bonus with none is
// inert but harmless.
func (f Formulas) HasNumericEffect() bool {
	if f.Bonus != "" || f.CriticalRange != "" || f.FumbleRange != "" {
		return true
	}
	if f.CriticalBonusDice != "" || f.CriticalBonusDamage != "" {
		return true
	}
	if f.TargetValue != "" || f.DeathSaveTargetValue != "" {
		return true
	}
	return f.Modifiers != nil && f.Modifiers.HasContent()
}

// Modifiers is the dice-modifier configuration: per-die adjustments applied
// to a roll part's dice terms.
type Modifiers struct {
	Amount  ModifierValue  `json:"amount"`
	Size    ModifierValue  `json:"size"`
	Reroll  ModifierReroll `json:"reroll"`
	Explode ModifierBurst  `json:"explode"`
	Minimum ModifierFloor  `json:"minimum"`
	Maximum ModifierCeil   `json:"maximum"`
	Config  ModifierConfig `json:"config"`
}

// ModifierValue adds a formula-valued delta to a die's count or faces.
type ModifierValue struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value,omitempty"`
}

// ModifierReroll rerolls dice at or below (or above, when inverted) a threshold.
type ModifierReroll struct {
	Enabled   bool   `json:"enabled"`
	Formula   string `json:"formula,omitempty"`
	Invert    bool   `json:"invert"`
	Recursive bool   `json:"recursive"`
}

// ModifierBurst explodes dice at or above a threshold.
type ModifierBurst struct {
	Enabled bool   `json:"enabled"`
	Formula string `json:"formula,omitempty"`
	Once    bool   `json:"once"`
}

// ModifierFloor clamps each die's result to a minimum.
type ModifierFloor struct {
	Enabled bool   `json:"enabled"`
	Formula string `json:"formula,omitempty"`
}

// ModifierCeil clamps each die's result to a maximum. Zero treats an empty
// formula as "cap at zero" rather than "no cap".
type ModifierCeil struct {
	Enabled bool   `json:"enabled"`
	Formula string `json:"formula,omitempty"`
	Zero    bool   `json:"zero"`
}

// ModifierConfig holds cross-cutting modifier options.
type ModifierConfig struct {
	// First stops after modifying the first qualifying die; the bonus then
	// halts for the rest of the roll.
	First bool `json:"first"`
}

// HasContent reports whether any modifier kind is enabled.
func (m *Modifiers) HasContent() bool {
	if m == nil {
		return false
	}
	return m.Amount.Enabled || m.Size.Enabled || m.Reroll.Enabled ||
		m.Explode.Enabled || m.Minimum.Enabled || m.Maximum.Enabled
}
