package bonus

// ConsumptionType names the resource an optional bonus deducts when applied.
type ConsumptionType string

const (
	ConsumeNone        ConsumptionType = ""
	ConsumeUses        ConsumptionType = "uses"
	ConsumeQuantity    ConsumptionType = "quantity"
	ConsumeSlots       ConsumptionType = "slots"
	ConsumeEffect      ConsumptionType = "effect"
	ConsumeHealth      ConsumptionType = "health"
	ConsumeCurrency    ConsumptionType = "currency"
	ConsumeInspiration ConsumptionType = "inspiration"
	ConsumeHitDice     ConsumptionType = "hitdice"
)

// HitDice subtypes: consume the smallest available die first, the largest,
// or a specific die size ("d6", "d8", ...).
const (
	HitDiceSmallest = "smallest"
	HitDiceLargest  = "largest"
)

// ConsumptionValue is the configured amount band. Step only applies to
// scaling consumption of stepped resources (health, currency, hit dice).
type ConsumptionValue struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Consumption configures the resource an optional bonus spends.
type Consumption struct {
	Enabled bool            `json:"enabled"`
	Type    ConsumptionType `json:"type"`
	// Subtype is the hit-die denomination or currency key; meaning depends
	// on Type.
	Subtype string `json:"subtype,omitempty"`
	// Scales allows spending more than Min for a larger bonus.
	Scales bool `json:"scales"`
	// Formula is the alternate scaling formula; when empty the bonus's own
	// additive formula scales.
	Formula string           `json:"formula,omitempty"`
	Value   ConsumptionValue `json:"value"`
}

// Normalize applies the schema's coercion rules in place: effect and
// inspiration consumption can never scale, and an inverted min/max band is
// swapped.
func (c *Consumption) Normalize() {
	if c.Type == ConsumeEffect || c.Type == ConsumeInspiration {
		c.Scales = false
	}
	if c.Scales && c.Value.Max != 0 && c.Value.Max < c.Value.Min {
		c.Value.Min, c.Value.Max = c.Value.Max, c.Value.Min
	}
}

// AffectsScale reports whether a chosen amount beyond Min grows the bonus.
func (c *Consumption) AffectsScale() bool {
	return c.Enabled && c.Scales && c.Type != ConsumeEffect && c.Type != ConsumeInspiration
}

// StepSize returns the configured step for stepped resource types, never
// less than 1.
func (c *Consumption) StepSize() int {
	switch c.Type {
	case ConsumeHealth, ConsumeCurrency, ConsumeHitDice:
		if c.Value.Step > 0 {
			return c.Value.Step
		}
	}
	return 1
}
