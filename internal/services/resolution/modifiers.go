package resolution

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
)

// ModifierPass applies dice modifiers (amount, size, reroll, explode,
// minimum, maximum) from resolved bonuses to the parsed parts of one roll.
// The pass carries the per-roll halting state: a bonus configured to
// affect only the first qualifying die stops there and is never
// reconsidered within the same roll. Construct a fresh pass per roll.
type ModifierPass struct {
	eval   dice.Evaluator
	logger *zap.Logger

	// halted marks bonuses done for this roll.
	halted map[string]bool
	// touched tracks which dice each bonus already processed, so
	// re-application is a no-op.
	touched map[string]map[*dice.Die]bool
}

// NewModifierPass creates the per-roll modifier state.
func NewModifierPass(eval dice.Evaluator, logger *zap.Logger) *ModifierPass {
	if eval == nil {
		eval = dice.NewStandardEvaluator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModifierPass{
		eval:    eval,
		logger:  logger,
		halted:  make(map[string]bool),
		touched: make(map[string]map[*dice.Die]bool),
	}
}

// Apply runs the bonus's modifier configuration over the roll parts,
// mutating die terms in place. Reports whether any die changed. Formula
// values are resolved against data; unevaluable values skip their
// modifier family.
func (p *ModifierPass) Apply(b *bonus.Bonus, parts []dice.Part, data map[string]any) bool {
	mods := b.Bonuses.Modifiers
	if !mods.HasContent() {
		return false
	}

	uuid := b.UUID()
	if p.halted[uuid] {
		return false
	}
	touched := p.touched[uuid]
	if touched == nil {
		touched = make(map[*dice.Die]bool)
		p.touched[uuid] = touched
	}

	anyChanged := false
	for _, part := range parts {
		if part.Die == nil || touched[part.Die] {
			continue
		}
		touched[part.Die] = true

		if p.applyToDie(mods, part.Die, data) {
			anyChanged = true
			if mods.Config.First {
				p.halted[uuid] = true
				return true
			}
		}
	}
	return anyChanged
}

func (p *ModifierPass) applyToDie(mods *bonus.Modifiers, die *dice.Die, data map[string]any) bool {
	changed := false

	if mods.Amount.Enabled {
		if delta, ok := p.amount(mods.Amount.Value, data); ok {
			changed = dice.ApplyAmount(die, delta) || changed
		}
	}
	if mods.Size.Enabled {
		if delta, ok := p.amount(mods.Size.Value, data); ok {
			changed = dice.ApplySize(die, delta) || changed
		}
	}
	if mods.Reroll.Enabled {
		threshold, ok := p.amount(mods.Reroll.Formula, data)
		if !ok {
			threshold = 1
		}
		changed = dice.ApplyReroll(die, threshold, mods.Reroll.Invert, mods.Reroll.Recursive) || changed
	}
	if mods.Explode.Enabled {
		threshold, _ := p.amount(mods.Explode.Formula, data)
		changed = dice.ApplyExplode(die, threshold, mods.Explode.Once) || changed
	}
	if mods.Minimum.Enabled {
		if min, ok := p.amount(mods.Minimum.Formula, data); ok {
			changed = dice.ApplyMinimum(die, min) || changed
		}
	}
	if mods.Maximum.Enabled {
		max, ok := p.amount(mods.Maximum.Formula, data)
		if !ok && mods.Maximum.Zero {
			max, ok = 0, true
		}
		if ok {
			changed = dice.ApplyMaximum(die, max) || changed
		}
	}
	return changed
}

// amount resolves a modifier value formula to an integer.
func (p *ModifierPass) amount(formula string, data map[string]any) (int, bool) {
	if formula == "" {
		return 0, false
	}
	replaced := p.eval.Replace(formula, data)
	v, ok := p.eval.Simplify(replaced)
	if !ok {
		p.logger.Debug("modifier value did not evaluate",
			zap.String("formula", formula))
		return 0, false
	}
	return int(v), true
}
