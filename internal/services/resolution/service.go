// Package resolution runs the final predicate pass over a collected
// candidate set, substitutes cross-document roll data, and splits the
// survivors by application mode. Soft failures degrade the affected bonus
// and never abort the pass.
package resolution

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
	"github.com/KirkDiggler/bonus-engine/internal/events"
	"github.com/KirkDiggler/bonus-engine/internal/filters"
)

// Service resolves one roll's candidate set.
type Service interface {
	// Resolve runs the pre-filter hook, the predicate pass, the
	// post-filter hook, then cross-document substitution and the mode
	// split. The returned slices preserve candidate discovery order.
	Resolve(input *ResolveInput) (*ResolveOutput, error)
}

// ResolveInput carries one roll's candidates and context.
type ResolveInput struct {
	// Context is the per-roll predicate context.
	Context *filters.Context
	// Candidates is the collector's output for this roll.
	Candidates []*bonus.Bonus
	// Resolver resolves origin references for cross-document
	// substitution. Nil degrades substitution to a no-op.
	Resolver bonus.Resolver
}

// ResolveOutput is the mode-split result of one resolution pass.
type ResolveOutput struct {
	// Reminders carry no numeric effect and surface as labels.
	Reminders []*bonus.Bonus
	// Optionals need explicit user confirmation (and usually consumption)
	// before applying.
	Optionals []*bonus.Bonus
	// Immediate bonuses merge straight into the roll.
	Immediate []*bonus.Bonus

	// Parts are the additive formula fragments the immediate bonuses
	// contribute, substituted, in discovery order.
	Parts []string
}

// ServiceConfig holds configuration for the resolution service.
type ServiceConfig struct {
	// Bus distributes the pre-/post-filter hooks. Nil disables hooks.
	Bus       *events.Bus
	Evaluator dice.Evaluator
	Logger    *zap.Logger
}

type service struct {
	bus    *events.Bus
	eval   dice.Evaluator
	logger *zap.Logger
}

// NewService creates a new resolution service.
func NewService(cfg *ServiceConfig) Service {
	svc := &service{
		bus:    cfg.Bus,
		eval:   cfg.Evaluator,
		logger: cfg.Logger,
	}
	if svc.bus == nil {
		svc.bus = events.NewBus(nil)
	}
	if svc.eval == nil {
		svc.eval = dice.NewStandardEvaluator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

func (s *service) Resolve(input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.Context == nil {
		return nil, engerr.InvalidArgument("roll context is required")
	}

	candidates := append([]*bonus.Bonus(nil), input.Candidates...)
	s.bus.Emit(events.HookPreFilter, &events.FilterPayload{
		Context: input.Context,
		Bonuses: &candidates,
	})

	survivors := candidates[:0:0]
	for _, b := range candidates {
		if filters.Passes(input.Context, b) {
			survivors = append(survivors, b)
		}
	}

	s.bus.Emit(events.HookPostFilter, &events.FilterPayload{
		Context: input.Context,
		Bonuses: &survivors,
	})

	out := &ResolveOutput{}
	for _, b := range survivors {
		s.substituteOrigin(input, b)

		switch {
		case b.Reminder:
			out.Reminders = append(out.Reminders, b)
		case b.Optional:
			out.Optionals = append(out.Optionals, b)
		default:
			out.Immediate = append(out.Immediate, b)
			if b.Bonuses.Bonus != "" {
				out.Parts = append(out.Parts, b.Bonuses.Bonus)
			}
		}
	}
	return out, nil
}

// substituteOrigin resolves roll-data variables in the bonus's formula
// fields against the origin document when the bonus comes from somewhere
// other than the rolling actor and item, so an aura scales off its source
// creature's stats. Template bonuses additionally see the spell level
// recorded at placement. Substitution failures leave formulas untouched.
func (s *service) substituteOrigin(input *ResolveInput, b *bonus.Bonus) {
	ctx := input.Context

	origin := b.Origin(input.Resolver)
	if origin == nil {
		if b.Template() != nil || b.Effect() != nil {
			s.logger.Warn("bonus origin did not resolve, keeping formulas unsubstituted",
				zap.String("bonus", b.UUID()))
		}
		return
	}
	if ctx.Actor != nil && origin.UUID() == ctx.Actor.UUID() {
		return
	}
	if ctx.Item != nil && origin.UUID() == ctx.Item.UUID() {
		return
	}

	var data map[string]any
	switch doc := origin.(type) {
	case *entities.Actor:
		data = doc.RollData()
	case *entities.Item:
		data = doc.RollData()
	default:
		return
	}

	if tpl := b.Template(); tpl != nil && tpl.SpellLevel > 0 {
		if item, ok := data["item"].(map[string]any); ok {
			item["level"] = tpl.SpellLevel
		} else {
			data["item"] = map[string]any{"level": tpl.SpellLevel}
		}
	}

	f := &b.Bonuses
	f.Bonus = s.eval.Replace(f.Bonus, data)
	f.CriticalRange = s.eval.Replace(f.CriticalRange, data)
	f.FumbleRange = s.eval.Replace(f.FumbleRange, data)
	f.CriticalBonusDice = s.eval.Replace(f.CriticalBonusDice, data)
	f.CriticalBonusDamage = s.eval.Replace(f.CriticalBonusDamage, data)
	f.TargetValue = s.eval.Replace(f.TargetValue, data)
	f.DeathSaveTargetValue = s.eval.Replace(f.DeathSaveTargetValue, data)
}
