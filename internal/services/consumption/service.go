// Package consumption implements optional-bonus resource spending: the
// schema validity check, the actor permission/availability check, the
// legal scaling-amount enumeration, and the atomic resource deduction.
package consumption

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
	"github.com/KirkDiggler/bonus-engine/internal/repositories/documents"
)

// Option is one legal consumption choice: the amount spent and, for
// bucketed resources, which bucket it comes from (a spell-slot id or a
// hit-die denomination).
type Option struct {
	Amount int
	Key    string
}

// Service drives optional-bonus consumption.
type Service interface {
	// IsValidConsumption checks the schema-level minimum conditions for
	// the bonus's consumption configuration. A bonus with consumption
	// disabled is trivially valid.
	IsValidConsumption(b *bonus.Bonus) bool

	// CanActorConsume checks permission and resource availability: the
	// user must own the document being decremented and the minimum amount
	// must actually be available. Failure means "bonus unavailable",
	// never an error.
	CanActorConsume(b *bonus.Bonus, actor *entities.Actor, userID string) bool

	// ScalingOptions enumerates the legal consumption amounts for the
	// bonus against the actor's current resources, in ascending amount
	// order (hit dice honor their smallest/largest subtype ordering).
	ScalingOptions(b *bonus.Bonus, actor *entities.Actor) []Option

	// Consume performs the resource deduction as one atomic save of the
	// owning root document and returns the scaled formula to apply.
	Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error)
}

// ConsumeInput is one confirmed consumption action.
type ConsumeInput struct {
	Bonus *bonus.Bonus
	// Actor is the rolling actor whose pools actor-level types decrement.
	Actor *entities.Actor
	// UserID is the acting user, checked against document ownership.
	UserID string
	// Amount is the chosen consumption amount. Zero means the configured
	// minimum.
	Amount int
	// Key selects the bucket for slot consumption; ignored otherwise.
	Key string
	// DestroyOnExhaust confirms deletion of an auto-destroy item whose
	// last use this consumption spends. Without it the item survives at
	// zero uses.
	DestroyOnExhaust bool
}

// ConsumeOutput reports what the deduction did.
type ConsumeOutput struct {
	// Scale is the scaling multiplier earned beyond the configured
	// minimum.
	Scale int
	// Formula is the bonus's additive formula with scaling applied.
	Formula string
	// ItemDeleted reports that an auto-destroy item was removed.
	ItemDeleted bool
	// EffectDeleted reports that the hosting effect was removed.
	EffectDeleted bool
}

// ServiceConfig holds configuration for the consumption service.
type ServiceConfig struct {
	Repository documents.Repository
	Evaluator  dice.Evaluator
	Logger     *zap.Logger
}

type service struct {
	repo   documents.Repository
	eval   dice.Evaluator
	logger *zap.Logger
}

// NewService creates a new consumption service.
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("document repository is required")
	}

	svc := &service{
		repo:   cfg.Repository,
		eval:   cfg.Evaluator,
		logger: cfg.Logger,
	}
	if svc.eval == nil {
		svc.eval = dice.NewStandardEvaluator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// currencyDenominations are the recognized currency subtypes.
var currencyDenominations = map[string]bool{
	"pp": true, "gp": true, "ep": true, "sp": true, "cp": true,
}

func (s *service) IsValidConsumption(b *bonus.Bonus) bool {
	c := b.Consume
	if !c.Enabled {
		return true
	}
	if c.Scales && c.Value.Max != 0 && c.Value.Max < c.Value.Min {
		return false
	}

	switch c.Type {
	case bonus.ConsumeUses:
		item := hostingItem(b)
		return item != nil && item.HasLimitedUses() && c.Value.Min > 0
	case bonus.ConsumeQuantity:
		item := hostingItem(b)
		return item != nil && c.Value.Min > 0
	case bonus.ConsumeSlots, bonus.ConsumeHealth:
		return c.Value.Min > 0
	case bonus.ConsumeCurrency:
		return currencyDenominations[c.Subtype] && c.Value.Min > 0
	case bonus.ConsumeEffect:
		return b.Effect() != nil
	case bonus.ConsumeInspiration:
		return true
	case bonus.ConsumeHitDice:
		return validHitDieSubtype(c.Subtype) && c.Value.Min > 0
	}
	return false
}

func validHitDieSubtype(subtype string) bool {
	if subtype == bonus.HitDiceSmallest || subtype == bonus.HitDiceLargest {
		return true
	}
	return strings.HasPrefix(subtype, "d") && len(subtype) > 1
}

func hostingItem(b *bonus.Bonus) *entities.Item {
	switch host := b.Host.(type) {
	case *entities.Item:
		return host
	case *entities.ActiveEffect:
		return host.ParentItem
	}
	return nil
}

// deductionOwner returns the actor whose document the deduction mutates.
func deductionOwner(b *bonus.Bonus, actor *entities.Actor) *entities.Actor {
	switch b.Consume.Type {
	case bonus.ConsumeUses, bonus.ConsumeQuantity:
		if item := hostingItem(b); item != nil {
			return item.Parent
		}
		return nil
	case bonus.ConsumeEffect:
		if ef := b.Effect(); ef != nil {
			return ef.Actor()
		}
		return nil
	}
	return actor
}

func (s *service) CanActorConsume(b *bonus.Bonus, actor *entities.Actor, userID string) bool {
	if !b.Consume.Enabled {
		return true
	}
	if !s.IsValidConsumption(b) {
		return false
	}

	owner := deductionOwner(b, actor)
	if owner == nil {
		return false
	}
	if userID != "" && !owner.IsOwner(userID) {
		return false
	}

	c := b.Consume
	switch c.Type {
	case bonus.ConsumeUses:
		return hostingItem(b).Uses.Value >= c.Value.Min
	case bonus.ConsumeQuantity:
		return hostingItem(b).Quantity >= c.Value.Min
	case bonus.ConsumeSlots:
		for _, slot := range actor.SpellSlots {
			if slot.Level >= c.Value.Min && slot.Value > 0 {
				return true
			}
		}
		return false
	case bonus.ConsumeHealth:
		return actor.HP.Max > 0 && actor.HP.Value+actor.HP.Temp >= c.Value.Min
	case bonus.ConsumeCurrency:
		return actor.Currency[c.Subtype] >= c.Value.Min
	case bonus.ConsumeEffect:
		return true
	case bonus.ConsumeInspiration:
		return actor.Inspiration
	case bonus.ConsumeHitDice:
		return hitDiceAvailable(actor, c.Subtype) >= c.Value.Min
	}
	return false
}

func hitDiceAvailable(actor *entities.Actor, subtype string) int {
	available := actor.AvailableHitDice()
	if subtype == bonus.HitDiceSmallest || subtype == bonus.HitDiceLargest {
		total := 0
		for _, n := range available {
			total += n
		}
		return total
	}
	var size int
	if _, err := fmt.Sscanf(subtype, "d%d", &size); err != nil {
		return 0
	}
	return available[size]
}

func (s *service) ScalingOptions(b *bonus.Bonus, actor *entities.Actor) []Option {
	if !s.CanActorConsume(b, actor, "") {
		return nil
	}

	c := b.Consume
	if !c.Enabled {
		return nil
	}
	if !c.Scales {
		return []Option{s.minimumOption(b, actor)}
	}

	switch c.Type {
	case bonus.ConsumeUses:
		return steppedOptions(c, hostingItem(b).Uses.Value)
	case bonus.ConsumeQuantity:
		return steppedOptions(c, hostingItem(b).Quantity)
	case bonus.ConsumeHealth:
		return steppedOptions(c, actor.HP.Value+actor.HP.Temp)
	case bonus.ConsumeCurrency:
		return steppedOptions(c, actor.Currency[c.Subtype])
	case bonus.ConsumeSlots:
		return slotOptions(c, actor)
	case bonus.ConsumeHitDice:
		return hitDiceOptions(c, actor)
	}
	return []Option{s.minimumOption(b, actor)}
}

func (s *service) minimumOption(b *bonus.Bonus, actor *entities.Actor) Option {
	c := b.Consume
	opt := Option{Amount: c.Value.Min}
	if opt.Amount < 1 {
		opt.Amount = 1
	}
	if c.Type == bonus.ConsumeSlots {
		if slots := slotOptions(c, actor); len(slots) > 0 {
			return slots[0]
		}
	}
	return opt
}

// steppedOptions enumerates min..min(max, available) stepping by the
// configured step. A zero configured max leaves availability as the only
// upper bound.
func steppedOptions(c bonus.Consumption, available int) []Option {
	upper := available
	if c.Value.Max > 0 && c.Value.Max < upper {
		upper = c.Value.Max
	}
	step := c.StepSize()

	var out []Option
	for v := c.Value.Min; v <= upper; v += step {
		out = append(out, Option{Amount: v})
	}
	return out
}

// slotOptions lists one option per castable slot level at or above the
// configured minimum. At equal level, non-standard slot buckets (pact
// magic and the like) win over standard ones.
func slotOptions(c bonus.Consumption, actor *entities.Actor) []Option {
	byLevel := make(map[int]string)
	for id, slot := range actor.SpellSlots {
		if slot.Value <= 0 || slot.Level < c.Value.Min {
			continue
		}
		if c.Value.Max > 0 && c.Scales && slot.Level > c.Value.Max {
			continue
		}
		existing, ok := byLevel[slot.Level]
		if !ok {
			byLevel[slot.Level] = id
			continue
		}
		if actor.SpellSlots[existing].Type == "standard" && slot.Type != "standard" {
			byLevel[slot.Level] = id
		}
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	out := make([]Option, 0, len(levels))
	for _, level := range levels {
		out = append(out, Option{Amount: level, Key: byLevel[level]})
	}
	return out
}

func hitDiceOptions(c bonus.Consumption, actor *entities.Actor) []Option {
	available := hitDiceAvailable(actor, c.Subtype)
	return steppedOptions(c, available)
}

func (s *service) Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.Bonus == nil {
		return nil, engerr.InvalidArgument("bonus is required")
	}
	if input.Actor == nil {
		return nil, engerr.InvalidArgument("actor is required")
	}

	b := input.Bonus
	c := b.Consume
	if !c.Enabled {
		return &ConsumeOutput{Formula: b.Bonuses.Bonus}, nil
	}
	if !s.IsValidConsumption(b) {
		return nil, engerr.Validationf("bonus '%s' has invalid consumption configuration", b.ID)
	}
	if !s.CanActorConsume(b, input.Actor, input.UserID) {
		return nil, engerr.PermissionDenied("resource cannot be consumed")
	}

	amount := input.Amount
	if amount == 0 {
		amount = c.Value.Min
	}
	if !s.amountAllowed(b, input.Actor, amount, input.Key) {
		return nil, engerr.InvalidArgumentf("amount %d is not a legal consumption choice", amount)
	}

	owner := deductionOwner(b, input.Actor)
	out := &ConsumeOutput{}

	switch c.Type {
	case bonus.ConsumeUses:
		s.deductUses(b, input, out)
	case bonus.ConsumeQuantity:
		hostingItem(b).Quantity -= amount
	case bonus.ConsumeSlots:
		key := input.Key
		if key == "" {
			for _, opt := range slotOptions(c, input.Actor) {
				if opt.Amount == amount {
					key = opt.Key
					break
				}
			}
		}
		slot := input.Actor.SpellSlots[key]
		slot.Value--
		input.Actor.SpellSlots[key] = slot
	case bonus.ConsumeHealth:
		applyDamage(input.Actor, amount)
	case bonus.ConsumeCurrency:
		input.Actor.Currency[c.Subtype] -= amount
	case bonus.ConsumeEffect:
		deleteEffect(b.Effect())
		out.EffectDeleted = true
	case bonus.ConsumeInspiration:
		input.Actor.Inspiration = false
	case bonus.ConsumeHitDice:
		spendHitDice(input.Actor, c.Subtype, amount)
	}

	if err := s.repo.SaveActor(ctx, owner); err != nil {
		return nil, engerr.Wrap(err, "failed to persist resource deduction")
	}

	out.Scale = scaleFor(c, amount)
	out.Formula = s.scaledFormula(b, out.Scale)

	s.logger.Info("consumed bonus resource",
		zap.String("bonus", b.UUID()),
		zap.String("type", string(c.Type)),
		zap.Int("amount", amount),
		zap.Int("scale", out.Scale))
	return out, nil
}

// amountAllowed re-checks the chosen amount against the current legal set.
func (s *service) amountAllowed(b *bonus.Bonus, actor *entities.Actor, amount int, key string) bool {
	for _, opt := range s.ScalingOptions(b, actor) {
		if opt.Amount == amount && (opt.Key == key || opt.Key == "" || key == "") {
			return true
		}
	}
	return false
}

func (s *service) deductUses(b *bonus.Bonus, input *ConsumeInput, out *ConsumeOutput) {
	item := hostingItem(b)
	amount := input.Amount
	if amount == 0 {
		amount = b.Consume.Value.Min
	}
	item.Uses.Value -= amount
	if item.Uses.Value <= 0 && item.Uses.AutoDestroy && input.DestroyOnExhaust {
		deleteItem(item)
		out.ItemDeleted = true
	}
}

func deleteItem(item *entities.Item) {
	owner := item.Parent
	if owner == nil {
		return
	}
	for i, it := range owner.Items {
		if it == item {
			owner.Items = append(owner.Items[:i], owner.Items[i+1:]...)
			return
		}
	}
}

func deleteEffect(ef *entities.ActiveEffect) {
	if ef == nil {
		return
	}
	if owner := ef.ParentActor; owner != nil {
		for i, e := range owner.Effects {
			if e == ef {
				owner.Effects = append(owner.Effects[:i], owner.Effects[i+1:]...)
				return
			}
		}
	}
	if item := ef.ParentItem; item != nil {
		for i, e := range item.Effects {
			if e == ef {
				item.Effects = append(item.Effects[:i], item.Effects[i+1:]...)
				return
			}
		}
	}
}

// applyDamage spends hit points, draining temporary hit points first.
func applyDamage(actor *entities.Actor, amount int) {
	if actor.HP.Temp > 0 {
		absorbed := actor.HP.Temp
		if absorbed > amount {
			absorbed = amount
		}
		actor.HP.Temp -= absorbed
		amount -= absorbed
	}
	actor.HP.Value -= amount
	if actor.HP.Value < 0 {
		actor.HP.Value = 0
	}
}

// spendHitDice marks hit dice used across the actor's classes, walking
// matching classes in size order until the requested amount is satisfied.
func spendHitDice(actor *entities.Actor, subtype string, amount int) {
	indices := make([]int, 0, len(actor.Classes))
	for i := range actor.Classes {
		indices = append(indices, i)
	}

	switch subtype {
	case bonus.HitDiceSmallest:
		sort.SliceStable(indices, func(a, b int) bool {
			return actor.Classes[indices[a]].HitDieSize < actor.Classes[indices[b]].HitDieSize
		})
	case bonus.HitDiceLargest:
		sort.SliceStable(indices, func(a, b int) bool {
			return actor.Classes[indices[a]].HitDieSize > actor.Classes[indices[b]].HitDieSize
		})
	default:
		var size int
		if _, err := fmt.Sscanf(subtype, "d%d", &size); err != nil {
			return
		}
		filtered := indices[:0]
		for _, i := range indices {
			if actor.Classes[i].HitDieSize == size {
				filtered = append(filtered, i)
			}
		}
		indices = filtered
	}

	for _, i := range indices {
		if amount == 0 {
			return
		}
		class := &actor.Classes[i]
		remaining := class.Levels - class.HitDiceUsed
		spend := remaining
		if spend > amount {
			spend = amount
		}
		class.HitDiceUsed += spend
		amount -= spend
	}
}

// scaleFor computes the scaling multiplier: steps earned beyond the
// configured minimum.
func scaleFor(c bonus.Consumption, amount int) int {
	if !c.AffectsScale() || amount <= c.Value.Min {
		return 0
	}
	return (amount - c.Value.Min) / c.StepSize()
}

// scaledFormula builds `base + scale x scaling-formula`, simplified when
// the result is deterministic.
func (s *service) scaledFormula(b *bonus.Bonus, scale int) string {
	base := b.Bonuses.Bonus
	if scale <= 0 {
		return base
	}

	scaling := b.Consume.Formula
	if scaling == "" {
		scaling = base
	}
	if scaling == "" {
		return base
	}

	combined := fmt.Sprintf("%d * (%s)", scale, scaling)
	if base != "" {
		combined = fmt.Sprintf("%s + %s", base, combined)
	}
	if v, ok := s.eval.Simplify(combined); ok {
		return fmt.Sprintf("%g", v)
	}
	return combined
}
