// Package collector implements the spatial/ownership collection pass:
// given the acting creature and the kind of roll, assemble the complete
// candidate bonus set before any filtering. One pass walks three sources
// in a fixed order: the actor's own documents, radius auras on other
// tokens, and area templates the acting token stands in.
package collector

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
	"github.com/KirkDiggler/bonus-engine/internal/geometry"
)

// Service assembles the candidate bonus set for one pending roll.
type Service interface {
	// Collect returns the flat, de-duplicated candidate list in discovery
	// order: self bonuses, then token auras, then template auras. The
	// battlefield snapshot is read-only for the duration of the pass and
	// collection is idempotent against unchanged state.
	Collect(input *CollectInput) ([]*bonus.Bonus, error)
}

// CollectInput describes the pending roll a pass runs for.
type CollectInput struct {
	// Type is the roll kind candidates must match.
	Type bonus.Type
	// Actor is the acting creature.
	Actor *entities.Actor
	// Item is the item being rolled with, when any. Exclusive bonuses
	// only survive when hosted on this exact item.
	Item *entities.Item
	// Scene is the battlefield snapshot. Nil restricts the pass to self
	// bonuses.
	Scene *entities.Scene
}

// ServiceConfig holds configuration for the collector service.
type ServiceConfig struct {
	// FlagScope is the flags-bag key bonus records are stored under.
	FlagScope string
	// Evaluator resolves aura range formulas. Defaults to the standard
	// evaluator.
	Evaluator dice.Evaluator
	Logger    *zap.Logger
}

type service struct {
	scope  string
	eval   dice.Evaluator
	logger *zap.Logger
}

// NewService creates a new collector service.
func NewService(cfg *ServiceConfig) Service {
	if cfg.FlagScope == "" {
		panic("flag scope is required")
	}

	svc := &service{
		scope:  cfg.FlagScope,
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

func (s *service) Collect(input *CollectInput) ([]*bonus.Bonus, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.Actor == nil {
		return nil, engerr.InvalidArgument("acting actor is required")
	}
	if !bonus.IsValidType(input.Type) {
		return nil, engerr.InvalidArgumentf("invalid bonus type '%s'", input.Type)
	}

	resolver := newSnapshotResolver(input.Actor, input.Scene)

	var out []*bonus.Bonus
	seen := make(map[string]bool)
	add := func(b *bonus.Bonus) {
		uuid := b.UUID()
		if seen[uuid] {
			return
		}
		seen[uuid] = true
		out = append(out, b)
	}

	for _, b := range s.selfBonuses(input) {
		add(b)
	}

	token := actingToken(input)
	if token != nil {
		for _, b := range s.tokenAuraBonuses(input, token, resolver) {
			add(b)
		}
		for _, b := range s.templateAuraBonuses(input, token, resolver) {
			add(b)
		}
	}

	return out, nil
}

func actingToken(input *CollectInput) *entities.Token {
	if input.Scene == nil {
		return nil
	}
	return input.Scene.TokenFor(input.Actor.ID)
}

// actorHosts enumerates an actor's bonus-bearing documents in collection
// order: the actor, its items, then every applying effect.
func actorHosts(actor *entities.Actor) []entities.Document {
	hosts := []entities.Document{actor}
	for _, item := range actor.Items {
		hosts = append(hosts, item)
	}
	for _, item := range actor.Items {
		if item.IsSuppressed() {
			continue
		}
		for _, ef := range item.Effects {
			if ef.Transfer && !ef.Disabled {
				hosts = append(hosts, ef)
			}
		}
	}
	for _, ef := range actor.AppliedEffects() {
		hosts = append(hosts, ef)
	}
	return hosts
}

// eligible applies the general checks every source shares: enabled, right
// roll kind, host item not suppressed, exclusivity bound to the rolling
// item.
func (s *service) eligible(b *bonus.Bonus, rollingItem *entities.Item) bool {
	if !b.Enabled {
		return false
	}

	hostItem := hostingItem(b)
	if hostItem != nil && hostItem.IsSuppressed() {
		return false
	}
	if b.Exclusive && hostItem != nil {
		if rollingItem == nil || rollingItem.UUID() != hostItem.UUID() {
			return false
		}
	}
	return true
}

// hostingItem returns the item whose state gates this bonus: the item
// host itself or the hosting effect's owning item.
func hostingItem(b *bonus.Bonus) *entities.Item {
	switch host := b.Host.(type) {
	case *entities.Item:
		return host
	case *entities.ActiveEffect:
		return host.ParentItem
	}
	return nil
}

func (s *service) selfBonuses(input *CollectInput) []*bonus.Bonus {
	var out []*bonus.Bonus
	for _, host := range actorHosts(input.Actor) {
		for _, b := range bonus.ReadCollection(host, s.scope) {
			if b.Type != input.Type {
				continue
			}
			if !s.eligible(b, input.Item) {
				continue
			}
			// Template auras reach their holder only through a placed
			// template, never as plain self bonuses.
			if b.Aura.Enabled && b.Aura.Template {
				continue
			}
			if !b.IsAffectingSelf() {
				continue
			}
			out = append(out, b)
		}
	}
	return out
}

func (s *service) tokenAuraBonuses(input *CollectInput, acting *entities.Token, resolver bonus.Resolver) []*bonus.Bonus {
	scene := input.Scene
	occupied := tokenGridCenters(acting, scene)

	var out []*bonus.Bonus
	for _, holder := range scene.Tokens {
		if holder == acting || holder.Hidden || holder.Actor == nil {
			continue
		}
		if holder.Actor.ID == input.Actor.ID || holder.Actor.Type == entities.ActorTypeGroup {
			continue
		}

		for _, host := range actorHosts(holder.Actor) {
			for _, b := range bonus.ReadCollection(host, s.scope) {
				if b.Type != input.Type || !b.IsTokenAura() {
					continue
				}
				if !s.eligible(b, input.Item) {
					continue
				}
				if b.IsAuraBlocked(holder.Actor) {
					continue
				}
				if !b.Aura.MatchesDisposition(holder.Disposition, acting.Disposition) {
					continue
				}
				if !s.auraReaches(b, holder, occupied, scene) {
					continue
				}
				out = append(out, b)
			}
		}
	}
	return out
}

// auraReaches tests whether any of the acting token's occupied grid-cell
// centers fall inside the holder's aura area.
func (s *service) auraReaches(b *bonus.Bonus, holder *entities.Token, occupied []geometry.Point, scene *entities.Scene) bool {
	if b.Aura.Range == bonus.RangeUnlimited {
		return true
	}

	formula := s.eval.Replace(b.Aura.Range, holder.Actor.RollData())
	radius, ok := s.eval.Simplify(formula)
	if !ok {
		s.logger.Warn("aura range did not evaluate, skipping bonus",
			zap.String("bonus", b.UUID()),
			zap.String("range", b.Aura.Range))
		return false
	}
	if radius <= 0 {
		return false
	}

	center := tokenCenter(holder, scene)
	radiusPx := radius * scene.PixelsPerUnit()

	var area geometry.Shape
	if walls := blockingWalls(b, scene); len(walls) > 0 {
		area = geometry.ConstrainedCircle(center, radiusPx, walls)
	} else {
		area = geometry.Circle{Center: center, Radius: radiusPx}
	}

	for _, p := range occupied {
		if area.Contains(p) {
			return true
		}
	}
	return false
}

// blockingWalls returns the scene walls the aura's sight/move requirements
// make relevant. An aura with no requirements ignores walls entirely.
func blockingWalls(b *bonus.Bonus, scene *entities.Scene) []geometry.Segment {
	if !b.Aura.Require.Sight && !b.Aura.Require.Move {
		return nil
	}
	var walls []geometry.Segment
	for _, w := range scene.Walls {
		if (b.Aura.Require.Sight && w.BlocksSight) || (b.Aura.Require.Move && w.BlocksMove) {
			walls = append(walls, geometry.Segment{
				A: geometry.Point{X: w.Ax, Y: w.Ay},
				B: geometry.Point{X: w.Bx, Y: w.By},
			})
		}
	}
	return walls
}

func (s *service) templateAuraBonuses(input *CollectInput, acting *entities.Token, resolver bonus.Resolver) []*bonus.Bonus {
	scene := input.Scene
	occupied := tokenGridCenters(acting, scene)

	var out []*bonus.Bonus
	seen := make(map[string]bool)
	for _, tpl := range scene.Templates {
		if tpl.Hidden {
			continue
		}
		if !templateContains(tpl, scene, occupied) {
			continue
		}

		for _, b := range bonus.ReadCollection(tpl, s.scope) {
			if b.Type != input.Type || !b.Enabled {
				continue
			}
			if !b.Aura.Enabled || !b.Aura.Template || b.Exclusive {
				continue
			}

			// Overlapping templates from the same bonus instance count once.
			key := tpl.OriginItemUUID + "|" + b.ID
			if seen[key] {
				continue
			}

			origin := b.Item(resolver)
			if origin == nil || origin.IsSuppressed() || !origin.PlacesTemplates {
				continue
			}
			originActor := origin.Parent
			if b.IsAuraBlocked(originActor) {
				continue
			}

			if originActor != nil && originActor.ID == input.Actor.ID {
				if !b.IsAffectingSelf() {
					continue
				}
			} else if !s.templateDispositionMatches(b, originActor, acting, scene) {
				continue
			}

			seen[key] = true
			out = append(out, b)
		}
	}
	return out
}

func (s *service) templateDispositionMatches(b *bonus.Bonus, originActor *entities.Actor, acting *entities.Token, scene *entities.Scene) bool {
	if b.Aura.Disposition == bonus.AuraAny || b.Aura.Disposition == "" {
		return true
	}
	if originActor == nil {
		return false
	}
	originToken := scene.TokenFor(originActor.ID)
	if originToken == nil {
		return false
	}
	return b.Aura.MatchesDisposition(originToken.Disposition, acting.Disposition)
}

// templateContains tests the acting token's grid centers against the
// template's pre-shaped area. Templates carry no distance or sight
// constraints of their own.
func templateContains(tpl *entities.Template, scene *entities.Scene, occupied []geometry.Point) bool {
	shape := templateShape(tpl, scene)
	if shape == nil {
		return false
	}
	for _, p := range occupied {
		if shape.Contains(p) {
			return true
		}
	}
	return false
}

func templateShape(tpl *entities.Template, scene *entities.Scene) geometry.Shape {
	origin := geometry.Point{X: tpl.X, Y: tpl.Y}
	reach := tpl.Distance * scene.PixelsPerUnit()

	switch tpl.Shape {
	case entities.TemplateCircle:
		return geometry.Circle{Center: origin, Radius: reach}
	case entities.TemplateCone:
		return geometry.Cone(origin, tpl.Direction, tpl.Angle, reach)
	case entities.TemplateRay:
		return geometry.Ray(origin, tpl.Direction, reach, tpl.TemplateWidth*scene.PixelsPerUnit())
	case entities.TemplateRect:
		return geometry.Rect(origin, reach, reach)
	}
	return nil
}

func tokenCenter(t *entities.Token, scene *entities.Scene) geometry.Point {
	w := t.Width
	if w < 1 {
		w = 1
	}
	h := t.Height
	if h < 1 {
		h = 1
	}
	return geometry.Point{
		X: t.X + float64(w)*scene.GridSize/2,
		Y: t.Y + float64(h)*scene.GridSize/2,
	}
}

func tokenGridCenters(t *entities.Token, scene *entities.Scene) []geometry.Point {
	return geometry.GridCenters(t.X, t.Y, t.Width, t.Height, scene.GridSize)
}
