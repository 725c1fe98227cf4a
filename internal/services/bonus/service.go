// Package bonus is the engine's public query API: a thin façade over the
// collection, resolution and consumption services plus the CRUD surface
// for persisted bonus records. Consumers of the engine talk to this
// package; the inner services stay wiring details.
package bonus

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	babonus "github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"
	"github.com/KirkDiggler/bonus-engine/internal/filters"
	"github.com/KirkDiggler/bonus-engine/internal/repositories/documents"
	"github.com/KirkDiggler/bonus-engine/internal/scripting"
	"github.com/KirkDiggler/bonus-engine/internal/services/collector"
	"github.com/KirkDiggler/bonus-engine/internal/services/resolution"
	"github.com/KirkDiggler/bonus-engine/internal/uuid"
)

// bonusSeparator joins a host UUID with a bonus id in fully-qualified
// bonus identifiers.
const bonusSeparator = ".Bonus."

// Service is the stable contract the engine's consumers program against.
type Service interface {
	// Collection returns every bonus stored on the host, sorted.
	Collection(host entities.Document) []*babonus.Bonus

	// BonusesOfType returns the host's bonuses of one roll kind.
	BonusesOfType(host entities.Document, typ babonus.Type) []*babonus.Bonus

	// ApplicableBonuses collects and resolves the bonuses that apply to a
	// pending roll.
	ApplicableBonuses(input *ApplicableInput) (*resolution.ResolveOutput, error)

	// Create validates and persists a new bonus on the host.
	Create(ctx context.Context, input *CreateInput) (*babonus.Bonus, error)

	// Update replaces a stored record's data, re-validating and trimming
	// non-present filters.
	Update(ctx context.Context, host entities.Document, data babonus.Data) (*babonus.Bonus, error)

	// Toggle flips a bonus's enabled state.
	Toggle(ctx context.Context, host entities.Document, id string) (*babonus.Bonus, error)

	// Duplicate copies a bonus on the same host under a fresh id.
	Duplicate(ctx context.Context, host entities.Document, id string) (*babonus.Bonus, error)

	// Move transfers a bonus from one host document to another.
	Move(ctx context.Context, from, to entities.Document, id string) error

	// Delete removes a bonus record.
	Delete(ctx context.Context, host entities.Document, id string) error

	// FromUUID resolves a fully-qualified bonus identifier
	// ("Actor.a1.Item.i2.Bonus.b3") to its hydrated bonus.
	FromUUID(ctx context.Context, fqid string) (*babonus.Bonus, error)
}

// ApplicableInput describes one pending roll.
type ApplicableInput struct {
	Type  babonus.Type
	Actor *entities.Actor
	// Item is the item being rolled with, when any.
	Item *entities.Item
	// Activity is the specific item activity in use.
	Activity *entities.Activity
	// Scene is the battlefield snapshot; nil skips aura collection.
	Scene *entities.Scene
	// Target is the targeted token, when one is selected.
	Target  *entities.Token
	Details filters.Details
}

// CreateInput names a new bonus.
type CreateInput struct {
	Host entities.Document
	Type babonus.Type
	Name string
}

// ServiceConfig holds configuration for the query API service.
type ServiceConfig struct {
	Repository documents.Repository
	Collector  collector.Service
	Resolution resolution.Service

	// FlagScope is the flags-bag namespace bonus records live under.
	FlagScope string
	// Scripts powers the custom-script filter; nil disables it.
	Scripts       *scripting.Runner
	Evaluator     dice.Evaluator
	UUIDGenerator uuid.Generator
	Logger        *zap.Logger
}

type service struct {
	repo       documents.Repository
	collector  collector.Service
	resolution resolution.Service

	scope   string
	scripts *scripting.Runner
	eval    dice.Evaluator
	uuidGen uuid.Generator
	logger  *zap.Logger
}

// NewService creates the query API façade.
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("document repository is required")
	}
	if cfg.Collector == nil {
		panic("collector service is required")
	}
	if cfg.Resolution == nil {
		panic("resolution service is required")
	}

	svc := &service{
		repo:       cfg.Repository,
		collector:  cfg.Collector,
		resolution: cfg.Resolution,
		scope:      cfg.FlagScope,
		scripts:    cfg.Scripts,
		eval:       cfg.Evaluator,
		uuidGen:    cfg.UUIDGenerator,
		logger:     cfg.Logger,
	}
	if svc.scope == "" {
		panic("flag scope is required")
	}
	if svc.eval == nil {
		svc.eval = dice.NewStandardEvaluator()
	}
	if svc.uuidGen == nil {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

func (s *service) Collection(host entities.Document) []*babonus.Bonus {
	return babonus.ReadCollection(host, s.scope)
}

func (s *service) BonusesOfType(host entities.Document, typ babonus.Type) []*babonus.Bonus {
	var out []*babonus.Bonus
	for _, b := range s.Collection(host) {
		if b.Type == typ {
			out = append(out, b)
		}
	}
	return out
}

func (s *service) ApplicableBonuses(input *ApplicableInput) (*resolution.ResolveOutput, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.Actor == nil {
		return nil, engerr.InvalidArgument("acting actor is required")
	}

	candidates, err := s.collector.Collect(&collector.CollectInput{
		Type:  input.Type,
		Actor: input.Actor,
		Item:  input.Item,
		Scene: input.Scene,
	})
	if err != nil {
		return nil, engerr.Wrap(err, "failed to collect candidate bonuses")
	}

	rollData := input.Actor.RollData()
	if input.Item != nil {
		rollData = input.Item.RollData()
	}

	var token *entities.Token
	if input.Scene != nil {
		token = input.Scene.TokenFor(input.Actor.ID)
	}

	fctx := &filters.Context{
		Type:     input.Type,
		Actor:    input.Actor,
		Item:     input.Item,
		Activity: input.Activity,
		Token:    token,
		Target:   input.Target,
		Detail:   input.Details,
		RollData: rollData,
		Scripts:  s.scripts,
		Eval:     s.eval,
		Logger:   s.logger,
	}

	return s.resolution.Resolve(&resolution.ResolveInput{
		Context:    fctx,
		Candidates: candidates,
		Resolver:   collector.NewSnapshotResolver(input.Actor, input.Scene),
	})
}

func (s *service) Create(ctx context.Context, input *CreateInput) (*babonus.Bonus, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.Host == nil {
		return nil, engerr.InvalidArgument("host document is required")
	}

	b, err := babonus.New(input.Type, input.Name)
	if err != nil {
		return nil, err
	}
	b.ID = s.uuidGen.New()
	b.Host = input.Host
	b.Sort = len(s.Collection(input.Host)) + 1

	if err := s.persist(ctx, input.Host, b); err != nil {
		return nil, err
	}

	s.logger.Info("bonus created",
		zap.String("bonus", b.UUID()),
		zap.String("type", string(b.Type)))
	return b, nil
}

func (s *service) Update(ctx context.Context, host entities.Document, data babonus.Data) (*babonus.Bonus, error) {
	if host == nil {
		return nil, engerr.InvalidArgument("host document is required")
	}
	if existing := babonus.ReadBonus(host, s.scope, data.ID); existing == nil {
		return nil, engerr.NotFoundf("bonus '%s' not found on %s", data.ID, host.UUID())
	}

	b, err := babonus.FromData(data, host)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, host, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Toggle(ctx context.Context, host entities.Document, id string) (*babonus.Bonus, error) {
	b := babonus.ReadBonus(host, s.scope, id)
	if b == nil {
		return nil, engerr.NotFoundf("bonus '%s' not found on %s", id, hostUUID(host))
	}

	b.Enabled = !b.Enabled
	if err := s.persist(ctx, host, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Duplicate(ctx context.Context, host entities.Document, id string) (*babonus.Bonus, error) {
	src := babonus.ReadBonus(host, s.scope, id)
	if src == nil {
		return nil, engerr.NotFoundf("bonus '%s' not found on %s", id, hostUUID(host))
	}

	copyData := src.Data.Clone()
	copyData.ID = s.uuidGen.New()
	copyData.Name = src.Name + " (Copy)"
	copyData.Sort = len(s.Collection(host)) + 1

	b, err := babonus.FromData(copyData, host)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, host, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Move(ctx context.Context, from, to entities.Document, id string) error {
	if from == nil || to == nil {
		return engerr.InvalidArgument("both host documents are required")
	}

	src := babonus.ReadBonus(from, s.scope, id)
	if src == nil {
		return engerr.NotFoundf("bonus '%s' not found on %s", id, from.UUID())
	}

	moved, err := babonus.FromData(src.Data, to)
	if err != nil {
		return err
	}
	if err := babonus.WriteBonus(to, s.scope, moved.ToData(filters.Storable)); err != nil {
		return err
	}
	if _, err := babonus.RemoveBonus(from, s.scope, id); err != nil {
		return err
	}

	if err := s.saveRoot(ctx, to); err != nil {
		return err
	}
	if rootKey(from) != rootKey(to) {
		if err := s.saveRoot(ctx, from); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, host entities.Document, id string) error {
	removed, err := babonus.RemoveBonus(host, s.scope, id)
	if err != nil {
		return err
	}
	if !removed {
		return engerr.NotFoundf("bonus '%s' not found on %s", id, hostUUID(host))
	}
	if err := s.saveRoot(ctx, host); err != nil {
		return err
	}

	s.logger.Info("bonus deleted",
		zap.String("host", host.UUID()),
		zap.String("id", id))
	return nil
}

func (s *service) FromUUID(ctx context.Context, fqid string) (*babonus.Bonus, error) {
	idx := strings.LastIndex(fqid, bonusSeparator)
	if idx <= 0 || idx+len(bonusSeparator) >= len(fqid) {
		return nil, engerr.InvalidArgumentf("malformed bonus identifier %q", fqid)
	}
	hostRef := fqid[:idx]
	id := fqid[idx+len(bonusSeparator):]

	host, err := s.repo.Resolve(ctx, hostRef)
	if err != nil {
		return nil, err
	}

	b := babonus.ReadBonus(host, s.scope, id)
	if b == nil {
		return nil, engerr.NotFoundf("bonus '%s' not found on %s", id, hostRef)
	}
	return b, nil
}

// persist writes the trimmed record into the host's flags bag and saves
// the owning root document.
func (s *service) persist(ctx context.Context, host entities.Document, b *babonus.Bonus) error {
	if err := babonus.WriteBonus(host, s.scope, b.ToData(filters.Storable)); err != nil {
		return err
	}
	return s.saveRoot(ctx, host)
}

// saveRoot persists the root document that owns host: the actor for
// actors, items and effects; the scene for tokens and templates.
func (s *service) saveRoot(ctx context.Context, host entities.Document) error {
	switch doc := host.(type) {
	case *entities.Actor:
		return s.repo.SaveActor(ctx, doc)
	case *entities.Item:
		if doc.Parent == nil {
			return engerr.Validationf("item '%s' has no owning actor to persist", doc.ID)
		}
		return s.repo.SaveActor(ctx, doc.Parent)
	case *entities.ActiveEffect:
		owner := doc.Actor()
		if owner == nil {
			return engerr.Validationf("effect '%s' has no owning actor to persist", doc.ID)
		}
		return s.repo.SaveActor(ctx, owner)
	case *entities.Token:
		if doc.Scene == nil {
			return engerr.Validationf("token '%s' has no scene to persist", doc.ID)
		}
		return s.repo.SaveScene(ctx, doc.Scene)
	case *entities.Template:
		if doc.Scene == nil {
			return engerr.Validationf("template '%s' has no scene to persist", doc.ID)
		}
		return s.repo.SaveScene(ctx, doc.Scene)
	}
	return engerr.InvalidArgumentf("unsupported host document kind %q", host.DocumentKind())
}

// rootKey identifies a host's persistence root so Move can avoid a double
// save when both ends share one.
func rootKey(host entities.Document) string {
	switch doc := host.(type) {
	case *entities.Actor:
		return doc.UUID()
	case *entities.Item:
		if doc.Parent != nil {
			return doc.Parent.UUID()
		}
	case *entities.ActiveEffect:
		if owner := doc.Actor(); owner != nil {
			return owner.UUID()
		}
	case *entities.Token:
		if doc.Scene != nil {
			return doc.Scene.UUID()
		}
	case *entities.Template:
		if doc.Scene != nil {
			return doc.Scene.UUID()
		}
	}
	return host.UUID()
}

func hostUUID(host entities.Document) string {
	if host == nil {
		return ""
	}
	return host.UUID()
}
