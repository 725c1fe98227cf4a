package collector

import (
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// NewSnapshotResolver exposes the pass resolver so collaborating services
// (resolution, the query API) can walk the same snapshot the collector
// used.
func NewSnapshotResolver(subject *entities.Actor, scene *entities.Scene) bonus.Resolver {
	return newSnapshotResolver(subject, scene)
}

// snapshotResolver resolves dotted document UUIDs against the pass's
// in-memory snapshot: the acting actor, the scene, and every actor
// hydrated onto a scene token. Broken references resolve to nil, never
// errors; derived relationships degrade with them.
type snapshotResolver struct {
	subject *entities.Actor
	scene   *entities.Scene
}

func newSnapshotResolver(subject *entities.Actor, scene *entities.Scene) snapshotResolver {
	return snapshotResolver{subject: subject, scene: scene}
}

func (r snapshotResolver) Resolve(uuid string) entities.Document {
	steps := entities.ParseUUID(uuid)
	if len(steps) == 0 {
		return nil
	}

	current := r.root(entities.DocumentKind(steps[0][0]), steps[0][1])
	for _, step := range steps[1:] {
		if current == nil {
			return nil
		}
		current = childOf(current, entities.DocumentKind(step[0]), step[1])
	}
	return current
}

func (r snapshotResolver) root(kind entities.DocumentKind, id string) entities.Document {
	switch kind {
	case entities.KindActor:
		if r.subject != nil && r.subject.ID == id {
			return r.subject
		}
		if r.scene != nil {
			for _, t := range r.scene.Tokens {
				if t.Actor != nil && t.Actor.ID == id {
					return t.Actor
				}
			}
		}
	case entities.KindScene:
		if r.scene != nil && r.scene.ID == id {
			return r.scene
		}
	}
	return nil
}

func childOf(parent entities.Document, kind entities.DocumentKind, id string) entities.Document {
	switch host := parent.(type) {
	case *entities.Actor:
		switch kind {
		case entities.KindItem:
			if item := host.Item(id); item != nil {
				return item
			}
		case entities.KindEffect:
			if ef := host.Effect(id); ef != nil {
				return ef
			}
		}
	case *entities.Item:
		if kind == entities.KindEffect {
			for _, ef := range host.Effects {
				if ef.ID == id {
					return ef
				}
			}
		}
	case *entities.Scene:
		switch kind {
		case entities.KindToken:
			for _, t := range host.Tokens {
				if t.ID == id {
					return t
				}
			}
		case entities.KindTemplate:
			for _, t := range host.Templates {
				if t.ID == id {
					return t
				}
			}
		}
	}
	return nil
}
