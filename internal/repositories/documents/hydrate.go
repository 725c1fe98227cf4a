package documents

import (
	"context"

	engerr "github.com/KirkDiggler/bonus-engine/internal/errors"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// hydrateActor restores the parent back-references JSON omits.
func hydrateActor(actor *entities.Actor) {
	for _, item := range actor.Items {
		item.Parent = actor
		for _, ef := range item.Effects {
			ef.ParentItem = item
			ef.ParentActor = nil
		}
	}
	for _, ef := range actor.Effects {
		ef.ParentActor = actor
		ef.ParentItem = nil
	}
}

// hydrateScene restores scene back-references; token actors are attached
// by the repository implementations.
func hydrateScene(scene *entities.Scene) {
	for _, t := range scene.Tokens {
		t.Scene = scene
	}
	for _, t := range scene.Templates {
		t.Scene = scene
	}
}

// resolveWith walks a dotted UUID using the repository's root lookups.
// Shared by every implementation so resolution semantics cannot drift.
func resolveWith(ctx context.Context, r Repository, uuid string) (entities.Document, error) {
	steps := entities.ParseUUID(uuid)
	if len(steps) == 0 {
		return nil, engerr.InvalidArgumentf("malformed document uuid %q", uuid)
	}

	var current entities.Document
	switch entities.DocumentKind(steps[0][0]) {
	case entities.KindActor:
		actor, err := r.GetActor(ctx, steps[0][1])
		if err != nil {
			return nil, err
		}
		current = actor
	case entities.KindScene:
		scene, err := r.GetScene(ctx, steps[0][1])
		if err != nil {
			return nil, err
		}
		current = scene
	default:
		return nil, engerr.InvalidArgumentf("uuid %q does not start at a root document", uuid)
	}

	for _, step := range steps[1:] {
		next, err := childDocument(current, entities.DocumentKind(step[0]), step[1])
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func childDocument(parent entities.Document, kind entities.DocumentKind, id string) (entities.Document, error) {
	switch host := parent.(type) {
	case *entities.Actor:
		switch kind {
		case entities.KindItem:
			if item := host.Item(id); item != nil {
				return item, nil
			}
		case entities.KindEffect:
			if ef := host.Effect(id); ef != nil {
				return ef, nil
			}
		}
	case *entities.Item:
		if kind == entities.KindEffect {
			for _, ef := range host.Effects {
				if ef.ID == id {
					return ef, nil
				}
			}
		}
	case *entities.Scene:
		switch kind {
		case entities.KindToken:
			for _, t := range host.Tokens {
				if t.ID == id {
					return t, nil
				}
			}
		case entities.KindTemplate:
			for _, t := range host.Templates {
				if t.ID == id {
					return t, nil
				}
			}
		}
	}
	return nil, engerr.NotFoundf("document %s.%s not found under %s", kind, id, parent.UUID())
}
