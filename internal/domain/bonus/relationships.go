package bonus

import (
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// Resolver resolves a document UUID to its live document, or nil when the
// reference is broken. Broken references never produce errors here; every
// derived relationship degrades to nil.
type Resolver interface {
	Resolve(uuid string) entities.Document
}

// Origin returns the ultimate formula source of the bonus: the document
// whose roll data cross-document substitution reads.
//
// Host = actor or item: the host itself. Host = effect: the effect's
// recorded origin, with one level of effect->effect indirection collapsed
// to the second effect's parent. Host = template: the item that placed it.
func (b *Bonus) Origin(r Resolver) entities.Document {
	switch host := b.Host.(type) {
	case *entities.Actor:
		return host
	case *entities.Item:
		return host
	case *entities.ActiveEffect:
		return effectOrigin(host, r)
	case *entities.Template:
		if host.OriginItemUUID == "" || r == nil {
			return nil
		}
		return r.Resolve(host.OriginItemUUID)
	}
	return nil
}

func effectOrigin(ef *entities.ActiveEffect, r Resolver) entities.Document {
	if ef.Origin == "" || r == nil {
		// An unoriginated effect draws from whatever it is applied to.
		if ef.ParentItem != nil {
			return ef.ParentItem
		}
		if ef.ParentActor != nil {
			return ef.ParentActor
		}
		return nil
	}
	origin := r.Resolve(ef.Origin)
	if origin == nil {
		return nil
	}
	// One level of indirection only: an effect originating from another
	// effect resolves to that effect's parent.
	if other, ok := origin.(*entities.ActiveEffect); ok {
		if other.ParentItem != nil {
			return other.ParentItem
		}
		if other.ParentActor != nil {
			return other.ParentActor
		}
		return nil
	}
	return origin
}

// Actor returns the creature currently hosting this bonus, however
// indirectly, or nil.
func (b *Bonus) Actor(r Resolver) *entities.Actor {
	switch host := b.Host.(type) {
	case *entities.Actor:
		return host
	case *entities.Item:
		return host.Parent
	case *entities.ActiveEffect:
		return host.Actor()
	case *entities.Template:
		if item, ok := b.Origin(r).(*entities.Item); ok {
			return item.Parent
		}
	}
	return nil
}

// Item returns the item host, the effect's owning item, or the template's
// originating item; nil otherwise.
func (b *Bonus) Item(r Resolver) *entities.Item {
	switch host := b.Host.(type) {
	case *entities.Item:
		return host
	case *entities.ActiveEffect:
		return host.ParentItem
	case *entities.Template:
		if item, ok := b.Origin(r).(*entities.Item); ok {
			return item
		}
	}
	return nil
}

// Effect returns the hosting active effect, or nil.
func (b *Bonus) Effect() *entities.ActiveEffect {
	host, _ := b.Host.(*entities.ActiveEffect)
	return host
}

// Template returns the hosting area template, or nil.
func (b *Bonus) Template() *entities.Template {
	host, _ := b.Host.(*entities.Template)
	return host
}
