package filters

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// Predicate decides whether one bonus survives for the current roll, given
// its stored filter value. Predicates must not panic and must not treat
// missing context as an error.
type Predicate func(ctx *Context, b *bonus.Bonus, raw json.RawMessage) bool

// StoragePredicate decides whether a stored value counts as present for
// serialization. Values that are not present are dropped on save.
type StoragePredicate func(raw json.RawMessage) bool

// Descriptor is one registry entry: a plain record instead of a filter
// class hierarchy. Availability per bonus variant comes from the variant
// schema, not from the descriptor.
type Descriptor struct {
	Name       string
	Repeatable bool
	Evaluate   Predicate
	Storable   StoragePredicate
}

var registry = map[string]Descriptor{}

func register(d Descriptor) {
	registry[d.Name] = d
}

// Lookup returns the descriptor for a filter name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names returns every registered filter name.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Storable implements the bonus.StorageRule contract over the registry.
// Unknown filters are never storable.
func Storable(name string, raw json.RawMessage) bool {
	d, ok := registry[name]
	if !ok {
		return false
	}
	return d.Storable(raw)
}

// AvailableFor returns the filter names offered to the given bonus: the
// variant's schema set, minus non-repeatable filters the bonus already
// carries, minus filters whose contextual requirement the host fails
// (spell filters need a spell host item, weapon filters a weapon).
func AvailableFor(b *bonus.Bonus) []string {
	var out []string
	for name := range bonus.AllowedFilters(b.Type) {
		d, ok := registry[name]
		if !ok {
			continue
		}
		if !d.Repeatable {
			if _, has := b.Filters[name]; has {
				continue
			}
		}
		if !contextuallyAvailable(name, b) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// contextuallyAvailable applies per-filter host requirements.
func contextuallyAvailable(name string, b *bonus.Bonus) bool {
	item, _ := b.Host.(*entities.Item)
	switch name {
	case "baseWeapons", "weaponProperties", "attackModes":
		// Only meaningful when the host is an item and not a spell.
		return item == nil || item.Type != entities.ItemTypeSpell
	case "spellComponents", "spellSchools", "preparationModes":
		return item == nil || item.Type == entities.ItemTypeSpell
	}
	return true
}

// Passes evaluates every declared filter on the bonus against the roll
// context: AND across filters. Filters outside the variant's schema are
// ignored; unknown names are logged once and skipped so an out-of-date
// record never breaks a roll.
func Passes(ctx *Context, b *bonus.Bonus) bool {
	if len(b.Filters) == 0 {
		return true
	}
	allowed := bonus.AllowedFilters(b.Type)
	for name, raw := range b.Filters {
		if !allowed[name] {
			continue
		}
		d, ok := registry[name]
		if !ok {
			ctx.logger().Debug("skipping unknown filter",
				zap.String("filter", name),
				zap.String("bonus", b.Name))
			continue
		}
		if !d.Evaluate(ctx, b, raw) {
			return false
		}
	}
	return true
}

// Storage predicates shared by several descriptors.

func storableStringSet(raw json.RawMessage) bool {
	return nonEmptyStrings(raw)
}

func storableNonEmptyString(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return strings.TrimSpace(s) != ""
}
