// Package bonus defines the conditional-bonus entity: the six typed
// variants, their consumption and aura sub-records, and the derived
// host relationships. A Bonus is a disposable in-memory view over the
// persisted record stored in its host document's flags bag; it holds a
// non-owning back-reference to that host and is rebuilt on every access.
package bonus

import (
	"encoding/json"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
	"github.com/KirkDiggler/bonus-engine/internal/errors"
)

// Type is the roll kind a bonus applies to. Closed set.
type Type string

const (
	TypeAttack Type = "attack"
	TypeDamage Type = "damage"
	TypeSave   Type = "save"
	TypeThrow  Type = "throw"
	TypeTest   Type = "test"
	TypeHitDie Type = "hitdie"
)

// Types lists every valid bonus type in display order.
var Types = []Type{TypeAttack, TypeDamage, TypeSave, TypeThrow, TypeTest, TypeHitDie}

// IsValidType reports whether t is one of the six known bonus types.
func IsValidType(t Type) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Data is the persisted bonus record, the wire shape stored in a host
// document's flags bag keyed by bonus id.
type Data struct {
	ID          string `json:"id"`
	Sort        int    `json:"sort"`
	Name        string `json:"name"`
	Img         string `json:"img,omitempty"`
	Type        Type   `json:"type"`
	Enabled     bool   `json:"enabled"`
	Exclusive   bool   `json:"exclusive"`
	Optional    bool   `json:"optional"`
	Reminder    bool   `json:"reminder"`
	Description string `json:"description,omitempty"`

	Consume Consumption `json:"consume"`
	Aura    Aura        `json:"aura"`

	Bonuses Formulas `json:"bonuses"`

	// Filters maps filter name to its raw configured value. Decoding and
	// evaluation belong to the filter registry; absent entries mean "no
	// constraint".
	Filters map[string]json.RawMessage `json:"filters,omitempty"`

	Flags map[string]json.RawMessage `json:"flags,omitempty"`
}

// Clone returns a deep copy of the record.
func (d Data) Clone() Data {
	out := d
	if d.Filters != nil {
		out.Filters = make(map[string]json.RawMessage, len(d.Filters))
		for k, v := range d.Filters {
			out.Filters[k] = append(json.RawMessage(nil), v...)
		}
	}
	if d.Flags != nil {
		out.Flags = make(map[string]json.RawMessage, len(d.Flags))
		for k, v := range d.Flags {
			out.Flags[k] = append(json.RawMessage(nil), v...)
		}
	}
	out.Aura.Blockers = append([]string(nil), d.Aura.Blockers...)
	if d.Bonuses.Modifiers != nil {
		mods := *d.Bonuses.Modifiers
		out.Bonuses.Modifiers = &mods
	}
	return out
}

// Bonus is the hydrated view of one persisted record, bound to the host
// document it was read from.
type Bonus struct {
	Data

	// Host is the document whose flags bag owns this record. Non-owning;
	// valid for the duration of one operation.
	Host entities.Document
}

// New creates a fresh bonus record. Type must be one of the six known
// variants and name must be non-empty. Enabled defaults to true; every
// other flag defaults to false.
func New(typ Type, name string) (*Bonus, error) {
	if !IsValidType(typ) {
		return nil, errors.InvalidArgumentf("invalid bonus type %q", typ)
	}
	if name == "" {
		return nil, errors.InvalidArgument("bonus name is required")
	}

	return &Bonus{
		Data: Data{
			Name:    name,
			Type:    typ,
			Img:     defaultIcon(typ),
			Enabled: true,
		},
	}, nil
}

// FromData hydrates a persisted record against its host document. The
// record's type must still be valid; everything else is taken as stored.
func FromData(data Data, host entities.Document) (*Bonus, error) {
	if !IsValidType(data.Type) {
		return nil, errors.InvalidArgumentf("invalid bonus type %q", data.Type)
	}
	if data.ID == "" {
		return nil, errors.InvalidArgument("bonus record has no id")
	}

	b := &Bonus{Data: data.Clone(), Host: host}
	b.Consume.Normalize()
	return b, nil
}

// UUID returns the fully-qualified bonus identifier: the host document's
// UUID joined with the bonus id.
func (b *Bonus) UUID() string {
	host := ""
	if b.Host != nil {
		host = b.Host.UUID()
	}
	return host + ".Bonus." + b.ID
}

// FilterRaw returns the stored value for the named filter, or nil.
func (b *Bonus) FilterRaw(name string) json.RawMessage {
	return b.Filters[name]
}

// SetFilter stores a raw filter value, creating the map on first use.
func (b *Bonus) SetFilter(name string, raw json.RawMessage) {
	if b.Filters == nil {
		b.Filters = make(map[string]json.RawMessage)
	}
	b.Filters[name] = raw
}

// StorageRule decides, per filter, whether a stored value counts as present.
// The filter registry supplies the canonical implementation; the bonus model
// only depends on the shape so it stays free of predicate logic.
type StorageRule func(name string, raw json.RawMessage) bool

// ToData returns the minimal persistable record: filters whose values are
// not present per the given storage rule are omitted, and formula fields
// outside the variant's schema are cleared. This keeps stale authoring
// state out of the flags bag.
func (b *Bonus) ToData(storable StorageRule) Data {
	out := b.Data.Clone()
	out.Bonuses = out.Bonuses.restrict(b.Type)

	if len(out.Filters) > 0 {
		kept := make(map[string]json.RawMessage, len(out.Filters))
		allowed := AllowedFilters(b.Type)
		for name, raw := range out.Filters {
			if !allowed[name] {
				continue
			}
			if storable != nil && !storable(name, raw) {
				continue
			}
			kept[name] = raw
		}
		if len(kept) == 0 {
			kept = nil
		}
		out.Filters = kept
	}
	return out
}
