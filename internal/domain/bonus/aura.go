package bonus

import (
	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// AuraDisposition restricts which tokens an aura reaches.
type AuraDisposition string

const (
	AuraAlly  AuraDisposition = "ally"
	AuraEnemy AuraDisposition = "enemy"
	AuraAny   AuraDisposition = "any"
)

// RangeUnlimited is the sentinel range meaning the aura spans the scene.
const RangeUnlimited = "unlimited"

// AuraRequirements gates aura delivery on unobstructed sight or movement.
type AuraRequirements struct {
	Sight bool `json:"sight"`
	Move  bool `json:"move"`
}

// Aura configures a bonus that propagates from its holder to other tokens
// within range, or to everything standing in an area template.
type Aura struct {
	Enabled bool `json:"enabled"`
	// Template marks the aura as carried by an area-effect template rather
	// than a token radius.
	Template bool `json:"template"`
	// Range is a formula evaluating to a distance in scene units, or the
	// "unlimited" sentinel. Ignored for template auras.
	Range string `json:"range,omitempty"`
	// Self extends a radius aura to its own holder.
	Self        bool            `json:"self"`
	Disposition AuraDisposition `json:"disposition,omitempty"`
	// Blockers lists status ids that suppress the aura while present on the
	// holder, unless the holder is immune to them.
	Blockers []string         `json:"blockers,omitempty"`
	Require  AuraRequirements `json:"require"`
}

// MatchesDisposition applies the shared disposition rule: "any" always
// matches, "ally" requires equality, "enemy" requires the friendly/hostile
// pair in either order. Neutral and secret tokens never count as enemies.
func (a *Aura) MatchesDisposition(holder, target entities.Disposition) bool {
	switch a.Disposition {
	case AuraAny, "":
		return true
	case AuraAlly:
		return holder == target
	case AuraEnemy:
		return (holder == entities.DispositionFriendly && target == entities.DispositionHostile) ||
			(holder == entities.DispositionHostile && target == entities.DispositionFriendly)
	}
	return false
}

// IsTokenAura reports whether the bonus is a valid radius aura: enabled
// aura, not template-borne, and not exclusive (an exclusive bonus binds to
// its own item and cannot radiate).
func (b *Bonus) IsTokenAura() bool {
	return b.Aura.Enabled && !b.Aura.Template && !b.Exclusive
}

// IsTemplateAura reports whether the bonus is a valid template aura: an
// enabled template aura hosted on (or under) an item that places templates.
func (b *Bonus) IsTemplateAura() bool {
	if !b.Aura.Enabled || !b.Aura.Template || b.Exclusive {
		return false
	}
	item, ok := b.Host.(*entities.Item)
	if !ok {
		if ef, isEffect := b.Host.(*entities.ActiveEffect); isEffect {
			item = ef.ParentItem
		}
	}
	return item != nil && item.PlacesTemplates
}

// IsAuraBlocked reports whether the holder currently suffers a blocking
// status it is not immune to.
func (b *Bonus) IsAuraBlocked(holder *entities.Actor) bool {
	if holder == nil {
		return false
	}
	for _, status := range b.Aura.Blockers {
		if holder.HasStatus(status) && !holder.IsImmuneTo(status) {
			return true
		}
	}
	return false
}

// IsAffectingSelf reports whether the bonus also applies to its own holder:
// every non-aura bonus does, template auras follow their Self flag, and
// radius auras follow theirs.
func (b *Bonus) IsAffectingSelf() bool {
	if !b.Aura.Enabled {
		return true
	}
	return b.Aura.Self
}
