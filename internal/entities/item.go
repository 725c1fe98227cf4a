package entities

// ItemType is the broad item category. Filter predicates match against it.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeEquipment  ItemType = "equipment"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeTool       ItemType = "tool"
	ItemTypeSpell      ItemType = "spell"
	ItemTypeFeat       ItemType = "feat"
	ItemTypeClass      ItemType = "class"
	ItemTypeContainer  ItemType = "container"
)

// AttunementState describes whether an item needs and has attunement.
type AttunementState string

const (
	AttunementNone     AttunementState = ""
	AttunementRequired AttunementState = "required"
	AttunementAttuned  AttunementState = "attuned"
)

// ItemUses is the limited-uses pool on an item.
type ItemUses struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	// AutoDestroy marks consumables that are deleted when their last use is spent.
	AutoDestroy bool `json:"auto_destroy"`
}

// Activity is one usable action an item offers (attack, save, damage, ...).
type Activity struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
	// Activation is the action cost type ("action", "bonus", "reaction", ...).
	Activation string `json:"activation"`
	// SaveAbility is the ability keyed save DC for save activities.
	SaveAbility string `json:"save_ability,omitempty"`
}

// Item is an owned document: weapon, gear, spell, feature or tool.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       ItemType `json:"type"`
	Identifier string   `json:"identifier"`

	Equipped   bool            `json:"equipped"`
	Attunement AttunementState `json:"attunement"`
	// RequiresCrew marks vehicle components that only function while crewed.
	RequiresCrew bool `json:"requires_crew"`
	Crewed       bool `json:"crewed"`

	Quantity int      `json:"quantity"`
	Uses     ItemUses `json:"uses"`

	// BaseItem is the generic item identifier ("longsword", "plate", ...).
	BaseItem         string   `json:"base_item,omitempty"`
	WeaponProperties []string `json:"weapon_properties,omitempty"`
	DamageTypes      []string `json:"damage_types,omitempty"`
	Ability          string   `json:"ability,omitempty"`
	FeatureType      string   `json:"feature_type,omitempty"`
	// Proficient marks whether the owning actor adds proficiency when
	// using this item.
	Proficient bool `json:"proficient"`

	// Spell fields.
	Level           int      `json:"level,omitempty"`
	School          string   `json:"school,omitempty"`
	Components      []string `json:"components,omitempty"`
	PreparationMode string   `json:"preparation_mode,omitempty"`

	// PlacesTemplates marks items whose activities put an area template on
	// the scene; required for a template aura to be valid.
	PlacesTemplates bool `json:"places_templates"`

	Activities []*Activity     `json:"activities,omitempty"`
	Effects    []*ActiveEffect `json:"effects,omitempty"`

	Parent *Actor `json:"-"`

	FlagData FlagBag `json:"flags,omitempty"`
}

func (i *Item) DocumentKind() DocumentKind { return KindItem }
func (i *Item) DocumentID() string         { return i.ID }
func (i *Item) DocumentName() string       { return i.Name }

func (i *Item) UUID() string {
	parent := ""
	if i.Parent != nil {
		parent = i.Parent.UUID()
	}
	return BuildUUID(parent, KindItem, i.ID)
}

func (i *Item) Flags() FlagBag {
	if i.FlagData == nil {
		i.FlagData = make(FlagBag)
	}
	return i.FlagData
}

// Activity returns the activity with the given id, or nil.
func (i *Item) Activity(id string) *Activity {
	for _, act := range i.Activities {
		if act.ID == id {
			return act
		}
	}
	return nil
}

// CanEquip reports whether the equipped toggle is meaningful for this item.
func (i *Item) CanEquip() bool {
	switch i.Type {
	case ItemTypeWeapon, ItemTypeEquipment, ItemTypeTool, ItemTypeConsumable, ItemTypeContainer:
		return true
	}
	return false
}

// CanAttune reports whether the item participates in attunement at all.
func (i *Item) CanAttune() bool {
	return i.Attunement != AttunementNone
}

// HasLimitedUses reports whether the item carries a uses pool.
func (i *Item) HasLimitedUses() bool {
	return i.Uses.Max > 0
}

// IsSuppressed reports whether the item's bonuses are inactive: unequipped
// gear, items requiring attunement that are not attuned, or uncrewed
// vehicle components.
func (i *Item) IsSuppressed() bool {
	if i.CanEquip() && !i.Equipped {
		return true
	}
	if i.Attunement == AttunementRequired {
		return true
	}
	if i.RequiresCrew && !i.Crewed {
		return true
	}
	return false
}

// RollData returns the item's formula variable tree, layered over its
// owner's so "@item.level" style paths resolve beside actor paths.
func (i *Item) RollData() map[string]any {
	data := map[string]any{}
	if i.Parent != nil {
		data = i.Parent.RollData()
	}
	data["item"] = map[string]any{
		"name":     i.Name,
		"level":    i.Level,
		"quantity": i.Quantity,
		"uses":     map[string]any{"value": i.Uses.Value, "max": i.Uses.Max},
	}
	return data
}
