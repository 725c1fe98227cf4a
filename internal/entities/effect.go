package entities

// ActiveEffect is a temporary or passive effect document applied to an actor
// or carried by an item. Effects can host bonuses and record the UUID of the
// document that created them.
type ActiveEffect struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
	// Transfer marks item effects that apply to the item's owner.
	Transfer bool `json:"transfer"`
	// Statuses lists the status-condition ids this effect confers.
	Statuses []string `json:"statuses,omitempty"`
	// Origin is the UUID of the document this effect came from, if any.
	Origin string `json:"origin,omitempty"`

	// Exactly one of ParentActor/ParentItem is set.
	ParentActor *Actor `json:"-"`
	ParentItem  *Item  `json:"-"`

	FlagData FlagBag `json:"flags,omitempty"`
}

func (e *ActiveEffect) DocumentKind() DocumentKind { return KindEffect }
func (e *ActiveEffect) DocumentID() string         { return e.ID }
func (e *ActiveEffect) DocumentName() string       { return e.Name }

func (e *ActiveEffect) UUID() string {
	parent := ""
	switch {
	case e.ParentActor != nil:
		parent = e.ParentActor.UUID()
	case e.ParentItem != nil:
		parent = e.ParentItem.UUID()
	}
	return BuildUUID(parent, KindEffect, e.ID)
}

func (e *ActiveEffect) Flags() FlagBag {
	if e.FlagData == nil {
		e.FlagData = make(FlagBag)
	}
	return e.FlagData
}

// Actor returns the actor this effect ultimately applies to, walking through
// an owning item when necessary.
func (e *ActiveEffect) Actor() *Actor {
	if e.ParentActor != nil {
		return e.ParentActor
	}
	if e.ParentItem != nil {
		return e.ParentItem.Parent
	}
	return nil
}

// GrantsStatus reports whether the effect confers the given status id.
func (e *ActiveEffect) GrantsStatus(id string) bool {
	for _, s := range e.Statuses {
		if s == id {
			return true
		}
	}
	return false
}
