package entities

// Disposition is a token's stance toward the party, mirrored from the scene.
type Disposition int

const (
	DispositionSecret   Disposition = -2
	DispositionHostile  Disposition = -1
	DispositionNeutral  Disposition = 0
	DispositionFriendly Disposition = 1
)

// Token is a creature's placed presence on a scene. Position is in pixels
// (top-left corner); width and height are in grid cells.
type Token struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// ActorID persists the represented actor; Actor is hydrated by the
	// document store on load.
	ActorID string `json:"actor_id,omitempty"`
	Actor   *Actor `json:"-"`

	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Elevation float64 `json:"elevation"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`

	Disposition Disposition `json:"disposition"`
	Hidden      bool        `json:"hidden"`

	Scene *Scene `json:"-"`

	FlagData FlagBag `json:"flags,omitempty"`
}

func (t *Token) DocumentKind() DocumentKind { return KindToken }
func (t *Token) DocumentID() string         { return t.ID }
func (t *Token) DocumentName() string       { return t.Name }

func (t *Token) UUID() string {
	parent := ""
	if t.Scene != nil {
		parent = t.Scene.UUID()
	}
	return BuildUUID(parent, KindToken, t.ID)
}

func (t *Token) Flags() FlagBag {
	if t.FlagData == nil {
		t.FlagData = make(FlagBag)
	}
	return t.FlagData
}

// Footprint returns the token's larger dimension in grid cells. Used by the
// token-size filter; a 0 footprint is treated as 1.
func (t *Token) Footprint() int {
	size := t.Width
	if t.Height > size {
		size = t.Height
	}
	if size < 1 {
		size = 1
	}
	return size
}
