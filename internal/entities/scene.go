package entities

// Wall is one blocking segment on a scene, in pixel coordinates.
type Wall struct {
	Ax float64 `json:"ax"`
	Ay float64 `json:"ay"`
	Bx float64 `json:"bx"`
	By float64 `json:"by"`

	BlocksSight bool `json:"blocks_sight"`
	BlocksMove  bool `json:"blocks_move"`
}

// Scene is the battlefield snapshot a collection pass runs against. The
// collector treats it as read-only for the duration of one pass.
type Scene struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// GridSize is the pixel length of one grid cell.
	GridSize float64 `json:"grid_size"`
	// GridDistance is the in-world distance (ft) one cell spans.
	GridDistance float64 `json:"grid_distance"`

	Tokens    []*Token    `json:"tokens,omitempty"`
	Templates []*Template `json:"templates,omitempty"`
	Walls     []Wall      `json:"walls,omitempty"`

	FlagData FlagBag `json:"flags,omitempty"`
}

func (s *Scene) DocumentKind() DocumentKind { return KindScene }
func (s *Scene) DocumentID() string         { return s.ID }
func (s *Scene) DocumentName() string       { return s.Name }
func (s *Scene) UUID() string               { return BuildUUID("", KindScene, s.ID) }

func (s *Scene) Flags() FlagBag {
	if s.FlagData == nil {
		s.FlagData = make(FlagBag)
	}
	return s.FlagData
}

// TokenFor returns the first token on the scene representing the given
// actor, or nil.
func (s *Scene) TokenFor(actorID string) *Token {
	for _, t := range s.Tokens {
		if t.Actor != nil && t.Actor.ID == actorID {
			return t
		}
	}
	return nil
}

// PixelsPerUnit converts scene distance units to pixels.
func (s *Scene) PixelsPerUnit() float64 {
	if s.GridDistance <= 0 || s.GridSize <= 0 {
		return 1
	}
	return s.GridSize / s.GridDistance
}
