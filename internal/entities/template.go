package entities

// TemplateShape is the geometric form of an area-effect template.
type TemplateShape string

const (
	TemplateCircle TemplateShape = "circle"
	TemplateCone   TemplateShape = "cone"
	TemplateRect   TemplateShape = "rect"
	TemplateRay    TemplateShape = "ray"
)

// Template is an area-effect template placed on a scene, typically by a
// spell activity. Templates can host bonuses that apply to any token
// standing inside their shape.
type Template struct {
	ID    string        `json:"id"`
	Shape TemplateShape `json:"shape"`

	// X/Y is the placement origin in pixels.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Distance is the template's reach in scene distance units (ft).
	Distance float64 `json:"distance"`
	// Direction is the facing angle in degrees, for cones and rays.
	Direction float64 `json:"direction"`
	// Angle is the cone's arc in degrees.
	Angle float64 `json:"angle"`
	// TemplateWidth is the ray width in distance units.
	TemplateWidth float64 `json:"width"`

	// OriginItemUUID records the item whose activity placed this template.
	OriginItemUUID string `json:"origin_item_uuid,omitempty"`
	// SpellLevel is the slot level recorded at placement time.
	SpellLevel int `json:"spell_level"`

	Hidden bool `json:"hidden"`

	Scene *Scene `json:"-"`

	FlagData FlagBag `json:"flags,omitempty"`
}

func (t *Template) DocumentKind() DocumentKind { return KindTemplate }
func (t *Template) DocumentID() string         { return t.ID }
func (t *Template) DocumentName() string       { return string(t.Shape) }

func (t *Template) UUID() string {
	parent := ""
	if t.Scene != nil {
		parent = t.Scene.UUID()
	}
	return BuildUUID(parent, KindTemplate, t.ID)
}

func (t *Template) Flags() FlagBag {
	if t.FlagData == nil {
		t.FlagData = make(FlagBag)
	}
	return t.FlagData
}
