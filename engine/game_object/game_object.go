package game_object

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/world"
)

type gameObject struct {
	id          uint64
	enabled     atomic.Bool
	mdl         model.Model
	body        *world.Body
	position    [3]float32
	scale       [3]float32
	color       [3]float32
	shading     renderer.Shading
	castsShadow bool
	positioned  bool

	// when set the object marks the light and takes its position from it
	attachedLight light.Light

	// reused model matrix
	modelMatrix [16]float32
}

// GameObject defines the interface for a drawable scene entity: a Model placed at a
// position with a uniform colour. Its position comes from, in order of precedence,
// the attached light, the physics body, or the static position.
type GameObject interface {
	renderer.Drawable

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Body returns the physics body moving this object, or nil for static objects.
	//
	// Returns:
	//   - *world.Body: the body or nil
	Body() *world.Body

	// Light returns the light this object marks, or nil.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// Position returns the current world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - [3]float32: the scale
	Scale() [3]float32

	// Color returns the object colour multiplied into every part colour.
	//
	// Returns:
	//   - [3]float32: the colour
	Color() [3]float32

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetPosition moves the object. An attached light or body is moved with it.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position [3]float32)

	// SetColor sets the object colour.
	//
	// Parameters:
	//   - color: the new colour
	SetColor(color [3]float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the specified options applied.
// Objects are enabled, lit, shadow casting, white and unit scaled by default.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the newly created GameObject
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale:       [3]float32{1, 1, 1},
		color:       [3]float32{1, 1, 1},
		shading:     renderer.ShadingLit,
		castsShadow: true,
	}
	obj.enabled.Store(true)

	for _, opt := range options {
		opt(obj)
	}

	if obj.attachedLight != nil {
		if obj.positioned {
			obj.attachedLight.SetPosition(obj.position)
		} else {
			obj.position = obj.attachedLight.Position()
		}
	}
	if obj.body != nil {
		obj.body.Position = obj.position
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Body() *world.Body {
	return g.body
}

func (g *gameObject) Light() light.Light {
	return g.attachedLight
}

func (g *gameObject) Position() [3]float32 {
	switch {
	case g.attachedLight != nil:
		return g.attachedLight.Position()
	case g.body != nil:
		return g.body.Position
	default:
		return g.position
	}
}

func (g *gameObject) Scale() [3]float32 {
	return g.scale
}

func (g *gameObject) Color() [3]float32 {
	return g.color
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetPosition(position [3]float32) {
	g.position = position
	if g.body != nil {
		g.body.Position = position
	}
	if g.attachedLight != nil {
		g.attachedLight.SetPosition(position)
	}
}

func (g *gameObject) SetColor(color [3]float32) {
	g.color = color
}

func (g *gameObject) CastsShadow() bool {
	return g.castsShadow && g.Enabled()
}

func (g *gameObject) Shading() renderer.Shading {
	return g.shading
}

// Draw sets the model matrix once, then the colour and texture flag per part before each draw.
func (g *gameObject) Draw(p renderer.Program) error {
	if !g.Enabled() || g.mdl == nil {
		return nil
	}

	common.TranslateScale(g.modelMatrix[:], g.Position(), g.scale)
	p.SetMat4(renderer.UniformModel, g.modelMatrix)

	for _, part := range g.mdl.Parts() {
		p.SetVec3(renderer.UniformObjectColor, [3]float32{
			g.color[0] * part.Color[0],
			g.color[1] * part.Color[1],
			g.color[2] * part.Color[2],
		})
		p.SetBool(renderer.UniformUseTexture, part.Batch.Texture != nil)
		if err := p.DrawIndexed(part.Batch); err != nil {
			return fmt.Errorf("object %d part %q: %w", g.id, part.Name, err)
		}
	}
	return nil
}
