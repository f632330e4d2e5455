package light

import "github.com/Carmen-Shannon/oxy-shadow/common"

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position     [3]float32
	target       [3]float32
	color        [3]float32
	castsShadows bool
}

// Light defines the interface for the scene's single shadow-casting light.
//
// The light is positioned in world space and aimed at a target point (normally
// the center of the scene bounds). Its direction is always derived from those two
// points, so moving either keeps the shadow frustum and the lighting consistent.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point the light is aimed at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns normalize(target - position).
	// A light placed on its own target has a zero direction.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// CastsShadows returns whether the depth pass is rendered for this light.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position [3]float32)

	// SetTarget sets the point the light is aimed at.
	//
	// Parameters:
	//   - target: the new target
	SetTarget(target [3]float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - color: color components
	SetColor(color [3]float32)

	// SetCastsShadows sets whether the light renders a shadow map.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new white, shadow-casting Light at (0, 10, 0) aimed at the origin,
// with any provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		position:     [3]float32{0, 10, 0},
		target:       [3]float32{0, 0, 0},
		color:        [3]float32{1, 1, 1},
		castsShadows: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	return common.Normalize3(common.Sub3(l.target, l.position))
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetPosition(position [3]float32) {
	l.position = position
}

func (l *lightImpl) SetTarget(target [3]float32) {
	l.target = target
}

func (l *lightImpl) SetColor(color [3]float32) {
	l.color = color
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}
