package game_object

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/world"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the GameObject's unique identifier.
//
// Parameters:
//   - id: the object ID
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets the initial enabled state of the GameObject.
//
// Parameters:
//   - enabled: true to draw the object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the Model drawn by the GameObject.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithPosition sets the initial world-space position of the GameObject.
//
// Parameters:
//   - position: the initial position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(position [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = position
		obj.positioned = true
	}
}

// WithBody lets a physics body drive the GameObject's position.
// The body starts at the object's initial position.
//
// Parameters:
//   - body: the body to follow
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the body
func WithBody(body *world.Body) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.body = body
	}
}

// WithScale sets the per-axis scale of the GameObject.
//
// Parameters:
//   - scale: the scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(scale [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = scale
	}
}

// WithUniformScale sets the same scale on every axis.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithUniformScale(s float32) GameObjectBuilderOption {
	return WithScale([3]float32{s, s, s})
}

// WithColor sets the object colour.
//
// Parameters:
//   - color: RGB in 0..1
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the colour
func WithColor(color [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = color
	}
}

// WithShading selects the program that draws the GameObject in the lit pass.
//
// Parameters:
//   - shading: ShadingLit or ShadingUnlit
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the shading
func WithShading(shading renderer.Shading) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.shading = shading
	}
}

// WithCastsShadow sets whether the GameObject is drawn into the shadow map.
//
// Parameters:
//   - casts: true to cast shadows
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow casting
func WithCastsShadow(casts bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castsShadow = casts
	}
}

// WithLight attaches a light to the GameObject, turning it into the light's marker.
// The light is moved to the object's initial position when one is set, otherwise the object starts at the light.
//
// Parameters:
//   - l: the light to mark
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the attached light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.attachedLight = l
	}
}
