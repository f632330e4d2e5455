package light

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithTarget is an option builder that sets the point the light is aimed at.
//
// Parameters:
//   - target: the world-space target
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(target [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = target
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - color: the light color as (r, g, b)
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(color [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithCastsShadows is an option builder that sets whether the light renders a shadow map.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}
