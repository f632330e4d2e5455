package config

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/charmbracelet/log"
)

// ErrInvalid marks a configuration that cannot start the viewer.
var ErrInvalid = errors.New("invalid configuration")

const maxTextureUnit = 5

// Validate checks the configuration and returns every problem found, joined.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalid (and common.ErrTextureUnitClash for equal units)
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		invalid("log.level: %v", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.ShadowResolution <= 0 {
		invalid("renderer.shadow_resolution %d", c.Renderer.ShadowResolution)
	}
	if c.Renderer.DiffuseUnit == c.Renderer.ShadowUnit {
		errs = append(errs, fmt.Errorf("%w: %w: unit %d", ErrInvalid, common.ErrTextureUnitClash, c.Renderer.ShadowUnit))
	}
	if c.Renderer.DiffuseUnit > maxTextureUnit || c.Renderer.ShadowUnit > maxTextureUnit {
		invalid("texture units must be at most %d", maxTextureUnit)
	}
	if c.Camera.Fov < 1 || c.Camera.Fov > 45 {
		invalid("camera.fov %g outside [1,45]", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera near/far %g/%g", c.Camera.Near, c.Camera.Far)
	}
	for i := range 3 {
		if c.World.Min[i] >= c.World.Max[i] {
			invalid("world bounds min %v not below max %v", c.World.Min, c.World.Max)
			break
		}
	}
	if c.Sphere.Scale <= 0 || c.Floor.Scale <= 0 || c.Light.MarkerScale <= 0 {
		invalid("scales must be positive")
	}
	for i, m := range c.Models {
		if m.Path == "" {
			invalid("models[%d].path is empty", i)
		}
		if m.Scale < 0 {
			invalid("models[%d].scale %g", i, m.Scale)
		}
	}
	if c.Profiler.Enabled && c.Profiler.IntervalSeconds <= 0 {
		invalid("profiler.interval_seconds %g", c.Profiler.IntervalSeconds)
	}

	return errors.Join(errs...)
}

// Warnings lists settings that start the viewer but are likely to look wrong.
//
// Returns:
//   - []string: human readable warnings, empty when none
func (c *Config) Warnings() []string {
	var warnings []string

	// the fitted far plane is the diagonal of the world box, so a light outside the
	// box's bounding sphere clips the far side of the scene out of the shadow map
	center := common.Scale3(common.Add3(c.World.Min, c.World.Max), 0.5)
	radius := common.Length3(common.Sub3(c.World.Max, c.World.Min)) / 2
	if d := common.Length3(common.Sub3(c.Light.Position, center)); d > radius {
		warnings = append(warnings, fmt.Sprintf(
			"light at %v is %.1f from the world centre, outside the bounding sphere (radius %.1f); distant shadows will be clipped",
			c.Light.Position, d, radius))
	}
	if c.Light.Color == [3]float32{} {
		warnings = append(warnings, "light colour is black; only ambient light will show")
	}
	if c.Floor.Y < c.World.Min[1] {
		warnings = append(warnings, fmt.Sprintf("floor y %g is below the world volume; its shadows fall outside the shadow map", c.Floor.Y))
	}
	return warnings
}

// LogWarnings logs every warning at warn level.
func (c *Config) LogWarnings() {
	for _, w := range c.Warnings() {
		common.LogWarn(w)
	}
}
