package world

import "github.com/Carmen-Shannon/oxy-shadow/common"

// World owns the static play volume and the bodies bouncing inside it.
type World struct {
	bounds Bounds
	bodies []*Body
}

// NewWorld creates an empty world with the given play volume.
//
// Parameters:
//   - bounds: the static box bodies bounce inside
//
// Returns:
//   - *World: the new world
func NewWorld(bounds Bounds) *World {
	return &World{bounds: bounds}
}

// Bounds returns the static play volume.
func (w *World) Bounds() Bounds {
	return w.bounds
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// AddBody registers a body. Bodies that start outside the volume are clamped into it.
//
// Parameters:
//   - body: the body to simulate
func (w *World) AddBody(body *Body) {
	for i := range 3 {
		body.Position[i] = common.Clamp(body.Position[i], w.bounds.Min[i], w.bounds.Max[i])
	}
	w.bodies = append(w.bodies, body)
}

// Step advances every body by dt.
//
// Parameters:
//   - dt: elapsed time in seconds
//
// Returns:
//   - int: the number of bodies that hit a wall this step
func (w *World) Step(dt float32) int {
	hits := 0
	for _, b := range w.bodies {
		if b.Step(dt, w.bounds) {
			hits++
		}
	}
	return hits
}

// Corners returns the corners of the static play volume. The light fit always uses these,
// never the moving bodies, so the shadow frustum stays fixed while bodies move.
func (w *World) Corners() [][3]float32 {
	return w.bounds.Corners()
}
