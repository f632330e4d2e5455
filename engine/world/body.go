package world

// Body is a point that moves with a constant speed and bounces off the walls of a Bounds.
type Body struct {
	Position [3]float32
	Velocity [3]float32
}

// Step integrates the body by dt and reflects it off any wall it crossed.
// A crossed wall clamps the position exactly onto the wall and negates the velocity on that axis,
// so a large dt can never carry the body out of the box.
//
// Parameters:
//   - dt: elapsed time in seconds
//   - bounds: the box to stay within
//
// Returns:
//   - bool: true if any wall was hit during this step
func (b *Body) Step(dt float32, bounds Bounds) bool {
	hit := false
	for i := range 3 {
		b.Position[i] += b.Velocity[i] * dt
		switch {
		case b.Position[i] > bounds.Max[i]:
			b.Position[i] = bounds.Max[i]
			b.Velocity[i] = -b.Velocity[i]
			hit = true
		case b.Position[i] < bounds.Min[i]:
			b.Position[i] = bounds.Min[i]
			b.Velocity[i] = -b.Velocity[i]
			hit = true
		}
	}
	return hit
}
