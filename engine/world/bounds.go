package world

import "github.com/Carmen-Shannon/oxy-shadow/common"

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return common.Scale3(common.Add3(b.Min, b.Max), 0.5)
}

// Corners returns the 8 corners of the box.
//
// Returns:
//   - [][3]float32: the corners, min corner first and max corner last
func (b Bounds) Corners() [][3]float32 {
	corners := make([][3]float32, 0, 8)
	for _, x := range []float32{b.Min[0], b.Max[0]} {
		for _, y := range []float32{b.Min[1], b.Max[1]} {
			for _, z := range []float32{b.Min[2], b.Max[2]} {
				corners = append(corners, [3]float32{x, y, z})
			}
		}
	}
	return corners
}

// Diagonal returns the distance between the min and max corners.
func (b Bounds) Diagonal() float32 {
	return common.Length3(common.Sub3(b.Max, b.Min))
}

// Contains reports whether p lies inside the box, walls included.
func (b Bounds) Contains(p [3]float32) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Valid reports whether Min is strictly below Max on every axis.
func (b Bounds) Valid() bool {
	for i := range 3 {
		if b.Min[i] >= b.Max[i] {
			return false
		}
	}
	return true
}
