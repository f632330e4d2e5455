package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// MulVec4 multiplies a column-major 4x4 matrix by a column vector.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - v: the vector
//
// Returns:
//   - [4]float32: m * v
func MulVec4(m []float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

// TransformPoint transforms a point (w = 1) by a column-major 4x4 matrix and drops w.
// Affine matrices (views, orthographic projections) need no perspective divide.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - p: the point
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m []float32, p [3]float32) [3]float32 {
	r := MulVec4(m, [4]float32{p[0], p[1], p[2], 1})
	return [3]float32{r[0], r[1], r[2]}
}

// Perspective creates a right-handed perspective projection matrix.
// Depth maps to the WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Ortho creates a right-handed orthographic projection matrix for the box
// [left,right] x [bottom,top] x [-near,-far] in view space.
// Depth maps to the WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right: x extents in view space
//   - bottom, top: y extents in view space
//   - near, far: positive distances along the view direction
func Ortho(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)

	// zero-width extents are allowed for degenerate (coplanar) inputs
	rl := right - left
	if rl == 0 {
		rl = 1
	}
	tb := top - bottom
	if tb == 0 {
		tb = 1
	}
	fn := far - near
	if fn == 0 {
		fn = 1
	}

	out[0] = 2 / rl
	out[5] = 2 / tb
	out[10] = -1 / fn
	out[12] = -(right + left) / rl
	out[13] = -(top + bottom) / tb
	out[14] = -near / fn
}

// LookAt creates a view matrix that positions and orients an eye.
// The resulting matrix transforms world coordinates to view space (looking down -Z).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: eye position in world space
//   - center: target point the eye looks at
//   - up: up vector defining orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up [3]float32) {
	z := Normalize3(Sub3(eye, center))
	x := Normalize3(Cross3(up, z))
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TranslateScale builds translate(position) * scale(scale), column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - position: translation in world space
//   - scale: per-axis scale factors
func TranslateScale(out []float32, position, scale [3]float32) {
	Identity(out)
	out[0] = scale[0]
	out[5] = scale[1]
	out[10] = scale[2]
	out[12] = position[0]
	out[13] = position[1]
	out[14] = position[2]
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math32.Pi / 180.0)
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * (180.0 / math32.Pi)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length. The zero vector is returned unchanged.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	return Scale3(v, 1/l)
}
