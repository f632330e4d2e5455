package light

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/chewxy/math32"
)

// DefaultShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const DefaultShadowMapResolution = 2048

// DefaultShadowNear is the near plane of the light's orthographic projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowBias is the slope-scaled upper bound of the depth comparison bias.
const DefaultShadowBias float32 = 0.005

// DefaultShadowMinBias is the bias applied to surfaces facing the light head-on.
const DefaultShadowMinBias float32 = 0.0005

// parallelUpThreshold is the |dot(direction, worldUp)| above which lookAt would lose
// its right vector and +X is used as the up vector instead.
const parallelUpThreshold float32 = 0.99

var worldUp = [3]float32{0, 1, 0}

// OrthoBounds holds the light-view-space box of an orthographic shadow projection.
type OrthoBounds struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// LightFrustum is the fitted shadow frustum of a light for one set of scene corners.
type LightFrustum struct {
	// Direction is the unit vector from the light position toward the scene center.
	Direction [3]float32

	// View looks from the light position at the scene center.
	View [16]float32

	// Bounds are the x/y extents of the corners in light-view space plus the fixed depth range.
	Bounds OrthoBounds

	// Projection is ortho(Bounds) with a 0..1 depth range.
	Projection [16]float32

	// LightSpace is Projection * View. Upload this exact value to every pass that needs it.
	LightSpace [16]float32
}

// ComputeLightSpaceMatrix fits an orthographic light frustum around a set of world-space corners.
//
// The view looks from lightPos at the center of the corners' bounding box. The x/y bounds
// are the tightest extents of the corners in light-view space. Depth uses a fixed near plane
// and a far plane equal to the diagonal of the corners' bounding box, so the light must be
// placed within that distance of the scene. Coplanar corners produce a zero-thickness box.
//
// Parameters:
//   - corners: world-space points to enclose (typically the 8 corners of the scene volume)
//   - lightPos: world-space light position
//
// Returns:
//   - LightFrustum: the fitted view, projection and combined light-space matrix
func ComputeLightSpaceMatrix(corners [][3]float32, lightPos [3]float32) LightFrustum {
	var f LightFrustum
	if len(corners) == 0 {
		common.Identity(f.View[:])
		common.Identity(f.Projection[:])
		common.Identity(f.LightSpace[:])
		return f
	}

	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], c[i])
			hi[i] = max(hi[i], c[i])
		}
	}
	center := common.Scale3(common.Add3(lo, hi), 0.5)

	f.Direction = common.Normalize3(common.Sub3(center, lightPos))
	up := worldUp
	if math32.Abs(common.Dot3(f.Direction, worldUp)) > parallelUpThreshold {
		up = [3]float32{1, 0, 0}
	}
	common.LookAt(f.View[:], lightPos, center, up)

	first := common.TransformPoint(f.View[:], corners[0])
	xMin, xMax := first[0], first[0]
	yMin, yMax := first[1], first[1]
	for _, c := range corners[1:] {
		p := common.TransformPoint(f.View[:], c)
		xMin = min(xMin, p[0])
		xMax = max(xMax, p[0])
		yMin = min(yMin, p[1])
		yMax = max(yMax, p[1])
	}

	f.Bounds = OrthoBounds{
		Left:   xMin,
		Right:  xMax,
		Bottom: yMin,
		Top:    yMax,
		Near:   DefaultShadowNear,
		Far:    common.Length3(common.Sub3(hi, lo)),
	}
	common.Ortho(f.Projection[:], f.Bounds.Left, f.Bounds.Right, f.Bounds.Bottom, f.Bounds.Top, f.Bounds.Near, f.Bounds.Far)
	common.Mul4(f.LightSpace[:], f.Projection[:], f.View[:])
	return f
}
