package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/chewxy/math32"
)

const (
	// MinPitch and MaxPitch bound the vertical look angle in degrees.
	MinPitch float32 = -89.0
	MaxPitch float32 = 89.0

	DefaultViewportWidth  = 1600
	DefaultViewportHeight = 1200
	DefaultFov            = 45.0
	DefaultNear           = 0.1
	DefaultFar            = 100.0
	DefaultYaw            = -90.0
	DefaultSensitivity    = 0.05
	DefaultSpeed          = 6.0
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	front    [3]float32
	up       [3]float32
	right    [3]float32
	worldUp  [3]float32

	yaw   float32
	pitch float32

	fov    float32 // degrees
	near   float32
	far    float32
	width  int
	height int

	sensitivity float32
	speed       float32

	projectionMatrix [16]float32
}

// Camera is a free-flying yaw/pitch camera.
// Orientation is derived either from mouse deltas (ApplyMouseDelta) or from a target point (LookAt);
// both fully overwrite yaw, pitch and the front/right/up basis.
type Camera interface {
	// Position returns the eye position in world space.
	Position() [3]float32

	// Front returns the unit view direction.
	Front() [3]float32

	// Up returns the unit up vector of the current basis.
	Up() [3]float32

	// Right returns the unit right vector of the current basis.
	Right() [3]float32

	// Yaw returns the yaw angle in degrees.
	Yaw() float32

	// Pitch returns the pitch angle in degrees, always within [MinPitch, MaxPitch].
	Pitch() float32

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// Aspect returns the viewport aspect ratio (width / height).
	Aspect() float32

	Near() float32
	Far() float32

	// Sensitivity returns the degrees of rotation per pixel of mouse movement.
	Sensitivity() float32

	// Speed returns the movement speed in world units per second.
	Speed() float32

	// ViewMatrix returns lookAt(position, position+front, up) as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the cached perspective projection as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// UpdateViewport recomputes the projection for a new viewport size.
	// The caller guarantees a nonzero height.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	UpdateViewport(width, height int)

	// SetFov stores the field of view (degrees) and recomputes the projection against the last viewport.
	// The value is not clamped here; clamping is the input policy's job.
	//
	// Parameters:
	//   - fov: vertical field of view in degrees
	SetFov(fov float32)

	// ApplyMouseDelta rotates the camera by a mouse delta scaled by the sensitivity.
	// Pitch is clamped to [MinPitch, MaxPitch] and the basis is recomputed from yaw/pitch.
	//
	// Parameters:
	//   - dx: horizontal delta in pixels (positive turns right)
	//   - dy: vertical delta in pixels (positive looks up)
	ApplyMouseDelta(dx, dy float32)

	// LookAt points the camera at a world-space target and back-derives yaw/pitch
	// so that later mouse deltas continue from the new orientation.
	// The target must differ from the camera position; an equal target is ignored.
	//
	// Parameters:
	//   - target: the point to look at
	LookAt(target [3]float32)

	// Move translates the camera by normalize(direction) * distance.
	// A zero direction leaves the camera where it is.
	//
	// Parameters:
	//   - direction: the movement direction (need not be unit length)
	//   - distance: the distance to travel
	Move(direction [3]float32, distance float32)

	// SetPosition places the camera at a world-space position.
	SetPosition(position [3]float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 1600x1200 viewport, a 45 degree field of view and a
// 0.1..100 depth range, positioned at (0,0,7) looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		position:    [3]float32{0, 0, 7},
		worldUp:     [3]float32{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       0,
		fov:         DefaultFov,
		near:        DefaultNear,
		far:         DefaultFar,
		width:       DefaultViewportWidth,
		height:      DefaultViewportHeight,
		sensitivity: DefaultSensitivity,
		speed:       DefaultSpeed,
	}
	for _, option := range options {
		option(c)
	}
	c.updateVectors()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Front() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Right() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Sensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sensitivity
}

func (c *cameraImpl) Speed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.viewMatrix()
	var vp [16]float32
	common.Mul4(vp[:], c.projectionMatrix[:], view[:])
	return vp
}

func (c *cameraImpl) UpdateViewport(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	c.updateProjection()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) ApplyMouseDelta(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += dx * c.sensitivity
	c.pitch = common.Clamp(c.pitch+dy*c.sensitivity, MinPitch, MaxPitch)
	c.updateVectors()
}

func (c *cameraImpl) LookAt(target [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := common.Sub3(target, c.position)
	if common.Length3(dir) == 0 {
		return
	}
	c.front = common.Normalize3(dir)
	c.right = common.Normalize3(common.Cross3(c.front, c.worldUp))
	c.up = common.Normalize3(common.Cross3(c.right, c.front))

	c.yaw = common.Degrees(math32.Atan2(c.front[0], -c.front[2])) - 90
	c.pitch = common.Clamp(common.Degrees(math32.Asin(common.Clamp(c.front[1], -1, 1))), MinPitch, MaxPitch)
}

func (c *cameraImpl) Move(direction [3]float32, distance float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if common.Length3(direction) == 0 {
		return
	}
	c.position = common.Add3(c.position, common.Scale3(common.Normalize3(direction), distance))
}

func (c *cameraImpl) SetPosition(position [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

// aspect returns width / height. Caller must hold the mutex.
func (c *cameraImpl) aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// viewMatrix computes the view matrix from the current basis. Caller must hold the mutex.
func (c *cameraImpl) viewMatrix() [16]float32 {
	var view [16]float32
	common.LookAt(view[:], c.position, common.Add3(c.position, c.front), c.up)
	return view
}

// updateProjection recomputes the cached perspective projection. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	common.Perspective(c.projectionMatrix[:], common.Radians(c.fov), c.aspect(), c.near, c.far)
}

// updateVectors derives front, right and up from yaw and pitch. Caller must hold the mutex.
func (c *cameraImpl) updateVectors() {
	yaw := common.Radians(c.yaw)
	pitch := common.Radians(c.pitch)
	c.front = common.Normalize3([3]float32{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	})
	c.right = common.Normalize3(common.Cross3(c.front, c.worldUp))
	c.up = common.Normalize3(common.Cross3(c.right, c.front))
}
