package input

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
)

// Field of view limits applied to scroll zoom, in degrees.
const (
	MinFov float32 = 1
	MaxFov float32 = 45
)

// Action is what the controller decided for one frame.
type Action struct {
	// Quit is set when Escape is held or the window asked to close.
	Quit bool

	// Mode is the orientation mode applied to the camera this frame.
	Mode camera.OrientationMode
}

type controllerImpl struct {
	firstMouse   bool
	lastX, lastY float64

	lockButton int
	lockTarget func() [3]float32
	worldUp    [3]float32
}

// Controller turns per-frame input snapshots into camera mutations.
//
// Keys move the camera at its speed: W/S along front, A/D along right, Space/LeftShift
// along the world up axis. Mouse motion rotates it (FreeLook) unless the lock button is
// held, in which case the camera re-aims at the lock target every frame (LockedOnTarget).
// Scroll zooms by changing the field of view within [MinFov, MaxFov].
type Controller interface {
	// Update applies one frame of input to the camera.
	//
	// Parameters:
	//   - cam: the camera to mutate
	//   - snap: the input state of this frame
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - Action: the quit request and the orientation mode applied
	Update(cam camera.Camera, snap Snapshot, dt float32) Action

	// ResetMouse forgets the last cursor position so the next one only seeds it.
	ResetMouse()
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller with the specified options applied.
// Without WithLockTarget the lock button does nothing.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		firstMouse: true,
		lockButton: common.MouseButtonLeft,
		worldUp:    [3]float32{0, 1, 0},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controllerImpl) ResetMouse() {
	c.firstMouse = true
}

func (c *controllerImpl) Update(cam camera.Camera, snap Snapshot, dt float32) Action {
	if snap.CloseRequested || snap.Pressed(common.KeyEscape) {
		return Action{Quit: true, Mode: camera.FreeLook{}}
	}

	c.move(cam, snap, dt)

	dx, dy := c.mouseDelta(snap)
	var mode camera.OrientationMode = camera.FreeLook{}
	if c.lockTarget != nil && snap.ButtonPressed(c.lockButton) {
		mode = camera.LockedOnTarget{Target: c.lockTarget()}
	}
	mode.Apply(cam, dx, dy)

	if snap.ScrollY != 0 {
		cam.SetFov(common.Clamp(cam.Fov()-float32(snap.ScrollY), MinFov, MaxFov))
	}
	return Action{Mode: mode}
}

func (c *controllerImpl) move(cam camera.Camera, snap Snapshot, dt float32) {
	front := cam.Front()
	right := cam.Right()

	var dir [3]float32
	if snap.Pressed(common.KeyW) {
		dir = common.Add3(dir, front)
	}
	if snap.Pressed(common.KeyS) {
		dir = common.Sub3(dir, front)
	}
	if snap.Pressed(common.KeyD) {
		dir = common.Add3(dir, right)
	}
	if snap.Pressed(common.KeyA) {
		dir = common.Sub3(dir, right)
	}
	if snap.Pressed(common.KeySpace) {
		dir = common.Add3(dir, c.worldUp)
	}
	if snap.Pressed(common.KeyLeftShift) {
		dir = common.Sub3(dir, c.worldUp)
	}

	// opposite keys cancel out to a zero vector, which Move ignores
	cam.Move(dir, cam.Speed()*dt)
}

// mouseDelta returns the cursor motion since the previous frame with y pointing up.
// The first valid position only seeds the last position.
func (c *controllerImpl) mouseDelta(snap Snapshot) (float32, float32) {
	if !snap.CursorValid {
		return 0, 0
	}
	if c.firstMouse {
		c.lastX, c.lastY = snap.CursorX, snap.CursorY
		c.firstMouse = false
	}
	dx := float32(snap.CursorX - c.lastX)
	dy := float32(c.lastY - snap.CursorY)
	c.lastX, c.lastY = snap.CursorX, snap.CursorY
	return dx, dy
}
