package camera

// OrientationMode selects which of the two orientation paths drives the camera in a frame.
// Exactly one mode is applied per frame, so free-look and directed look-at never race.
type OrientationMode interface {
	// Apply updates the camera orientation for this frame.
	//
	// Parameters:
	//   - c: the camera to orient
	//   - dx, dy: the mouse delta for this frame in pixels
	Apply(c Camera, dx, dy float32)

	isOrientationMode()
}

// FreeLook rotates the camera by the mouse delta.
type FreeLook struct{}

// LockedOnTarget re-aims the camera at Target every frame it is applied; mouse deltas are ignored.
type LockedOnTarget struct {
	Target [3]float32
}

var (
	_ OrientationMode = FreeLook{}
	_ OrientationMode = LockedOnTarget{}
)

func (FreeLook) Apply(c Camera, dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	c.ApplyMouseDelta(dx, dy)
}

func (FreeLook) isOrientationMode() {}

func (m LockedOnTarget) Apply(c Camera, _, _ float32) {
	c.LookAt(m.Target)
}

func (LockedOnTarget) isOrientationMode() {}
