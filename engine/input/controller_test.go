package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithPosition([3]float32{0, 0, 0}),
		camera.WithYawPitch(-90, 0),
		camera.WithSpeed(2),
		camera.WithFov(45),
	)
}

func keys(codes ...int) map[int]bool {
	m := make(map[int]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

func assertVec3(t *testing.T, expected, actual [3]float32) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], 1e-5, "component %d", i)
	}
}

func TestMoveForwardUsesSpeedAndDelta(t *testing.T) {
	cam := newTestCamera()
	c := NewController()

	c.Update(cam, Snapshot{Keys: keys(common.KeyW)}, 0.5)
	assertVec3(t, [3]float32{0, 0, -1}, cam.Position())
}

func TestDiagonalMoveIsNormalized(t *testing.T) {
	cam := newTestCamera()
	c := NewController()

	c.Update(cam, Snapshot{Keys: keys(common.KeyW, common.KeyD)}, 1)
	pos := cam.Position()
	assert.InDelta(t, 2, common.Length3(pos), 1e-5)
	assert.Greater(t, pos[0], float32(0))
	assert.Less(t, pos[2], float32(0))
}

func TestVerticalMoveAndCancel(t *testing.T) {
	cam := newTestCamera()
	c := NewController()

	c.Update(cam, Snapshot{Keys: keys(common.KeySpace)}, 1)
	assertVec3(t, [3]float32{0, 2, 0}, cam.Position())

	c.Update(cam, Snapshot{Keys: keys(common.KeyA, common.KeyD, common.KeySpace, common.KeyLeftShift)}, 1)
	assertVec3(t, [3]float32{0, 2, 0}, cam.Position())
}

func TestFirstMouseOnlySeeds(t *testing.T) {
	cam := newTestCamera()
	c := NewController()
	front := cam.Front()

	c.Update(cam, Snapshot{CursorX: 400, CursorY: 300, CursorValid: true}, 0.016)
	assert.Equal(t, front, cam.Front())

	c.Update(cam, Snapshot{CursorX: 410, CursorY: 290, CursorValid: true}, 0.016)
	assert.Greater(t, cam.Yaw(), float32(-90))
	assert.Greater(t, cam.Pitch(), float32(0))

	c.ResetMouse()
	yaw := cam.Yaw()
	c.Update(cam, Snapshot{CursorX: 0, CursorY: 0, CursorValid: true}, 0.016)
	assert.Equal(t, yaw, cam.Yaw())
}

func TestInvalidCursorIsIgnored(t *testing.T) {
	cam := newTestCamera()
	c := NewController()
	front := cam.Front()

	c.Update(cam, Snapshot{CursorX: 999, CursorY: 999}, 0.016)
	assert.Equal(t, front, cam.Front())
}

func TestLockButtonReaimsEveryFrame(t *testing.T) {
	cam := newTestCamera()
	target := [3]float32{5, 0, 0}
	c := NewController(WithLockTarget(func() [3]float32 { return target }))
	held := Snapshot{MouseButtons: keys(common.MouseButtonLeft), CursorX: 10, CursorY: 10, CursorValid: true}

	action := c.Update(cam, held, 0.016)
	require.IsType(t, camera.LockedOnTarget{}, action.Mode)
	assertVec3(t, [3]float32{1, 0, 0}, cam.Front())

	target = [3]float32{0, 0, 5}
	held.CursorX = 500
	c.Update(cam, held, 0.016)
	assertVec3(t, [3]float32{0, 0, 1}, cam.Front())

	action = c.Update(cam, Snapshot{CursorX: 500, CursorY: 10, CursorValid: true}, 0.016)
	assert.IsType(t, camera.FreeLook{}, action.Mode)
	assertVec3(t, [3]float32{0, 0, 1}, cam.Front())
}

func TestLockButtonWithoutTargetFreeLooks(t *testing.T) {
	c := NewController()
	action := c.Update(newTestCamera(), Snapshot{MouseButtons: keys(common.MouseButtonLeft)}, 0.016)
	assert.IsType(t, camera.FreeLook{}, action.Mode)
}

func TestScrollClampsFov(t *testing.T) {
	cam := newTestCamera()
	c := NewController()

	c.Update(cam, Snapshot{ScrollY: 10}, 0.016)
	assert.Equal(t, float32(35), cam.Fov())

	for _, dy := range []float64{100, -3, -200, 7, 0.5} {
		c.Update(cam, Snapshot{ScrollY: dy}, 0.016)
		assert.GreaterOrEqual(t, cam.Fov(), MinFov)
		assert.LessOrEqual(t, cam.Fov(), MaxFov)
	}

	c.Update(cam, Snapshot{ScrollY: -1000}, 0.016)
	assert.Equal(t, MaxFov, cam.Fov())
}

func TestEscapeAndCloseQuit(t *testing.T) {
	cam := newTestCamera()
	c := NewController()

	assert.True(t, c.Update(cam, Snapshot{Keys: keys(common.KeyEscape, common.KeyW)}, 1).Quit)
	assertVec3(t, [3]float32{0, 0, 0}, cam.Position())
	assert.True(t, c.Update(cam, Snapshot{CloseRequested: true}, 1).Quit)
	assert.False(t, c.Update(cam, Snapshot{}, 1).Quit)
}
