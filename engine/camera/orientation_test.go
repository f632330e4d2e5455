package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/stretchr/testify/assert"
)

func TestFreeLookAppliesDelta(t *testing.T) {
	c := NewCamera(WithSensitivity(1))

	FreeLook{}.Apply(c, 10, 5)

	assert.InDelta(t, -80, c.Yaw(), 1e-5)
	assert.InDelta(t, 5, c.Pitch(), 1e-5)
}

func TestLockedOnTargetIgnoresDelta(t *testing.T) {
	c := NewCamera()
	target := [3]float32{3, 1, -2}

	LockedOnTarget{Target: target}.Apply(c, 400, -300)

	expected := common.Normalize3(common.Sub3(target, c.Position()))
	assertVec3InDelta(t, expected, c.Front(), 1e-6)
}

func TestLockedOnTargetReaimsEveryFrame(t *testing.T) {
	c := NewCamera()
	mode := LockedOnTarget{Target: [3]float32{0, 0, 0}}

	for i := range 5 {
		mode.Target = [3]float32{float32(i), 0, 0}
		c.Move([3]float32{0, 0, 1}, 0.5)
		mode.Apply(c, 1, 1)

		expected := common.Normalize3(common.Sub3(mode.Target, c.Position()))
		assertVec3InDelta(t, expected, c.Front(), 1e-6)
	}
}

func TestSwitchingBackToFreeLookContinuesFromLockedAim(t *testing.T) {
	c := NewCamera(WithSensitivity(1))
	LockedOnTarget{Target: [3]float32{4, 2, 0}}.Apply(c, 0, 0)
	yaw := c.Yaw()

	FreeLook{}.Apply(c, 2, 0)
	assert.InDelta(t, yaw+2, c.Yaw(), 1e-4)
}
