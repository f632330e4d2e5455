package game_object

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct{}

func (fakeMesh) IndexCount() uint32 { return 3 }
func (fakeMesh) Release()           {}

type fakeTexture struct{}

func (fakeTexture) Release() {}

type recordingProgram struct {
	mat4    map[string][16]float32
	colors  [][3]float32
	flags   []bool
	draws   []renderer.Batch
	drawErr error
}

func newRecordingProgram() *recordingProgram {
	return &recordingProgram{mat4: make(map[string][16]float32)}
}

func (p *recordingProgram) Use()                                {}
func (p *recordingProgram) SetMat4(name string, v [16]float32) { p.mat4[name] = v }
func (p *recordingProgram) SetVec3(name string, v [3]float32) {
	if name == renderer.UniformObjectColor {
		p.colors = append(p.colors, v)
	}
}
func (p *recordingProgram) SetFloat(string, float32) {}
func (p *recordingProgram) SetInt(string, int32)     {}
func (p *recordingProgram) SetBool(name string, v bool) {
	if name == renderer.UniformUseTexture {
		p.flags = append(p.flags, v)
	}
}
func (p *recordingProgram) DrawIndexed(b renderer.Batch) error {
	if p.drawErr != nil {
		return p.drawErr
	}
	p.draws = append(p.draws, b)
	return nil
}

func twoPartModel() model.Model {
	return model.NewModel(
		model.WithName("pair"),
		model.WithParts(
			model.Part{Name: "plain", Batch: renderer.Batch{Mesh: fakeMesh{}}, Color: [3]float32{1, 0.5, 1}},
			model.Part{Name: "textured", Batch: renderer.Batch{Mesh: fakeMesh{}, Texture: fakeTexture{}}, Color: [3]float32{1, 1, 1}},
		),
	)
}

func TestDefaults(t *testing.T) {
	obj := NewGameObject()
	assert.True(t, obj.Enabled())
	assert.True(t, obj.CastsShadow())
	assert.Equal(t, renderer.ShadingLit, obj.Shading())
	assert.Equal(t, [3]float32{1, 1, 1}, obj.Scale())
	assert.Equal(t, [3]float32{1, 1, 1}, obj.Color())
}

func TestDrawSetsObjectUniformsPerPart(t *testing.T) {
	obj := NewGameObject(
		WithModel(twoPartModel()),
		WithPosition([3]float32{1, 2, 3}),
		WithUniformScale(2),
		WithColor([3]float32{0.8, 0, 0.4}),
	)
	p := newRecordingProgram()
	require.NoError(t, obj.Draw(p))

	m := p.mat4[renderer.UniformModel]
	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, float32(2), m[5])
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{m[12], m[13], m[14]})

	require.Len(t, p.draws, 2)
	assert.Equal(t, [][3]float32{{0.8, 0, 0.4}, {0.8, 0, 0.4}}, p.colors)
	assert.Equal(t, []bool{false, true}, p.flags)
}

func TestDisabledObjectDrawsNothing(t *testing.T) {
	obj := NewGameObject(WithModel(twoPartModel()), WithEnabled(false))
	p := newRecordingProgram()

	require.NoError(t, obj.Draw(p))
	assert.Empty(t, p.draws)
	assert.False(t, obj.CastsShadow())

	require.NoError(t, NewGameObject().Draw(p))
	assert.Empty(t, p.draws)
}

func TestDrawErrorNamesPart(t *testing.T) {
	obj := NewGameObject(WithID(7), WithModel(twoPartModel()))
	p := newRecordingProgram()
	p.drawErr = errors.New("no pass")

	err := obj.Draw(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, p.drawErr)
	assert.Contains(t, err.Error(), "plain")
}

func TestBodyDrivesPosition(t *testing.T) {
	body := &world.Body{Velocity: [3]float32{1, 0, 0}}
	obj := NewGameObject(WithBody(body), WithPosition([3]float32{0, 5, 0}))
	assert.Equal(t, [3]float32{0, 5, 0}, body.Position)

	w := world.NewWorld(world.Bounds{Min: [3]float32{-10, -10, -10}, Max: [3]float32{10, 10, 10}})
	w.AddBody(obj.Body())
	w.Step(2)
	assert.Equal(t, [3]float32{2, 5, 0}, obj.Position())
}

func TestLightMarkerFollowsLight(t *testing.T) {
	l := light.NewLight(light.WithPosition([3]float32{10, 25, 8}))
	marker := NewGameObject(WithLight(l), WithShading(renderer.ShadingUnlit), WithCastsShadow(false))

	assert.Equal(t, [3]float32{10, 25, 8}, marker.Position())
	assert.False(t, marker.CastsShadow())
	assert.Equal(t, renderer.ShadingUnlit, marker.Shading())

	l.SetPosition([3]float32{0, 30, 0})
	assert.Equal(t, [3]float32{0, 30, 0}, marker.Position())

	marker.SetPosition([3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{1, 1, 1}, l.Position())
}

func TestExplicitPositionMovesAttachedLight(t *testing.T) {
	l := light.NewLight(light.WithPosition([3]float32{10, 25, 8}))
	NewGameObject(WithLight(l), WithPosition([3]float32{-3, 12, 4}))
	assert.Equal(t, [3]float32{-3, 12, 4}, l.Position())
}
