package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/config"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/input"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/loader"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	released int
}

func (h *fakeHandle) IndexCount() uint32 { return 6 }
func (h *fakeHandle) Release()           { h.released++ }

type frame struct {
	lightSpace [16]float32
	light      renderer.LightParams
	drawables  []renderer.Drawable
}

type fakeRenderer struct {
	width, height int
	meshes        map[geometry.ShapeKind]*fakeHandle
	textures      []*fakeHandle
	frames        []frame
	meshErr       error
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{width: 800, height: 600, meshes: map[geometry.ShapeKind]*fakeHandle{}}
}

func (f *fakeRenderer) UploadMesh(string, []byte, []uint32) (renderer.MeshHandle, error) {
	return &fakeHandle{}, nil
}

func (f *fakeRenderer) UploadTexture(string, common.TextureStagingData) (renderer.TextureHandle, error) {
	h := &fakeHandle{}
	f.textures = append(f.textures, h)
	return h, nil
}

func (f *fakeRenderer) Resize(width, height int) error {
	f.width, f.height = width, height
	return nil
}

func (f *fakeRenderer) Mesh(kind geometry.ShapeKind) (renderer.MeshHandle, error) {
	if f.meshErr != nil {
		return nil, f.meshErr
	}
	if h, ok := f.meshes[kind]; ok {
		return h, nil
	}
	h := &fakeHandle{}
	f.meshes[kind] = h
	return h, nil
}

func (f *fakeRenderer) RenderShadowedFrame(_ renderer.CameraView, lightSpace [16]float32, l renderer.LightParams, drawables []renderer.Drawable) error {
	f.frames = append(f.frames, frame{lightSpace: lightSpace, light: l, drawables: drawables})
	return nil
}

func (f *fakeRenderer) Viewport() (int, int) { return f.width, f.height }
func (f *fakeRenderer) ShadowResolution() int { return 2048 }
func (f *fakeRenderer) Release()              {}

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	s, err := NewScene(r, options...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s, r
}

func TestNewSceneRequiresRenderer(t *testing.T) {
	_, err := NewScene(nil)
	assert.Error(t, err)
}

func TestDefaultSceneLayout(t *testing.T) {
	s, r := newTestScene(t)
	cfg := config.Default()

	objects := s.Objects()
	require.Len(t, objects, 3)
	assert.Same(t, s.Sphere(), objects[0])

	sphere := objects[0]
	assert.Equal(t, cfg.Sphere.Position, sphere.Position())
	assert.Equal(t, cfg.Sphere.Color, sphere.Color())
	assert.True(t, sphere.CastsShadow())

	floor := objects[1]
	assert.Equal(t, [3]float32{0, cfg.Floor.Y, 0}, floor.Position())
	assert.Equal(t, [3]float32{100, 100, 100}, floor.Scale())
	assert.Nil(t, floor.Model().Parts()[0].Batch.Texture)

	marker := objects[2]
	assert.Equal(t, cfg.Light.Position, marker.Position())
	assert.Equal(t, renderer.ShadingUnlit, marker.Shading())
	assert.False(t, marker.CastsShadow())

	// sphere and marker share the renderer's sphere mesh
	assert.Same(t, sphere.Model().Parts()[0].Batch.Mesh, marker.Model().Parts()[0].Batch.Mesh)
	assert.Len(t, r.meshes, 2)

	assert.Equal(t, float32(800)/600, s.Camera().Aspect())
}

func TestCameraStartsLookingAtSphere(t *testing.T) {
	s, _ := newTestScene(t)

	front := s.Camera().Front()
	assert.InDelta(t, 0, front[0], 1e-5)
	assert.InDelta(t, 0, front[1], 1e-5)
	assert.InDelta(t, -1, front[2], 1e-5)
}

func TestFrustumFitsWorldCorners(t *testing.T) {
	s, _ := newTestScene(t)

	expected := light.ComputeLightSpaceMatrix(s.World().Corners(), s.Light().Position())
	assert.Equal(t, expected.LightSpace, s.Frustum().LightSpace)
}

func TestUpdateStepsWorld(t *testing.T) {
	s, _ := newTestScene(t)
	before := s.Frustum().LightSpace

	action := s.Update(input.Snapshot{}, 0.5)
	assert.False(t, action.Quit)
	assert.IsType(t, camera.FreeLook{}, action.Mode)

	pos := s.Sphere().Position()
	assert.InDelta(t, 1.5, pos[0], 1e-5)
	assert.InDelta(t, 1.25, pos[1], 1e-5)
	assert.InDelta(t, 0.75, pos[2], 1e-5)

	// the fit uses the static volume, so a moving sphere leaves it unchanged
	assert.Equal(t, before, s.Frustum().LightSpace)
}

func TestUpdateQuitSkipsSimulation(t *testing.T) {
	s, _ := newTestScene(t)

	action := s.Update(input.Snapshot{Keys: map[int]bool{common.KeyEscape: true}}, 0.5)
	assert.True(t, action.Quit)
	assert.Equal(t, [3]float32{}, s.Sphere().Position())
}

func TestLockedCameraTracksSphere(t *testing.T) {
	s, _ := newTestScene(t)

	s.Update(input.Snapshot{}, 1)
	target := s.Sphere().Position()

	// the camera locks before the world steps, so it faces the position at frame start
	held := input.Snapshot{MouseButtons: map[int]bool{common.MouseButtonLeft: true}}
	action := s.Update(held, 0.1)
	assert.IsType(t, camera.LockedOnTarget{}, action.Mode)

	want := common.Normalize3(common.Sub3(target, s.Camera().Position()))
	front := s.Camera().Front()
	for i := range 3 {
		assert.InDelta(t, want[i], front[i], 1e-4)
	}
}

func TestRenderPassesLightAndDrawables(t *testing.T) {
	s, r := newTestScene(t)

	require.NoError(t, s.Render())
	require.Len(t, r.frames, 1)

	f := r.frames[0]
	assert.Equal(t, s.Frustum().LightSpace, f.lightSpace)
	assert.Equal(t, s.Light().Position(), f.light.Position)
	assert.Equal(t, s.Light().Color(), f.light.Color)
	assert.Len(t, f.drawables, len(s.Objects()))
}

func TestResizeUpdatesCamera(t *testing.T) {
	s, r := newTestScene(t)

	require.NoError(t, s.Resize(1000, 500))
	assert.Equal(t, 1000, r.width)
	assert.Equal(t, float32(2), s.Camera().Aspect())

	// minimised: the camera keeps its last aspect
	require.NoError(t, s.Resize(0, 0))
	assert.Equal(t, float32(2), s.Camera().Aspect())
}

func TestShapeMeshErrorFailsScene(t *testing.T) {
	r := newFakeRenderer()
	r.meshErr = errors.New("device lost")

	_, err := NewScene(r)
	assert.ErrorContains(t, err, "device lost")
}

func TestMissingFloorTextureLeavesFloorUntextured(t *testing.T) {
	cfg := config.Default()
	cfg.Floor.Texture = "does/not/exist.png"

	s, r := newTestScene(t, WithConfig(cfg))
	assert.Empty(t, r.textures)
	assert.Nil(t, s.Objects()[1].Model().Parts()[0].Batch.Texture)
}

func TestConfiguredModelsArePlaced(t *testing.T) {
	mesh := &fakeHandle{}
	crate := model.NewModel(model.WithName("crate"), model.WithParts(model.Part{Name: "box", Batch: renderer.Batch{Mesh: mesh}}))

	cfg := config.Default()
	cfg.Models = []config.ModelConfig{{Path: "models/crate.obj", Position: [3]float32{2, 0, 1}}}
	ldr := loader.NewLoader(loader.BackendTypeOBJ, loader.WithModel("models/crate.obj", crate))

	s, _ := newTestScene(t, WithConfig(cfg), WithLoader(ldr))

	objects := s.Objects()
	require.Len(t, objects, 4)
	assert.Same(t, crate, objects[2].Model())
	assert.Equal(t, [3]float32{2, 0, 1}, objects[2].Position())
	assert.Equal(t, [3]float32{1, 1, 1}, objects[2].Scale())
	assert.Equal(t, [3]float32{1, 1, 1}, objects[2].Color())
}

func TestMissingModelFailsScene(t *testing.T) {
	cfg := config.Default()
	cfg.Models = []config.ModelConfig{{Path: "missing/ghost.obj"}}

	_, err := NewScene(newFakeRenderer(), WithConfig(cfg))
	assert.ErrorContains(t, err, "missing/ghost.obj")
}
