package renderer

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

type fakeTarget struct {
	complete bool
}

func (t *fakeTarget) Resolution() (int, int) { return 2048, 2048 }
func (t *fakeTarget) Complete() bool         { return t.complete }
func (t *fakeTarget) Release()               {}

type fakeBackend struct {
	log *callLog

	beginLitErr error
	endDepthErr error
	boundUnit   TextureUnit
}

func (b *fakeBackend) BeginDepthPass(ShadowTarget) error {
	b.log.add("begin-depth")
	return nil
}

func (b *fakeBackend) EndDepthPass() error {
	b.log.add("end-depth")
	return b.endDepthErr
}

func (b *fakeBackend) BeginLitPass() error {
	b.log.add("begin-lit")
	return b.beginLitErr
}

func (b *fakeBackend) BindShadowMap(_ ShadowTarget, unit TextureUnit) {
	b.boundUnit = unit
	b.log.add("bind-shadow:%d", unit)
}

func (b *fakeBackend) EndLitPass() error {
	b.log.add("end-lit")
	return nil
}

func (b *fakeBackend) Present() {
	b.log.add("present")
}

func (b *fakeBackend) Viewport() (int, int) {
	return 1600, 1200
}

type fakeProgram struct {
	name string
	log  *callLog
	mats map[string][16]float32
	vecs map[string][3]float32
}

func newFakeProgram(name string, log *callLog) *fakeProgram {
	return &fakeProgram{name: name, log: log, mats: map[string][16]float32{}, vecs: map[string][3]float32{}}
}

func (p *fakeProgram) Use() { p.log.add("%s:use", p.name) }

func (p *fakeProgram) SetMat4(name string, value [16]float32) {
	p.mats[name] = value
	p.log.add("%s:mat4:%s", p.name, name)
}

func (p *fakeProgram) SetVec3(name string, value [3]float32) {
	p.vecs[name] = value
	p.log.add("%s:vec3:%s", p.name, name)
}

func (p *fakeProgram) SetFloat(string, float32) {}
func (p *fakeProgram) SetInt(string, int32)     {}
func (p *fakeProgram) SetBool(string, bool)     {}

func (p *fakeProgram) DrawIndexed(Batch) error {
	p.log.add("%s:draw", p.name)
	return nil
}

type fakeDrawable struct {
	name    string
	log     *callLog
	casts   bool
	shading Shading
	err     error
}

func (d *fakeDrawable) Draw(p Program) error {
	d.log.add("draw:%s:%s", d.name, p.(*fakeProgram).name)
	return d.err
}

func (d *fakeDrawable) CastsShadow() bool { return d.casts }
func (d *fakeDrawable) Shading() Shading  { return d.shading }

type fakeCamera struct{}

func (fakeCamera) ViewMatrix() [16]float32       { return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, -7, 1} }
func (fakeCamera) ProjectionMatrix() [16]float32 { return [16]float32{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, -1, -1, 0, 0, -0.1, 0} }
func (fakeCamera) Position() [3]float32          { return [3]float32{0, 0, 7} }

type fixture struct {
	log     *callLog
	backend *fakeBackend
	depth   *fakeProgram
	lit     *fakeProgram
	unlit   *fakeProgram
	fr      FrameRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := &callLog{}
	f := &fixture{
		log:     log,
		backend: &fakeBackend{log: log},
		depth:   newFakeProgram("depth", log),
		lit:     newFakeProgram("lit", log),
		unlit:   newFakeProgram("unlit", log),
	}
	fr, err := NewFrameRenderer(f.backend,
		WithDepthProgram(f.depth),
		WithLitProgram(f.lit),
		WithUnlitProgram(f.unlit),
		WithShadowTarget(&fakeTarget{complete: true}),
	)
	require.NoError(t, err)
	f.fr = fr
	return f
}

func sampleLightSpace() [16]float32 {
	var m [16]float32
	for i := range m {
		m[i] = float32(math.Sin(float64(i)+0.3)) / 7
	}
	return m
}

func TestRenderShadowedFrameOrder(t *testing.T) {
	f := newFixture(t)
	drawables := []Drawable{
		&fakeDrawable{name: "sphere", log: f.log, casts: true, shading: ShadingLit},
		&fakeDrawable{name: "floor", log: f.log, casts: false, shading: ShadingLit},
		&fakeDrawable{name: "marker", log: f.log, casts: false, shading: ShadingUnlit},
	}

	err := f.fr.RenderShadowedFrame(fakeCamera{}, sampleLightSpace(), LightParams{Position: [3]float32{10, 25, 8}, Color: [3]float32{1, 1, 1}}, drawables)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"begin-depth",
		"depth:use",
		"depth:mat4:lightSpaceMatrix",
		"draw:sphere:depth",
		"end-depth",
		"begin-lit",
		"lit:use",
		"lit:mat4:projection",
		"lit:mat4:view",
		"lit:vec3:viewPos",
		"lit:vec3:lightPos",
		"lit:vec3:lightColor",
		"lit:mat4:lightSpaceMatrix",
		"bind-shadow:1",
		"draw:sphere:lit",
		"draw:floor:lit",
		"unlit:use",
		"unlit:mat4:projection",
		"unlit:mat4:view",
		"draw:marker:unlit",
		"end-lit",
		"present",
	}, f.log.calls)
}

func TestLightSpaceUploadsAreBitIdentical(t *testing.T) {
	f := newFixture(t)
	lightSpace := sampleLightSpace()

	require.NoError(t, f.fr.RenderShadowedFrame(fakeCamera{}, lightSpace, LightParams{}, nil))

	depth := f.depth.mats[UniformLightSpaceMatrix]
	lit := f.lit.mats[UniformLightSpaceMatrix]
	for i := range lightSpace {
		assert.Equal(t, math.Float32bits(lightSpace[i]), math.Float32bits(depth[i]), "depth element %d", i)
		assert.Equal(t, math.Float32bits(depth[i]), math.Float32bits(lit[i]), "lit element %d", i)
	}
}

func TestCameraUniformsReachLitProgram(t *testing.T) {
	f := newFixture(t)
	cam := fakeCamera{}

	require.NoError(t, f.fr.RenderShadowedFrame(cam, sampleLightSpace(), LightParams{Position: [3]float32{1, 2, 3}}, nil))

	assert.Equal(t, cam.ProjectionMatrix(), f.lit.mats[UniformProjection])
	assert.Equal(t, cam.ViewMatrix(), f.lit.mats[UniformView])
	assert.Equal(t, cam.Position(), f.lit.vecs[UniformViewPos])
	assert.Equal(t, [3]float32{1, 2, 3}, f.lit.vecs[UniformLightPos])
	assert.Equal(t, ShadowUnit, f.backend.boundUnit)
}

func TestUnlitProgramSkippedWithoutUnlitDrawables(t *testing.T) {
	f := newFixture(t)
	drawables := []Drawable{&fakeDrawable{name: "cube", log: f.log, casts: true}}

	require.NoError(t, f.fr.RenderShadowedFrame(fakeCamera{}, sampleLightSpace(), LightParams{}, drawables))
	assert.NotContains(t, f.log.calls, "unlit:use")
}

func TestDepthDrawErrorStillEndsPass(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	drawables := []Drawable{&fakeDrawable{name: "bad", log: f.log, casts: true, err: boom}}

	err := f.fr.RenderShadowedFrame(fakeCamera{}, sampleLightSpace(), LightParams{}, drawables)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, f.log.calls, "end-depth")
	assert.NotContains(t, f.log.calls, "begin-lit")
	assert.NotContains(t, f.log.calls, "present")
}

func TestBackendErrorsPropagate(t *testing.T) {
	f := newFixture(t)
	f.backend.beginLitErr = common.ErrFrameInProgress

	err := f.fr.RenderShadowedFrame(fakeCamera{}, sampleLightSpace(), LightParams{}, nil)

	require.ErrorIs(t, err, common.ErrFrameInProgress)
	assert.NotContains(t, f.log.calls, "present")
}

func TestNewFrameRendererValidation(t *testing.T) {
	log := &callLog{}
	backend := &fakeBackend{log: log}
	depth, lit, unlit := newFakeProgram("depth", log), newFakeProgram("lit", log), newFakeProgram("unlit", log)
	target := &fakeTarget{complete: true}

	_, err := NewFrameRenderer(backend, WithLitProgram(lit), WithUnlitProgram(unlit), WithShadowTarget(target))
	assert.ErrorIs(t, err, common.ErrMissingProgram)

	_, err = NewFrameRenderer(backend, WithDepthProgram(depth), WithUnlitProgram(unlit), WithShadowTarget(target))
	assert.ErrorIs(t, err, common.ErrMissingProgram)

	_, err = NewFrameRenderer(backend, WithDepthProgram(depth), WithLitProgram(lit), WithUnlitProgram(unlit))
	assert.ErrorIs(t, err, common.ErrShadowTarget)

	_, err = NewFrameRenderer(backend, WithDepthProgram(depth), WithLitProgram(lit), WithUnlitProgram(unlit),
		WithShadowTarget(&fakeTarget{complete: false}))
	assert.ErrorIs(t, err, common.ErrShadowTarget)

	_, err = NewFrameRenderer(backend, WithDepthProgram(depth), WithLitProgram(lit), WithUnlitProgram(unlit),
		WithShadowTarget(target), WithTextureUnits(1, 1))
	assert.ErrorIs(t, err, common.ErrTextureUnitClash)

	fr, err := NewFrameRenderer(backend, WithDepthProgram(depth), WithLitProgram(lit), WithUnlitProgram(unlit),
		WithShadowTarget(target), WithTextureUnits(1, 0))
	require.NoError(t, err)
	diffuse, shadow := fr.TextureUnits()
	assert.Equal(t, TextureUnit(1), diffuse)
	assert.Equal(t, TextureUnit(0), shadow)
	assert.Same(t, target, fr.ShadowTarget())
}
