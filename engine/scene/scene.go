package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/config"
	"github.com/Carmen-Shannon/oxy-shadow/engine/game_object"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/input"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/loader"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/world"
)

// scene is the implementation of the Scene interface.
type scene struct {
	cfg *config.Config
	r   renderer.Renderer
	ldr loader.Loader

	cam        camera.Camera
	controller input.Controller
	world      *world.World
	light      light.Light
	frustum    light.LightFrustum

	sphere  game_object.GameObject
	floor   game_object.GameObject
	marker  game_object.GameObject
	objects []game_object.GameObject

	// drawables mirrors objects for the renderer
	drawables []renderer.Drawable

	// textures uploaded by the scene itself
	textures []renderer.TextureHandle
	nextID   uint64
}

// Scene is the explicit application state of the viewer. It owns the camera, the world,
// the light and every drawable, and is handed to the frame loop by reference; nothing in
// the viewer lives in package-level variables.
type Scene interface {
	// Camera returns the viewer camera.
	Camera() camera.Camera

	// World returns the bounce simulation.
	World() *world.World

	// Light returns the shadow-casting light.
	Light() light.Light

	// Sphere returns the bouncing sphere the camera locks onto.
	Sphere() game_object.GameObject

	// Objects returns every object in draw order.
	Objects() []game_object.GameObject

	// Frustum returns the light frustum fitted in the last Update.
	Frustum() light.LightFrustum

	// Update applies the input policy, then steps the world, then refits the light frustum.
	//
	// Parameters:
	//   - snap: the input state of this frame
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - input.Action: the quit request and the orientation mode applied
	Update(snap input.Snapshot, dt float32) input.Action

	// Render draws one shadowed frame.
	//
	// Returns:
	//   - error: the first error of the frame
	Render() error

	// Resize updates the camera aspect and the renderer targets.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	//
	// Returns:
	//   - error: an error if the renderer could not resize
	Resize(width, height int) error

	// Release frees the GPU resources the scene created. The renderer is not released.
	Release()
}

var _ Scene = &scene{}

// NewScene builds the viewer scene on a renderer: the camera, the bounce world with the
// sphere, the floor, configured OBJ models and the light with its marker.
//
// Parameters:
//   - r: the renderer used for uploads and drawing
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
//   - error: an error if a built-in shape cannot be uploaded or a configured model fails to load
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		return nil, fmt.Errorf("scene: renderer is required")
	}

	s := &scene{
		cfg:    config.Default(),
		r:      r,
		nextID: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.ldr == nil {
		s.ldr = loader.NewLoader(loader.BackendTypeOBJ, loader.WithUploader(r))
	}

	if err := s.build(); err != nil {
		s.Release()
		return nil, err
	}
	s.fitLight()

	common.LogInfo("scene ready", "objects", len(s.objects), "bounds", s.world.Bounds())
	return s, nil
}

func (s *scene) build() error {
	cfg := s.cfg
	width, height := s.r.Viewport()

	camOpts := []camera.CameraBuilderOption{
		camera.WithPosition(cfg.Camera.Position),
		camera.WithYawPitch(cfg.Camera.Yaw, cfg.Camera.Pitch),
		camera.WithFov(cfg.Camera.Fov),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithSpeed(cfg.Camera.Speed),
		camera.WithSensitivity(cfg.Camera.Sensitivity),
	}
	if width > 0 && height > 0 {
		camOpts = append(camOpts, camera.WithViewport(width, height))
	}
	s.cam = camera.NewCamera(camOpts...)

	bounds := world.Bounds{Min: cfg.World.Min, Max: cfg.World.Max}
	s.world = world.NewWorld(bounds)

	s.light = light.NewLight(
		light.WithPosition(cfg.Light.Position),
		light.WithColor(cfg.Light.Color),
		light.WithTarget(bounds.Center()),
	)

	sphereModel, err := s.shapeModel(geometry.ShapeSphere, nil)
	if err != nil {
		return err
	}

	s.sphere = s.add(
		game_object.WithModel(sphereModel),
		game_object.WithBody(&world.Body{Velocity: cfg.Sphere.Velocity}),
		game_object.WithPosition(cfg.Sphere.Position),
		game_object.WithUniformScale(cfg.Sphere.Scale),
		game_object.WithColor(cfg.Sphere.Color),
	)
	s.world.AddBody(s.sphere.Body())

	floorModel, err := s.shapeModel(geometry.ShapeFloor, s.floorTexture())
	if err != nil {
		return err
	}
	s.floor = s.add(
		game_object.WithModel(floorModel),
		game_object.WithPosition([3]float32{0, cfg.Floor.Y, 0}),
		game_object.WithUniformScale(cfg.Floor.Scale),
		game_object.WithColor(cfg.Floor.Color),
	)

	for _, mc := range cfg.Models {
		m, err := s.ldr.Load(mc.Path)
		if err != nil {
			return fmt.Errorf("scene model %s: %w", mc.Path, err)
		}
		color := mc.Color
		if color == [3]float32{} {
			color = [3]float32{1, 1, 1}
		}
		s.add(
			game_object.WithModel(m),
			game_object.WithPosition(mc.Position),
			game_object.WithUniformScale(common.Coalesce(mc.Scale, 1)),
			game_object.WithColor(color),
		)
	}

	s.marker = s.add(
		game_object.WithModel(sphereModel),
		game_object.WithLight(s.light),
		game_object.WithUniformScale(cfg.Light.MarkerScale),
		game_object.WithColor(cfg.Light.Color),
		game_object.WithShading(renderer.ShadingUnlit),
		game_object.WithCastsShadow(false),
	)

	s.controller = input.NewController(input.WithLockTarget(s.sphere.Position))

	// start looking at the sphere
	s.cam.LookAt(s.sphere.Position())
	return nil
}

// add creates an object with the next free ID and appends it to the draw list.
func (s *scene) add(options ...game_object.GameObjectBuilderOption) game_object.GameObject {
	obj := game_object.NewGameObject(append([]game_object.GameObjectBuilderOption{game_object.WithID(s.nextID)}, options...)...)
	s.nextID++
	s.objects = append(s.objects, obj)
	s.drawables = append(s.drawables, obj)
	return obj
}

// shapeModel wraps the renderer's shared mesh of a built-in shape in a single-part model.
func (s *scene) shapeModel(kind geometry.ShapeKind, texture renderer.TextureHandle) (model.Model, error) {
	mesh, err := s.r.Mesh(kind)
	if err != nil {
		return nil, fmt.Errorf("scene shape %s: %w", kind, err)
	}
	data, err := shapeBounds.Get(kind)
	if err != nil {
		return nil, err
	}
	return model.NewModel(
		model.WithName(kind.String()),
		model.WithParts(model.Part{
			Name:  kind.String(),
			Batch: renderer.Batch{Mesh: mesh, Texture: texture},
			Color: [3]float32{1, 1, 1},
		}),
		model.WithBounds(data.BoundsMin, data.BoundsMax),
	), nil
}

// shapeBounds only provides the model-space extents of the built-in shapes.
var shapeBounds = geometry.NewCache()

// floorTexture decodes and uploads the configured floor texture. A missing or broken
// file leaves the floor untextured.
func (s *scene) floorTexture() renderer.TextureHandle {
	path := s.cfg.Floor.Texture
	if path == "" {
		return nil
	}
	tex := &common.ImportedTexture{Name: "floor", Path: path}
	staging, err := tex.Decode()
	if err != nil {
		common.LogWarn("floor texture not loaded", "path", path, "err", err)
		return nil
	}
	handle, err := s.r.UploadTexture("floor", staging)
	if err != nil {
		common.LogWarn("floor texture not uploaded", "path", path, "err", err)
		return nil
	}
	s.textures = append(s.textures, handle)
	return handle
}

func (s *scene) fitLight() {
	s.frustum = light.ComputeLightSpaceMatrix(s.world.Corners(), s.light.Position())
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) World() *world.World {
	return s.world
}

func (s *scene) Light() light.Light {
	return s.light
}

func (s *scene) Sphere() game_object.GameObject {
	return s.sphere
}

func (s *scene) Objects() []game_object.GameObject {
	return s.objects
}

func (s *scene) Frustum() light.LightFrustum {
	return s.frustum
}

func (s *scene) Update(snap input.Snapshot, dt float32) input.Action {
	action := s.controller.Update(s.cam, snap, dt)
	if action.Quit {
		return action
	}
	s.world.Step(dt)
	s.fitLight()
	return action
}

func (s *scene) Render() error {
	return s.r.RenderShadowedFrame(
		s.cam,
		s.frustum.LightSpace,
		renderer.LightParams{Position: s.light.Position(), Color: s.light.Color()},
		s.drawables,
	)
}

func (s *scene) Resize(width, height int) error {
	if width > 0 && height > 0 {
		s.cam.UpdateViewport(width, height)
	}
	return s.r.Resize(width, height)
}

func (s *scene) Release() {
	if s.ldr != nil {
		s.ldr.Release()
	}
	for _, t := range s.textures {
		t.Release()
	}
	s.textures = nil
}
