package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// errNoPass is returned by draws recorded outside BeginDepthPass/BeginLitPass.
var errNoPass = errors.New("no render pass is open")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	width, height        int

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	// Layouts shared by every program. Group 1 is the object arena; texture units use
	// the diffuse or shadow layout; empty fills unused groups between them.
	objectLayout  *wgpu.BindGroupLayout
	diffuseLayout *wgpu.BindGroupLayout
	shadowLayout  *wgpu.BindGroupLayout
	emptyLayout   *wgpu.BindGroupLayout
	emptyGroup    *wgpu.BindGroup

	arena           *objectArena
	objectBuffer    *wgpu.Buffer
	objectBindGroup *wgpu.BindGroup
	fallback        *wgpuTexture

	// State of the open pass. Each pass has its own encoder and submission.
	encoder      *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
	current      *wgpuProgram
	passPrograms []*wgpuProgram
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ PassBackend = &wgpuRendererBackendImpl{}
var _ MeshUploader = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device, then the
// layouts and buffers shared by every program. The calling goroutine is locked to its
// OS thread, which must be the thread that owns the window.
//
// Parameters:
//   - surfaceDescriptor: the platform surface of the window
//   - forceFallbackAdapter: request the software adapter
//   - sampleCount: MSAA sample count of the main target
//   - clearColor: the RGB clear colour of the main target
//
// Returns:
//   - *wgpuRendererBackendImpl: the backend
//   - error: ErrWindowCreate if no surface, adapter or device could be created
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor [3]float32) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor: wgpu.Color{
			R: float64(clearColor[0]), G: float64(clearColor[1]), B: float64(clearColor[2]), A: 1.0,
		},
	}
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("%w: no surface descriptor", common.ErrWindowCreate)
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: adapter: %w", common.ErrWindowCreate, err)
	}
	b.adapter = a

	// raised so texture units above 1 still get their own bind group
	limits := wgpu.DefaultLimits()
	limits.MaxBindGroups = 8

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: device: %w", common.ErrWindowCreate, err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, fmt.Errorf("%w: surface reports no formats", common.ErrWindowCreate)
	}
	b.surfaceFormat = capabilities.Formats[0]

	if err := b.initSharedResources(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func (b *wgpuRendererBackendImpl) initSharedResources() error {
	var err error
	stages := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

	b.arena = newObjectArena(ObjectLayout("object").Size(), defaultObjectSlots)
	b.objectLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Object Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: stages,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   uint64(b.arena.slotSize),
			},
		}},
	})
	if err != nil {
		return err
	}

	b.diffuseLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Diffuse Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return err
	}

	shadowData := light.NewGPUShadowData(1)
	b.shadowLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Map Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(shadowData.Size()),
				},
			},
		},
	})
	if err != nil {
		return err
	}

	b.emptyLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{Label: "Empty Layout"})
	if err != nil {
		return err
	}
	b.emptyGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{Label: "Empty Bind Group", Layout: b.emptyLayout})
	if err != nil {
		return err
	}

	b.objectBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Object Arena Buffer",
		Size:  b.arena.size(),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.objectBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Object Arena Bind Group",
		Layout: b.objectLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  b.objectBuffer,
			Offset:  0,
			Size:    uint64(b.arena.slotSize),
		}},
	})
	if err != nil {
		return err
	}

	b.fallback, err = b.uploadTexture("Fallback White", common.TextureStagingData{
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:  1,
		Height: 1,
	})
	return err
}

// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
// It recreates the MSAA and depth textures of the main target at the new size.
// A zero-sized surface (minimised window) is recorded but not configured.
//
// Parameters:
//   - width: the new width of the surface in pixels
//   - height: the new height of the surface in pixels
//
// Returns:
//   - error: an error if the attachments could not be created
func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.width, b.height = width, height
	if width <= 0 || height <= 0 {
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// the pass draws into the MSAA texture and resolves into the swapchain view
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			return err
		}
	}

	// depth sample count must match the colour attachment
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		return err
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in BeginLitPass
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

// SetPresentMode sets the surface present mode. Applied on the next ConfigureSurface.
//
// Parameters:
//   - mode: the PresentMode to use
func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

// RegisterProgram creates the shader module, pipeline layout and render pipeline of p,
// plus the frame uniform buffer its Set calls stage into.
//
// Parameters:
//   - p: the pipeline description
//   - frame: the per-pass uniform block of the program
//   - diffuse: the texture unit of the diffuse texture (lit programs)
//   - shadow: the texture unit of the shadow map (lit programs)
//
// Returns:
//   - *wgpuProgram: the program
//   - error: ErrShaderCompile if the module or pipeline could not be created
func (b *wgpuRendererBackendImpl) RegisterProgram(p pipeline.Pipeline, frame *UniformLayout, diffuse, shadow TextureUnit) (*wgpuProgram, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := p.PipelineKey()
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s module: %w", common.ErrShaderCompile, key, err)
	}
	defer module.Release()

	frameLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: key + " Frame Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(frame.Size()),
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s frame layout: %w", common.ErrShaderCompile, key, err)
	}
	defer frameLayout.Release()

	prog := &wgpuProgram{
		backend:     b,
		pipeline:    p,
		frame:       frame,
		object:      ObjectLayout(key + " object"),
		diffuseUnit: diffuse,
	}

	groups := []*wgpu.BindGroupLayout{frameLayout, b.objectLayout}
	if p.Pass() == pipeline.PassLit {
		groups = placeLayout(groups, textureGroup(diffuse), b.diffuseLayout)
		groups = placeLayout(groups, textureGroup(shadow), b.shadowLayout)
		for i, g := range groups {
			if g == nil {
				groups[i] = b.emptyLayout
				prog.emptyGroups = append(prog.emptyGroups, uint32(i))
			}
		}
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            key,
		BindGroupLayouts: groups,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s layout: %w", common.ErrShaderCompile, key, err)
	}
	defer pipelineLayout.Release()

	descriptor := &wgpu.RenderPipelineDescriptor{
		Label:  key + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntry(),
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout(p.Pass())},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
	}
	if p.DepthOnly() {
		// depth-only: no fragment stage, no colour target, single sample
		descriptor.Multisample = wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF}
		descriptor.DepthStencil = depthStencilState(wgpu.TextureFormatDepth32Float, p)
	} else {
		descriptor.Fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntry(),
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
		descriptor.Multisample = wgpu.MultisampleState{Count: uint32(b.sampleCount), Mask: 0xFFFFFFFF}
		descriptor.DepthStencil = depthStencilState(wgpu.TextureFormatDepth24Plus, p)
	}

	created, err := b.device.CreateRenderPipeline(descriptor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pipeline: %w", common.ErrShaderCompile, key, err)
	}
	p.SetRenderPipeline(created)

	prog.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Frame Buffer",
		Size:  uint64(frame.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		prog.release()
		return nil, err
	}
	prog.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  key + " Frame Bind Group",
		Layout: frameLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  prog.frameBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		prog.release()
		return nil, err
	}
	return prog, nil
}

func placeLayout(groups []*wgpu.BindGroupLayout, index uint32, layout *wgpu.BindGroupLayout) []*wgpu.BindGroupLayout {
	for uint32(len(groups)) <= index {
		groups = append(groups, nil)
	}
	groups[index] = layout
	return groups
}

// vertexLayout describes the packed GPUVertex buffer. Depth programs only read the position.
func vertexLayout(pass pipeline.PassKind) wgpu.VertexBufferLayout {
	attrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	}
	if pass != pipeline.PassDepth {
		attrs = append(attrs,
			wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		)
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: geometry.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

func depthStencilState(format wgpu.TextureFormat, p pipeline.Pipeline) *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:              format,
		DepthWriteEnabled:   p.DepthWriteEnabled(),
		DepthCompare:        wgpu.CompareFunctionLess,
		DepthBias:           p.DepthBias(),
		DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
}

// CreateShadowTarget creates a square Depth32Float shadow map, its comparison sampler
// and the bind group the lit program samples it through.
//
// Parameters:
//   - resolution: width and height in texels
//
// Returns:
//   - *wgpuShadowTarget: the complete target
//   - error: ErrShadowTarget if any resource could not be created
func (b *wgpuRendererBackendImpl) CreateShadowTarget(resolution int) (*wgpuShadowTarget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution %d", common.ErrShadowTarget, resolution)
	}

	t := &wgpuShadowTarget{width: resolution, height: resolution}
	fail := func(stage string, err error) (*wgpuShadowTarget, error) {
		t.Release()
		return nil, fmt.Errorf("%w: %s: %w", common.ErrShadowTarget, stage, err)
	}

	var err error
	t.texture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(resolution),
			Height:             uint32(resolution),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fail("depth texture", err)
	}
	t.view, err = t.texture.CreateView(nil)
	if err != nil {
		return fail("depth view", err)
	}

	// outside the map the lit shader treats fragments as lit, clamping only covers the PCF taps
	t.sampler, err = b.createSampler("Shadow Comparison Sampler", common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fail("comparison sampler", err)
	}

	data := light.NewGPUShadowData(resolution)
	t.dataBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Shadow Data Buffer",
		Size:  uint64(data.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fail("shadow data buffer", err)
	}
	b.queue.WriteBuffer(t.dataBuffer, 0, data.Marshal())

	t.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Shadow Map Bind Group",
		Layout: b.shadowLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: t.sampler},
			{Binding: 2, Buffer: t.dataBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fail("bind group", err)
	}
	return t, nil
}

func (b *wgpuRendererBackendImpl) createSampler(label string, s common.SamplerStagingData) (*wgpu.Sampler, error) {
	return b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  common.Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(s.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(s.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(s.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(s.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(s.MaxAnisotropy, 1),
		Compare:       s.Compare,
	})
}

func (b *wgpuRendererBackendImpl) UploadMesh(label string, vertices []byte, indices []uint32) (MeshHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh %q: empty vertex or index data", label)
	}

	m := &wgpuMesh{label: label, indexCount: uint32(len(indices))}
	var err error
	m.vertexBuffer, err = b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Vertex Buffer",
		Contents: vertices,
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %q vertex buffer: %w", label, err)
	}
	m.indexBuffer, err = b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("mesh %q index buffer: %w", label, err)
	}
	return m, nil
}

func (b *wgpuRendererBackendImpl) UploadTexture(label string, staging common.TextureStagingData) (TextureHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploadTexture(label, staging)
}

func (b *wgpuRendererBackendImpl) uploadTexture(label string, staging common.TextureStagingData) (*wgpuTexture, error) {
	if staging.Width == 0 || staging.Height == 0 || len(staging.Pixels) < int(staging.Width*staging.Height*4) {
		return nil, fmt.Errorf("texture %q: %dx%d with %d bytes is not RGBA8", label, staging.Width, staging.Height, len(staging.Pixels))
	}

	t := &wgpuTexture{label: label}
	size := wgpu.Extent3D{
		Width:              staging.Width,
		Height:             staging.Height,
		DepthOrArrayLayers: 1,
	}

	var err error
	t.texture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", label, err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&size,
	)

	if t.view, err = t.texture.CreateView(nil); err != nil {
		t.Release()
		return nil, fmt.Errorf("texture %q view: %w", label, err)
	}
	if t.sampler, err = b.createSampler(label+" Sampler", common.SamplerStagingData{}); err != nil {
		t.Release()
		return nil, fmt.Errorf("texture %q sampler: %w", label, err)
	}
	t.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.diffuseLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: t.sampler},
		},
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("texture %q bind group: %w", label, err)
	}
	return t, nil
}

func (b *wgpuRendererBackendImpl) BeginDepthPass(target ShadowTarget) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := target.(*wgpuShadowTarget)
	if !ok || !st.Complete() {
		return common.ErrShadowTarget
	}
	if b.pass != nil {
		return errors.New("a render pass is already open")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	b.encoder = encoder
	b.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Depth Pass",
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            st.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore, // the shadow map is sampled by the lit pass
			DepthClearValue: 1.0,
		},
	})
	b.pass.SetViewport(0, 0, float32(st.width), float32(st.height), 0, 1)
	b.beginPassState()
	return nil
}

func (b *wgpuRendererBackendImpl) EndDepthPass() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.endPass()
}

func (b *wgpuRendererBackendImpl) BeginLitPass() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// a held surface texture means Present was skipped; acquiring another fails in wgpu-native
	if b.frameSurface != nil {
		return common.ErrFrameInProgress
	}
	if b.pass != nil {
		return errors.New("a render pass is already open")
	}
	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.encoder = encoder
	b.pass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.pass.SetViewport(0, 0, float32(b.width), float32(b.height), 0, 1)
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.beginPassState()
	return nil
}

func (b *wgpuRendererBackendImpl) BindShadowMap(target ShadowTarget, unit TextureUnit) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := target.(*wgpuShadowTarget)
	if !ok || b.pass == nil || st.bindGroup == nil {
		return
	}
	b.pass.SetBindGroup(textureGroup(unit), st.bindGroup, nil)
}

func (b *wgpuRendererBackendImpl) EndLitPass() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.endPass()
	if err != nil {
		b.releaseFrameSurface()
	}
	return err
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

func (b *wgpuRendererBackendImpl) Viewport() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackendImpl) beginPassState() {
	b.arena.reset()
	b.current = nil
	b.passPrograms = b.passPrograms[:0]
}

// endPass ends the open pass, writes the frame blocks of the programs it used and the
// staged object slots, then finishes and submits the encoder.
func (b *wgpuRendererBackendImpl) endPass() error {
	if b.pass == nil {
		return errNoPass
	}
	b.pass.End()
	b.pass.Release()
	b.pass = nil

	for _, p := range b.passPrograms {
		if p.frame.TakeDirty() {
			b.queue.WriteBuffer(p.frameBuffer, 0, p.frame.Bytes())
		}
	}
	if used := b.arena.used(); len(used) > 0 {
		b.queue.WriteBuffer(b.objectBuffer, 0, used)
	}

	commandBuffer, err := b.encoder.Finish(nil)
	b.encoder.Release()
	b.encoder = nil
	b.current = nil
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// usePipeline makes p current on the open pass.
func (b *wgpuRendererBackendImpl) usePipeline(p *wgpuProgram) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pass == nil {
		common.LogWarn("program used outside a render pass", "program", p.pipeline.PipelineKey())
		return
	}
	b.current = p
	b.pass.SetPipeline(p.pipeline.RenderPipeline())
	b.pass.SetBindGroup(frameGroup, p.frameBindGroup, nil)
	for _, g := range p.emptyGroups {
		b.pass.SetBindGroup(g, b.emptyGroup, nil)
	}
	for _, used := range b.passPrograms {
		if used == p {
			return
		}
	}
	b.passPrograms = append(b.passPrograms, p)
}

// drawIndexed copies p's object block into the next arena slot and records the draw.
func (b *wgpuRendererBackendImpl) drawIndexed(p *wgpuProgram, batch Batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pass == nil {
		return errNoPass
	}
	if b.current != p {
		return fmt.Errorf("program %s drew without Use", p.pipeline.PipelineKey())
	}
	mesh, ok := batch.Mesh.(*wgpuMesh)
	if !ok || mesh.vertexBuffer == nil {
		return fmt.Errorf("mesh %T is not a live wgpu mesh", batch.Mesh)
	}

	offset, err := b.arena.push(p.object.Bytes())
	if err != nil {
		return err
	}
	b.pass.SetBindGroup(objectGroup, b.objectBindGroup, []uint32{offset})

	if p.samplesDiffuse() {
		texture := b.fallback
		if batch.Texture != nil {
			if texture, ok = batch.Texture.(*wgpuTexture); !ok || texture.bindGroup == nil {
				return fmt.Errorf("texture %T is not a live wgpu texture", batch.Texture)
			}
		}
		b.pass.SetBindGroup(textureGroup(p.diffuseUnit), texture.bindGroup, nil)
	}

	b.pass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
	b.pass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	return nil
}

// Release frees the shared resources, the device and the surface.
func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseAttachments()
	if b.fallback != nil {
		b.fallback.Release()
		b.fallback = nil
	}
	for _, g := range []*wgpu.BindGroup{b.objectBindGroup, b.emptyGroup} {
		if g != nil {
			g.Release()
		}
	}
	b.objectBindGroup, b.emptyGroup = nil, nil
	if b.objectBuffer != nil {
		b.objectBuffer.Release()
		b.objectBuffer = nil
	}
	for _, l := range []*wgpu.BindGroupLayout{b.objectLayout, b.diffuseLayout, b.shadowLayout, b.emptyLayout} {
		if l != nil {
			l.Release()
		}
	}
	b.objectLayout, b.diffuseLayout, b.shadowLayout, b.emptyLayout = nil, nil, nil, nil
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
