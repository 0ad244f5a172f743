package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	configured           bool
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	pointBuffer *wgpu.Buffer
	pointCount  uint32
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter, device and the camera
// uniform resources. The point pipeline is created on the first ConfigureSurface, once the
// surface format is known. It panics if no adapter or device is available.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) rendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{A: 1},
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Point Cloud Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initCameraResources(); err != nil {
		panic(fmt.Sprintf("renderer: failed to create camera resources: %v", err))
	}
	return b
}

// initCameraResources creates the uniform buffer, its layout and its bind group.
func (b *wgpuRendererBackendImpl) initCameraResources() error {
	uniform := GPUCameraUniform{}
	size := uint64(uniform.Size())

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.bindGroupLayout = layout

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.cameraBuffer = buf

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}
	b.cameraBindGroup = bindGroup
	return nil
}

// createPipeline compiles the point shader into an instanced triangle-list pipeline.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "point.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: PointShaderSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Point Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Point Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: pointVertexStride,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatUnorm8x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}
	b.pipeline = created
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.configured = true

	if b.pipeline == nil {
		if err := b.createPipeline(); err != nil {
			panic(fmt.Sprintf("renderer: failed to create point pipeline: %v", err))
		}
	}

	b.releaseTargets()
	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in DrawFrame
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
}

// releaseTargets frees the size-dependent render targets. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
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

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(rgba [4]float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

func (b *wgpuRendererBackendImpl) UploadPoints(vertices []byte, count uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pointBuffer != nil {
		b.pointBuffer.Release()
		b.pointBuffer = nil
		b.pointCount = 0
	}
	if count == 0 {
		return nil
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Point Vertex Buffer",
		Size:  uint64(len(vertices)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := b.queue.WriteBuffer(buf, 0, vertices); err != nil {
		buf.Release()
		return err
	}
	b.pointBuffer = buf
	b.pointCount = count
	return nil
}

func (b *wgpuRendererBackendImpl) WriteCamera(u GPUCameraUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue.WriteBuffer(b.cameraBuffer, 0, u.Marshal())
}

func (b *wgpuRendererBackendImpl) DrawFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return errors.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	defer pass.Release()
	if b.pointBuffer != nil {
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, b.cameraBindGroup, nil)
		pass.SetVertexBuffer(0, b.pointBuffer, 0, wgpu.WholeSize)
		// six vertices per instance: two triangles forming the point's square
		pass.Draw(6, b.pointCount, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	if b.pointBuffer != nil {
		b.pointBuffer.Release()
		b.pointBuffer = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	b.cameraBindGroup.Release()
	b.cameraBuffer.Release()
	b.bindGroupLayout.Release()
	b.surface.Release()
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}
