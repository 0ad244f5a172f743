package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// rendererBackend is the GPU API boundary of the Renderer. The Renderer owns the scene
// and camera bookkeeping; a backend only moves bytes to the GPU and records frames.
type rendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and depth targets for a framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color of the render pass.
	//
	// Parameters:
	//   - rgba: red, green, blue, alpha in [0, 1]
	SetClearColor(rgba [4]float64)

	// UploadPoints replaces the point vertex buffer.
	//
	// Parameters:
	//   - vertices: packed vertex data, pointVertexStride bytes per point
	//   - count: the number of points in vertices
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	UploadPoints(vertices []byte, count uint32) error

	// WriteCamera uploads the camera uniform for the next frame.
	//
	// Parameters:
	//   - u: the uniform to upload
	//
	// Returns:
	//   - error: an error if the queue write fails
	WriteCamera(u GPUCameraUniform) error

	// DrawFrame acquires the swapchain texture, clears it, draws the uploaded points and presents.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired or the submit failed
	DrawFrame() error

	// Release frees every GPU object held by the backend.
	Release()
}
