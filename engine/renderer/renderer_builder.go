package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.sampleCount = count
	}
}

// WithClearColor sets the background color drawn behind the points. Defaults to opaque black.
//
// Parameters:
//   - rgba: red, green, blue, alpha in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a renderer
func WithClearColor(rgba [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = rgba
	}
}

// WithPackWorkers sets how many workers pack vertices on Upload.
// Defaults to one less than the number of CPUs.
//
// Parameters:
//   - n: the number of pack workers (at least 1)
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count to a renderer
func WithPackWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.packWorkers = max(n, 1)
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
