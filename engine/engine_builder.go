package engine

import (
	"github.com/Carmen-Shannon/oxy-pcv/engine/camera"
	"github.com/Carmen-Shannon/oxy-pcv/engine/input"
	"github.com/Carmen-Shannon/oxy-pcv/engine/loader"
	"github.com/Carmen-Shannon/oxy-pcv/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pcv/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pcv/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfilerOptions passes options through to the profiler.
func WithProfilerOptions(options ...profiler.ProfilerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.profilerOptions = append(e.profilerOptions, options...)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions configures the window the engine creates. Ignored when WithWindow is used.
//
// Parameters:
//   - options: window builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOptions = append(e.windowOptions, options...)
	}
}

// WithRenderer sets a pre-built renderer. It must draw into the engine's window.
//
// Parameters:
//   - r: the renderer to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRendererOptions configures the renderer the engine creates. Ignored when WithRenderer is used.
//
// Parameters:
//   - options: renderer builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rendererOptions = append(e.rendererOptions, options...)
	}
}

// WithLoader sets the loader used by LoadFile.
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithCameraOptions configures the camera before any scene seeds it.
//
// Parameters:
//   - options: camera builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraOptions(options ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOptions = append(e.cameraOptions, options...)
	}
}

// WithControllerOptions configures the interaction controller.
//
// Parameters:
//   - options: controller builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithControllerOptions(options ...input.ControllerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.controllerOptions = append(e.controllerOptions, options...)
	}
}

// WithPointSize sets the point diameter in screen coordinates. Values <= 0 keep the default of 1.
//
// Parameters:
//   - size: the point size
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPointSize(size float32) EngineBuilderOption {
	return func(e *engine) {
		if size > 0 {
			e.pointSize = size
		}
	}
}
