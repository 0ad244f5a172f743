package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-pcv/engine/input"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scheduler"
)

// Window provides platform windowing, input translation and frame pacing.
// It doubles as the viewer's frame clock: callbacks registered with OnNextFrame run once on
// the next iteration of the message loop.
type Window interface {
	scheduler.FrameClock

	// SetEventCallback sets the function receiving normalized input events in arrival order.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetEventCallback(callback func(e input.Event))

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// ContentScale returns the ratio between framebuffer pixels and screen coordinates.
	//
	// Returns:
	//   - float32: the display scale, 1 on standard-density displays
	ContentScale() float32

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// RequestClose asks the message loop to exit after the current iteration.
	// Safe to call from any goroutine.
	RequestClose()

	// ProcessMessages runs the window message loop until the window is closed. Each
	// iteration delivers pending input events, then runs the queued frame callbacks. The
	// loop sleeps in the platform event wait while no frame is queued.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer, not the screen-coordinate window size.
	width  int
	height int

	contentScale float32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	frames frameQueue

	onEvent  func(e input.Event)
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
// It panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured and visible window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:        "Point Cloud Viewer",
		maxWidth:     glfwDontCare,
		maxHeight:    glfwDontCare,
		minWidth:     320,
		minHeight:    240,
		width:        1280,
		height:       720,
		contentScale: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) OnNextFrame(fn func()) {
	w.frames.push(fn)
	platformWake(w)
}

func (w *engineWindow) SetEventCallback(callback func(e input.Event)) {
	w.onEvent = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) ContentScale() float32 {
	return w.contentScale
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w, w.frames.empty()); !succ {
			break
		}
		w.frames.run()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// emit forwards an event to the registered callback.
func (w *engineWindow) emit(e input.Event) {
	if w.onEvent != nil {
		w.onEvent(e)
	}
}
