package window

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Carmen-Shannon/oxy-pcv/engine/input"
)

// glfwDontCare disables a size limit.
const glfwDontCare = glfw.DontCare

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running atomic.Bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent: w,
		window: win,
	}
	gw.running.Store(true)
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running.Store(false)
			win.SetShouldClose(true)
		}
	})

	// GLFW reports positive yoff for scrolling up (away from the user). Wheel events use the
	// opposite sign, where positive DeltaY moves the camera away from the target.
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if yoff == 0 {
			return
		}
		w.emit(input.Wheel{DeltaY: float32(-yoff)})
	})

	// Releases are reported for any button, even when the cursor has left the window.
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			x, y := win.GetCursorPos()
			w.emit(input.PointerDown{X: float32(x), Y: float32(y), Button: b})
		case glfw.Release:
			w.emit(input.PointerUp{})
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.emit(input.PointerMove{X: float32(xpos), Y: float32(ypos)})
	})

	// Framebuffer size, not window size: the surface is configured in pixels, which differ
	// from screen coordinates on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		w.contentScale = x
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight
	if sx, _ := win.GetContentScale(); sx > 0 {
		w.contentScale = sx
	}

	return nil
}

// translateButton maps a GLFW mouse button to an input.Button.
func translateButton(button glfw.MouseButton) (input.Button, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return input.ButtonPrimary, true
	case glfw.MouseButtonRight:
		return input.ButtonSecondary, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	default:
		return 0, false
	}
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running.Load() && !gw.window.ShouldClose()
}

// platformRequestClose clears the running flag and wakes the message loop.
// It may be called from any goroutine.
func platformRequestClose(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	w.internalWindow.(*glfwWindow).running.Store(false)
	glfw.PostEmptyEvent()
}

// platformWake interrupts a blocking event wait so queued frames run promptly.
// It may be called from any goroutine.
func platformWake(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	glfw.PostEmptyEvent()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running.Store(false)
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages delivers pending GLFW events. With block set it sleeps until an
// event arrives or another goroutine calls glfw.PostEmptyEvent; otherwise it returns
// immediately so queued frames can run.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEvents
func platformProcessMessages(w *engineWindow, block bool) bool {
	if block {
		glfw.WaitEvents()
	} else {
		glfw.PollEvents()
	}
	return platformIsRunningCheck(w)
}
