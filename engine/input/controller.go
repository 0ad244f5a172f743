package input

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-pcv/engine/camera"
)

// State is the phase of the interaction state machine.
type State int

const (
	// StateIdle means no drag or pinch is in progress.
	StateIdle State = iota
	// StateDragging means a pointer or single touch is held and moves orbit or pan the camera.
	StateDragging
	// StatePinching means exactly two touches are active and their spread zooms the camera.
	StatePinching
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDragging:
		return "Dragging"
	case StatePinching:
		return "Pinching"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode selects what a drag does to the camera.
type Mode int

const (
	// ModeOrbit rotates the camera around its target.
	ModeOrbit Mode = iota
	// ModePan slides the target across the screen plane.
	ModePan
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModePan {
		return "Pan"
	}
	return "Orbit"
}

// RenderRequester is notified after every camera mutation.
type RenderRequester interface {
	RequestRender()
}

type controllerImpl struct {
	mu *sync.Mutex

	camera    camera.Camera
	requester RenderRequester

	state         State
	mode          Mode
	last          Point
	pinchStart    float32
	activeTouches int

	orbitSensitivity float32
	pinchScale       float32
	wheelStep        float32
}

// Controller defines the interface for the interaction state machine that turns normalized
// input events into camera mutations. Events must be handled in arrival order; each
// mutation is followed by a render request and the controller never draws itself.
type Controller interface {
	// Handle applies one input event.
	//
	// Parameters:
	//   - e: the event to apply
	Handle(e Event)

	// State returns the current state of the machine.
	//
	// Returns:
	//   - State: Idle, Dragging or Pinching
	State() State

	// Mode returns the drag mode chosen by the last press.
	//
	// Returns:
	//   - Mode: Orbit or Pan
	Mode() Mode

	// Reset returns the machine to Idle and forgets any pinch in progress.
	Reset()
}

var _ Controller = &controllerImpl{}

// NewController creates a new Controller driving cam and notifying requester after each
// mutation. It panics if either collaborator is nil.
//
// Parameters:
//   - cam: the camera to mutate
//   - requester: receives a RequestRender call after every mutation
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(cam camera.Camera, requester RenderRequester, options ...ControllerBuilderOption) Controller {
	if cam == nil || requester == nil {
		panic("input: NewController requires a camera and a render requester")
	}
	c := &controllerImpl{
		mu:               &sync.Mutex{},
		camera:           cam,
		requester:        requester,
		orbitSensitivity: 0.5,
		pinchScale:       0.02,
		wheelStep:        0.1,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Handle(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := e.(type) {
	case PointerDown:
		c.press(ev.X, ev.Y, ev.Button == ButtonSecondary || c.activeTouches == 2)
	case PointerMove:
		c.move(ev.X, ev.Y)
	case PointerUp:
		c.release()
	case Wheel:
		c.wheel(ev.DeltaY)
	case TouchStart:
		c.touchStart(ev.Points)
	case TouchMove:
		c.touchMove(ev.Points)
	case TouchEnd:
		c.activeTouches = len(ev.Points)
		c.release()
	}
}

func (c *controllerImpl) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release()
}

// press starts a drag. Presses are ignored while a pinch owns the gesture.
// Caller must hold the mutex.
func (c *controllerImpl) press(x, y float32, pan bool) {
	if c.state == StatePinching {
		return
	}
	c.state = StateDragging
	c.mode = ModeOrbit
	if pan {
		c.mode = ModePan
	}
	c.last = Point{X: x, Y: y}
}

// move dispatches the pointer delta to the camera when dragging.
// Caller must hold the mutex.
func (c *controllerImpl) move(x, y float32) {
	if c.state != StateDragging {
		return
	}
	dx := x - c.last.X
	dy := y - c.last.Y
	c.last = Point{X: x, Y: y}

	switch c.mode {
	case ModePan:
		c.camera.Pan(dx, dy)
	default:
		c.camera.Orbit(dx*c.orbitSensitivity, dy*c.orbitSensitivity)
	}
	c.requester.RequestRender()
}

// release ends any drag or pinch. Caller must hold the mutex.
func (c *controllerImpl) release() {
	c.state = StateIdle
	c.pinchStart = 0
}

// wheel zooms by a step proportional to the current radius.
// Caller must hold the mutex.
func (c *controllerImpl) wheel(deltaY float32) {
	var sign float32
	switch {
	case deltaY > 0:
		sign = 1
	case deltaY < 0:
		sign = -1
	}
	c.camera.ZoomBy(sign * c.wheelStep * c.camera.Radius())
	c.requester.RequestRender()
}

// touchStart begins a pinch on exactly two touches or a drag on one.
// Caller must hold the mutex.
func (c *controllerImpl) touchStart(points []Point) {
	c.activeTouches = len(points)
	switch len(points) {
	case 1:
		c.press(points[0].X, points[0].Y, false)
	case 2:
		c.state = StatePinching
		c.pinchStart = touchDistance(points[0], points[1])
	}
}

// touchMove zooms while pinching, or forwards a single touch as a pointer move.
// The pinch start distance is kept for the whole gesture. Caller must hold the mutex.
func (c *controllerImpl) touchMove(points []Point) {
	c.activeTouches = len(points)
	switch {
	case len(points) == 2 && c.state == StatePinching:
		if c.pinchStart == 0 {
			return
		}
		d := touchDistance(points[0], points[1])
		c.camera.ZoomBy((c.pinchStart - d) * c.pinchScale)
		c.requester.RequestRender()
	case len(points) < 2 && c.state == StatePinching:
		c.release()
	case len(points) == 1:
		c.move(points[0].X, points[0].Y)
	}
}

// touchDistance returns the Euclidean distance between two touch points.
func touchDistance(a, b Point) float32 {
	return float32(math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y)))
}
