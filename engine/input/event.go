package input

// Button identifies the mouse button of a PointerDown event.
type Button int

const (
	// ButtonPrimary is the left mouse button or a single touch.
	ButtonPrimary Button = iota
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonSecondary is the right mouse button.
	ButtonSecondary
)

// Point is a device-independent screen coordinate.
type Point struct {
	X, Y float32
}

// Event is a normalized input event delivered to a Controller. The concrete types are
// PointerDown, PointerMove, PointerUp, Wheel, TouchStart, TouchMove and TouchEnd.
type Event interface {
	event()
}

// PointerDown is a press of a mouse button at (X, Y).
type PointerDown struct {
	X, Y   float32
	Button Button
}

// PointerMove is a cursor movement to (X, Y).
type PointerMove struct {
	X, Y float32
}

// PointerUp is a button release anywhere, inside the viewport or not.
type PointerUp struct{}

// Wheel is a scroll step. Positive DeltaY moves the camera away from the target.
type Wheel struct {
	DeltaY float32
}

// TouchStart reports every touch point active after a finger went down.
type TouchStart struct {
	Points []Point
}

// TouchMove reports every active touch point after a finger moved.
type TouchMove struct {
	Points []Point
}

// TouchEnd reports the touch points still active after a finger lifted.
type TouchEnd struct {
	Points []Point
}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (Wheel) event()       {}
func (TouchStart) event()  {}
func (TouchMove) event()   {}
func (TouchEnd) event()    {}
