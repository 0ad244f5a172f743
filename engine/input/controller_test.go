package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pcv/engine/camera"
)

type countingRequester struct {
	calls int
}

func (r *countingRequester) RequestRender() {
	r.calls++
}

func newTestController(t *testing.T, options ...ControllerBuilderOption) (Controller, camera.Camera, *countingRequester) {
	t.Helper()
	cam := camera.NewCamera(camera.WithOrbit(0, 0, 10))
	req := &countingRequester{}
	return NewController(cam, req, options...), cam, req
}

func TestNewController_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewController(nil, &countingRequester{}) })
	assert.Panics(t, func() { NewController(camera.NewCamera(), nil) })
}

func TestController_ModeSelection(t *testing.T) {
	tests := []struct {
		button Button
		want   Mode
	}{
		{ButtonPrimary, ModeOrbit},
		{ButtonMiddle, ModeOrbit},
		{ButtonSecondary, ModePan},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			c, _, _ := newTestController(t)
			c.Handle(PointerDown{X: 5, Y: 5, Button: tt.button})
			assert.Equal(t, StateDragging, c.State())
			assert.Equal(t, tt.want, c.Mode())
		})
	}
}

func TestController_OrbitDrag(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(PointerDown{X: 100, Y: 100})
	c.Handle(PointerMove{X: 110, Y: 104})
	assert.InDelta(t, 5, cam.Theta(), 1e-6)
	assert.InDelta(t, -2, cam.Phi(), 1e-6)

	c.Handle(PointerMove{X: 90, Y: 104})
	assert.InDelta(t, -5, cam.Theta(), 1e-6)
	assert.Equal(t, 2, req.calls)
}

func TestController_PanDrag(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(PointerDown{X: 0, Y: 0, Button: ButtonSecondary})
	c.Handle(PointerMove{X: 10, Y: 0})

	target := cam.Target()
	assert.InDelta(t, -0.2, target[2], 1e-5)
	assert.Equal(t, float32(0), cam.Theta())
	assert.Equal(t, 1, req.calls)
}

func TestController_MoveWithoutPressIsIgnored(t *testing.T) {
	c, cam, req := newTestController(t)
	c.Handle(PointerMove{X: 50, Y: 50})
	assert.Equal(t, float32(0), cam.Theta())
	assert.Zero(t, req.calls)
}

func TestController_ReleaseEndsDrag(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(PointerDown{X: 0, Y: 0})
	c.Handle(PointerUp{})
	assert.Equal(t, StateIdle, c.State())

	c.Handle(PointerMove{X: 100, Y: 0})
	assert.Equal(t, float32(0), cam.Theta())
	assert.Zero(t, req.calls)
}

func TestController_PinchZoom(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(TouchStart{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	require.Equal(t, StatePinching, c.State())

	// fingers together: (100 - 50) * 0.02 = +1
	c.Handle(TouchMove{Points: []Point{{X: 0, Y: 0}, {X: 50, Y: 0}}})
	assert.InDelta(t, 11, cam.Radius(), 1e-5)

	// the start distance is not updated by moves
	c.Handle(TouchMove{Points: []Point{{X: 0, Y: 0}, {X: 200, Y: 0}}})
	assert.InDelta(t, 9, cam.Radius(), 1e-5)
	assert.Equal(t, 2, req.calls)

	c.Handle(TouchEnd{Points: []Point{{X: 0, Y: 0}}})
	assert.Equal(t, StateIdle, c.State())
}

func TestController_PinchZoomIsBounded(t *testing.T) {
	c, cam, _ := newTestController(t)

	c.Handle(TouchStart{Points: []Point{{X: 0, Y: 0}, {X: 0, Y: 10000}}})
	c.Handle(TouchMove{Points: []Point{{X: 0, Y: 0}, {X: 0, Y: 1}}})
	assert.Equal(t, float32(100), cam.Radius())

	c.Handle(TouchMove{Points: []Point{{X: 0, Y: 0}, {X: 0, Y: 1e6}}})
	assert.Equal(t, float32(0.1), cam.Radius())
}

func TestController_ZeroPinchStartSkipsZoom(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(TouchStart{Points: []Point{{X: 3, Y: 3}, {X: 3, Y: 3}}})
	c.Handle(TouchMove{Points: []Point{{X: 0, Y: 0}, {X: 80, Y: 0}}})
	assert.Equal(t, float32(10), cam.Radius())
	assert.Zero(t, req.calls)
}

func TestController_PointerIgnoredWhilePinching(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(TouchStart{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	c.Handle(PointerDown{X: 0, Y: 0})
	c.Handle(PointerMove{X: 100, Y: 100})

	assert.Equal(t, StatePinching, c.State())
	assert.Equal(t, float32(0), cam.Theta())
	assert.Zero(t, req.calls)
}

func TestController_FewerThanTwoTouchesLeavesPinch(t *testing.T) {
	c, _, _ := newTestController(t)

	c.Handle(TouchStart{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	c.Handle(TouchMove{Points: []Point{{X: 0, Y: 0}}})
	assert.Equal(t, StateIdle, c.State())
}

func TestController_SingleTouchOrbits(t *testing.T) {
	c, cam, _ := newTestController(t)

	c.Handle(TouchStart{Points: []Point{{X: 10, Y: 10}}})
	assert.Equal(t, StateDragging, c.State())
	assert.Equal(t, ModeOrbit, c.Mode())

	c.Handle(TouchMove{Points: []Point{{X: 30, Y: 10}}})
	assert.InDelta(t, 10, cam.Theta(), 1e-6)

	c.Handle(TouchEnd{})
	assert.Equal(t, StateIdle, c.State())
}

func TestController_Wheel(t *testing.T) {
	c, cam, req := newTestController(t)

	c.Handle(Wheel{DeltaY: 120})
	assert.InDelta(t, 11, cam.Radius(), 1e-5)

	c.Handle(Wheel{DeltaY: -3})
	assert.InDelta(t, 9.9, cam.Radius(), 1e-5)

	c.Handle(Wheel{DeltaY: 0})
	assert.InDelta(t, 9.9, cam.Radius(), 1e-5)
	assert.Equal(t, 3, req.calls)
}

func TestController_WheelDuringDragKeepsState(t *testing.T) {
	c, _, _ := newTestController(t)

	c.Handle(PointerDown{X: 0, Y: 0, Button: ButtonSecondary})
	c.Handle(Wheel{DeltaY: 1})
	assert.Equal(t, StateDragging, c.State())
	assert.Equal(t, ModePan, c.Mode())
}

func TestController_Reset(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Handle(TouchStart{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	c.Reset()
	assert.Equal(t, StateIdle, c.State())
}

func TestController_Options(t *testing.T) {
	c, cam, _ := newTestController(t, WithOrbitSensitivity(1), WithWheelStep(0.5), WithPinchScale(0.1))

	c.Handle(PointerDown{})
	c.Handle(PointerMove{X: 10})
	assert.InDelta(t, 10, cam.Theta(), 1e-6)
	c.Handle(PointerUp{})

	c.Handle(Wheel{DeltaY: 1})
	assert.InDelta(t, 15, cam.Radius(), 1e-5)

	c.Handle(TouchStart{Points: []Point{{}, {X: 20}}})
	c.Handle(TouchMove{Points: []Point{{}, {X: 10}}})
	assert.InDelta(t, 16, cam.Radius(), 1e-5)
	assert.Equal(t, mgl32.Vec3{}, cam.Target())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Pinching", StatePinching.String())
	assert.Equal(t, "State(7)", State(7).String())
}
