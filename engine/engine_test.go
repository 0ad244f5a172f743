package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pcv/engine/input"
	"github.com/Carmen-Shannon/oxy-pcv/engine/loader"
	"github.com/Carmen-Shannon/oxy-pcv/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pcv/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// fakeWindow queues frame callbacks until the test flushes them.
type fakeWindow struct {
	width, height int
	scale         float32
	queue         []func()
	onEvent       func(e input.Event)
	onResize      func(width, height int)
	closeRequests int
	closed        bool
}

func (w *fakeWindow) OnNextFrame(fn func()) { w.queue = append(w.queue, fn) }
func (w *fakeWindow) SetEventCallback(callback func(e input.Event)) { w.onEvent = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) ContentScale() float32 { return w.scale }
func (w *fakeWindow) IsRunning() bool { return !w.closed }
func (w *fakeWindow) Close() error { w.closed = true; return nil }
func (w *fakeWindow) RequestClose() { w.closeRequests++ }
func (w *fakeWindow) ProcessMessages() { w.flush() }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }

// flush runs the frames queued so far, leaving any queued during the run for the next flush.
func (w *fakeWindow) flush() int {
	batch := w.queue
	w.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

type drawCall struct {
	view, proj mgl32.Mat4
	pointSize  float32
}

type fakeRenderer struct {
	uploads   []*scene.Scene
	draws     []drawCall
	resizes   [][2]int
	released  bool
	uploadErr error
	panicDraw bool
}

func (r *fakeRenderer) Upload(s *scene.Scene) error {
	if r.uploadErr != nil {
		return r.uploadErr
	}
	r.uploads = append(r.uploads, s)
	return nil
}

func (r *fakeRenderer) Draw(view, proj mgl32.Mat4, pointSize float32) error {
	if r.panicDraw {
		panic("device lost")
	}
	r.draws = append(r.draws, drawCall{view, proj, pointSize})
	return nil
}

func (r *fakeRenderer) Resize(width, height int) { r.resizes = append(r.resizes, [2]int{width, height}) }
func (r *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}
func (r *fakeRenderer) SetClearColor(rgba [4]float64) {}
func (r *fakeRenderer) Release() { r.released = true }
func (r *fakeRenderer) PointCount() uint32 {
	if len(r.uploads) == 0 {
		return 0
	}
	return r.uploads[len(r.uploads)-1].PointCount
}

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (Engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	fw := &fakeWindow{width: 800, height: 600, scale: 1}
	fr := &fakeRenderer{}
	e := NewEngine(append([]EngineBuilderOption{WithWindow(fw), WithRenderer(fr)}, options...)...)
	return e, fw, fr
}

func encodedScene(t *testing.T, seed scene.CameraSeed) []byte {
	t.Helper()
	data, err := loader.Encode(scene.NewScene(
		scene.WithPoints([]float32{-1, -1, -1, 1, 1, 1}),
		scene.WithColors([]uint8{255, 0, 0, 0, 255, 0}),
		scene.WithCamera(seed),
	))
	require.NoError(t, err)
	return data
}

var testSeed = scene.CameraSeed{FocalLength: 35, Aperture: 24, Azimuth: 30, Elevation: 10, Radius: 5}

func TestNewEngine_InitialFrame(t *testing.T) {
	e, fw, fr := newTestEngine(t)

	assert.True(t, e.Scheduler().Pending())
	assert.Equal(t, 1, fw.flush())
	require.Len(t, fr.draws, 1)
	assert.Nil(t, e.Scene())
	assert.NotNil(t, fw.onEvent)
	assert.NotNil(t, fw.onResize)
}

func TestEngine_LoadPointCloud(t *testing.T) {
	e, fw, fr := newTestEngine(t)
	fw.flush()

	require.NoError(t, e.LoadPointCloud(encodedScene(t, testSeed)))
	require.Len(t, fr.uploads, 1)
	assert.Equal(t, uint32(2), e.Scene().PointCount)

	cam := e.Camera()
	assert.Equal(t, float32(30), cam.Theta())
	assert.Equal(t, float32(10), cam.Phi())
	assert.Equal(t, float32(5), cam.Radius())
	bbox, bounded := cam.Bounds()
	assert.True(t, bounded)
	assert.Equal(t, scene.BBox{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}, bbox)

	assert.Equal(t, 1, fw.flush())
	require.Len(t, fr.draws, 2)
	assert.Equal(t, cam.ViewMatrix(), fr.draws[1].view)
	assert.Equal(t, cam.ProjectionMatrix(800.0/600.0), fr.draws[1].proj)
}

func TestEngine_LoadPointCloudKeepsPreviousSceneOnError(t *testing.T) {
	e, fw, fr := newTestEngine(t)
	require.NoError(t, e.LoadPointCloud(encodedScene(t, testSeed)))
	fw.flush()
	previous := e.Scene()

	err := e.LoadPointCloud([]byte("not a point cloud at all"))
	assert.ErrorIs(t, err, loader.ErrBadMagic)
	assert.Same(t, previous, e.Scene())
	assert.Len(t, fr.uploads, 1)
	assert.False(t, e.Scheduler().Pending())
	assert.Equal(t, float32(5), e.Camera().Radius())

	fr.uploadErr = errors.New("out of memory")
	assert.Error(t, e.LoadPointCloud(encodedScene(t, scene.CameraSeed{FocalLength: 50, Aperture: 41, Radius: 20})))
	assert.Same(t, previous, e.Scene())
	assert.Equal(t, float32(5), e.Camera().Radius())
}

func TestEngine_LoadFile(t *testing.T) {
	e, _, fr := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "cloud.pcb")
	require.NoError(t, os.WriteFile(path, encodedScene(t, testSeed), 0o644))

	require.NoError(t, e.LoadFile(path))
	assert.Len(t, fr.uploads, 1)
	assert.Equal(t, uint32(2), e.Scene().PointCount)

	assert.Error(t, e.LoadFile(filepath.Join(t.TempDir(), "cloud.ply")))
	assert.Error(t, e.Show(nil))
}

func TestEngine_EventsCoalesceIntoOneDraw(t *testing.T) {
	e, fw, fr := newTestEngine(t)
	fw.flush()

	fw.onEvent(input.PointerDown{X: 0, Y: 0, Button: input.ButtonPrimary})
	for i := 1; i <= 5; i++ {
		fw.onEvent(input.PointerMove{X: float32(i * 10), Y: 0})
	}
	fw.onEvent(input.PointerUp{X: 50, Y: 0})

	assert.Equal(t, input.StateIdle, e.Controller().State())
	assert.InDelta(t, 70, e.Camera().Theta(), 1e-5)
	assert.Equal(t, 1, fw.flush())
	assert.Len(t, fr.draws, 2)
	assert.Zero(t, fw.flush())
}

func TestEngine_ResizeRedrawsWithNewAspect(t *testing.T) {
	e, fw, fr := newTestEngine(t)
	fw.flush()

	fw.width, fw.height = 400, 400
	fw.onResize(400, 400)
	assert.Equal(t, [][2]int{{400, 400}}, fr.resizes)
	fw.flush()
	require.Len(t, fr.draws, 2)
	assert.Equal(t, e.Camera().ProjectionMatrix(1), fr.draws[1].proj)
}

func TestEngine_ZeroHeightUsesUnitAspect(t *testing.T) {
	e, fw, fr := newTestEngine(t)
	fw.height = 0
	fw.flush()

	require.Len(t, fr.draws, 1)
	assert.Equal(t, e.Camera().ProjectionMatrix(1), fr.draws[0].proj)
}

func TestEngine_PointSizeScalesWithContentScale(t *testing.T) {
	e, fw, fr := newTestEngine(t, WithPointSize(2))
	fw.scale = 1.5
	fw.flush()
	require.Len(t, fr.draws, 1)
	assert.Equal(t, float32(3), fr.draws[0].pointSize)

	e.SetPointSize(4)
	e.SetPointSize(-1)
	fw.flush()
	require.Len(t, fr.draws, 2)
	assert.Equal(t, float32(6), fr.draws[1].pointSize)
}

func TestEngine_DrawPanicIsRecovered(t *testing.T) {
	e, fw, fr := newTestEngine(t)
	fr.panicDraw = true
	assert.NotPanics(t, func() { fw.flush() })

	fr.panicDraw = false
	e.Scheduler().RequestRender()
	fw.flush()
	assert.Len(t, fr.draws, 1)
}

func TestEngine_RunAndQuit(t *testing.T) {
	e, fw, fr := newTestEngine(t)

	e.Quit()
	e.Quit()
	assert.Equal(t, 1, fw.closeRequests)

	e.Run()
	assert.True(t, fr.released)
	assert.True(t, fw.closed)
	assert.Len(t, fr.draws, 1)
}

func TestEngine_Profiling(t *testing.T) {
	var lines []string
	e, fw, _ := newTestEngine(t,
		WithProfiling(true),
		WithProfilerOptions(
			profiler.WithInterval(0),
			profiler.WithOutput(func(s string) { lines = append(lines, s) }),
		),
	)
	fw.flush()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[Profiler] Draws/s")
	assert.Contains(t, lines[0], "Drawn: 1")

	e.DisableProfiler()
	e.Scheduler().RequestRender()
	fw.flush()
	assert.Len(t, lines, 1)
}
