package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// fakeBackend records every call instead of talking to a GPU.
type fakeBackend struct {
	configured  [][2]int
	presentMode PresentMode
	clearColor  [4]float64
	vertices    []byte
	count       uint32
	camera      GPUCameraUniform
	frames      int
	released    bool
	uploadErr   error
}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configured = append(f.configured, [2]int{width, height})
}
func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }
func (f *fakeBackend) SetClearColor(rgba [4]float64) { f.clearColor = rgba }
func (f *fakeBackend) WriteCamera(u GPUCameraUniform) error {
	f.camera = u
	return nil
}
func (f *fakeBackend) DrawFrame() error { f.frames++; return nil }
func (f *fakeBackend) Release() { f.released = true }
func (f *fakeBackend) UploadPoints(vertices []byte, count uint32) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.vertices = vertices
	f.count = count
	return nil
}

func newTestRenderer(t *testing.T, width, height int, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	r := newRenderer(BackendTypeWGPU, options...)
	r.backend = fb
	r.init(width, height)
	return r, fb
}

func TestRenderer_InitPushesConfig(t *testing.T) {
	_, fb := newTestRenderer(t, 800, 600,
		WithPresentMode(PresentModeUncapped),
		WithClearColor([4]float64{0.1, 0.2, 0.3, 1}),
	)
	assert.Equal(t, PresentModeUncapped, fb.presentMode)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 1}, fb.clearColor)
	assert.Equal(t, [][2]int{{800, 600}}, fb.configured)
}

func TestRenderer_DefaultsAndZeroMSAA(t *testing.T) {
	r, fb := newTestRenderer(t, 1, 1, WithMSAA(0))
	assert.Equal(t, MSAA4x, r.sampleCount)
	assert.Equal(t, PresentModeVSync, fb.presentMode)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, fb.clearColor)
}

func TestRenderer_UploadAndDraw(t *testing.T) {
	r, fb := newTestRenderer(t, 200, 100)
	s := scene.NewScene(scene.WithPoints([]float32{1, 2, 3, 4, 5, 6}))

	require.NoError(t, r.Upload(s))
	assert.Equal(t, uint32(2), fb.count)
	assert.Len(t, fb.vertices, 2*pointVertexStride)
	assert.Equal(t, uint32(2), r.PointCount())

	view := mgl32.Translate3D(0, 0, -5)
	proj := mgl32.Perspective(1, 2, 0.1, 100)
	require.NoError(t, r.Draw(view, proj, 3))

	assert.Equal(t, 1, fb.frames)
	assert.Equal(t, [16]float32(proj.Mul4(view)), fb.camera.MVP)
	assert.Equal(t, [2]float32{200, 100}, fb.camera.Viewport)
	assert.Equal(t, float32(3), fb.camera.PointSize)
}

func TestRenderer_UploadError(t *testing.T) {
	r, fb := newTestRenderer(t, 10, 10)
	fb.uploadErr = errors.New("out of memory")

	err := r.Upload(scene.NewScene(scene.WithPoints([]float32{0, 0, 0})))
	assert.ErrorContains(t, err, "out of memory")
	assert.Zero(t, r.PointCount())
	assert.Error(t, r.Upload(nil))
}

func TestRenderer_ZeroSizeSkipsDrawAndConfigure(t *testing.T) {
	r, fb := newTestRenderer(t, 0, 0)
	assert.Empty(t, fb.configured)

	require.NoError(t, r.Draw(mgl32.Ident4(), mgl32.Ident4(), 1))
	assert.Zero(t, fb.frames)

	r.Resize(640, 0)
	assert.Empty(t, fb.configured)

	r.Resize(640, 480)
	require.NoError(t, r.Draw(mgl32.Ident4(), mgl32.Ident4(), 1))
	assert.Equal(t, 1, fb.frames)
	assert.Equal(t, [][2]int{{640, 480}}, fb.configured)
}

func TestRenderer_SetPresentModeReconfigures(t *testing.T) {
	r, fb := newTestRenderer(t, 10, 20)
	r.SetPresentMode(PresentModeUncapped)
	assert.Equal(t, PresentModeUncapped, fb.presentMode)
	assert.Equal(t, [][2]int{{10, 20}, {10, 20}}, fb.configured)

	r.SetClearColor([4]float64{1, 1, 1, 1})
	assert.Equal(t, [4]float64{1, 1, 1, 1}, fb.clearColor)
}

func TestRenderer_Release(t *testing.T) {
	r, fb := newTestRenderer(t, 10, 10)
	r.Release()
	r.Release()
	assert.True(t, fb.released)

	assert.ErrorIs(t, r.Draw(mgl32.Ident4(), mgl32.Ident4(), 1), ErrReleased)
	assert.ErrorIs(t, r.Upload(scene.NewScene()), ErrReleased)
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	u := NewGPUCameraUniform(mgl32.Ident4(), mgl32.Scale3D(2, 2, 2), 640, 480, 1.5)
	buf := u.Marshal()

	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[60:])))
	assert.Equal(t, float32(640), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, float32(480), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[76:]))
}

func TestPointShaderSource_Embedded(t *testing.T) {
	assert.Contains(t, PointShaderSource, "fn vs_main")
	assert.Contains(t, PointShaderSource, "fn fs_main")
	assert.Contains(t, PointShaderSource, "point_size")
}
