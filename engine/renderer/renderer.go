package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-pcv/common"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
	"github.com/Carmen-Shannon/oxy-pcv/engine/window"
)

// ErrReleased is returned by Upload and Draw after Release.
var ErrReleased = errors.New("renderer: released")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     rendererBackend
	packPool    worker.DynamicWorkerPool

	width      int
	height     int
	pointCount uint32
	released   bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           [4]float64
	packWorkers          int
}

// Renderer defines the interface for drawing a point cloud.
//
// The Renderer keeps one scene resident on the GPU at a time. Upload replaces it; Draw
// renders it from a camera. The backend behind it is selected at construction.
type Renderer interface {
	// Upload packs the scene's points into the GPU vertex layout and replaces the resident
	// point buffer. Scenes without colors are drawn with scene.FallbackColor.
	//
	// Parameters:
	//   - s: the scene to upload
	//
	// Returns:
	//   - error: an error if the GPU buffer could not be created
	Upload(s *scene.Scene) error

	// Draw renders the resident points from the given camera matrices. A zero-sized
	// framebuffer (minimized window) is skipped without error.
	//
	// Parameters:
	//   - view: the view matrix
	//   - proj: the projection matrix
	//   - pointSize: point diameter in framebuffer pixels
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	Draw(view, proj mgl32.Mat4, pointSize float32) error

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor changes the background color.
	//
	// Parameters:
	//   - rgba: red, green, blue, alpha in [0, 1]
	SetClearColor(rgba [4]float64)

	// PointCount returns the number of resident points.
	//
	// Returns:
	//   - uint32: the uploaded point count
	PointCount() uint32

	// Release frees the GPU resources. Later Upload and Draw calls return ErrReleased.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, drawing into
// the given window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial framebuffer size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount)
	}

	r.init(win.Width(), win.Height())
	return r
}

// newRenderer applies defaults and options without creating a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		clearColor:  [4]float64{0, 0, 0, 1},
		packWorkers: max(runtime.NumCPU()-1, 1),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	r.sampleCount = common.Coalesce(r.sampleCount, MSAA4x)
	r.packPool = worker.NewDynamicWorkerPool(r.packWorkers, packMaxTasks, time.Second)
	return r
}

// init pushes the collected configuration to the backend and configures the surface.
func (r *renderer) init(width, height int) {
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	r.Resize(width, height)
}

func (r *renderer) Upload(s *scene.Scene) error {
	if s == nil {
		return errors.New("renderer: nil scene")
	}
	vertices := packPoints(s, r.packPool)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	if err := r.backend.UploadPoints(vertices, s.PointCount); err != nil {
		return fmt.Errorf("failed to upload %d points: %w", s.PointCount, err)
	}
	r.pointCount = s.PointCount
	return nil
}

func (r *renderer) Draw(view, proj mgl32.Mat4, pointSize float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	if err := r.backend.WriteCamera(NewGPUCameraUniform(view, proj, r.width, r.height, pointSize)); err != nil {
		return fmt.Errorf("failed to write camera uniform: %w", err)
	}
	return r.backend.DrawFrame()
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
	r.height = height
	if r.released || width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	if r.released {
		return
	}
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		r.backend.ConfigureSurface(r.width, r.height)
	}
}

func (r *renderer) SetClearColor(rgba [4]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = rgba
	if !r.released {
		r.backend.SetClearColor(rgba)
	}
}

func (r *renderer) PointCount() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointCount
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}
