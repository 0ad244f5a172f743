package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pcv/engine/camera"
	"github.com/Carmen-Shannon/oxy-pcv/engine/input"
	"github.com/Carmen-Shannon/oxy-pcv/engine/loader"
	"github.com/Carmen-Shannon/oxy-pcv/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pcv/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-pcv/engine/window"
)

// engine implements the Engine interface.
// Ties the window's message loop to the camera, controller, scheduler and renderer.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	loader   loader.Loader

	camera     camera.Camera
	controller input.Controller
	scheduler  scheduler.Scheduler

	current atomic.Pointer[scene.Scene]

	mu        *sync.Mutex
	pointSize float32

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	quitOnce sync.Once

	// Pre-creation config collected from builder options
	windowOptions     []window.WindowBuilderOption
	rendererOptions   []renderer.RendererBuilderOption
	cameraOptions     []camera.CameraBuilderOption
	controllerOptions []input.ControllerBuilderOption
	profilerOptions   []profiler.ProfilerBuilderOption
}

// Engine is the main entry point of the viewer.
// It owns one window, one renderer and the camera state driven by the window's input, and
// redraws only when a render has been requested.
type Engine interface {
	// LoadPointCloud decodes an encoded scene, uploads it and reseeds the camera from it.
	// On failure the previously shown scene stays in place.
	//
	// Parameters:
	//   - data: the encoded scene bytes
	//
	// Returns:
	//   - error: a decode or upload error
	LoadPointCloud(data []byte) error

	// LoadFile loads a scene file through the loader cache and shows it.
	//
	// Parameters:
	//   - path: the scene file path
	//
	// Returns:
	//   - error: error if the file cannot be read, decoded or uploaded
	LoadFile(path string) error

	// Show uploads an already decoded scene and reseeds the camera from it.
	//
	// Parameters:
	//   - s: the scene to show
	//
	// Returns:
	//   - error: error if the scene could not be uploaded
	Show(s *scene.Scene) error

	// Scene returns the scene currently shown, or nil before the first successful load.
	//
	// Returns:
	//   - *scene.Scene: the current scene
	Scene() *scene.Scene

	// HandleEvent feeds one input event to the interaction controller.
	//
	// Parameters:
	//   - e: the input event
	HandleEvent(e input.Event)

	// SetPointSize changes the point diameter in screen coordinates and requests a render.
	//
	// Parameters:
	//   - size: the point size (values <= 0 are ignored)
	SetPointSize(size float32)

	// Camera returns the viewer camera.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// Controller returns the interaction controller.
	//
	// Returns:
	//   - input.Controller: the controller instance
	Controller() input.Controller

	// Scheduler returns the render scheduler.
	//
	// Returns:
	//   - scheduler.Scheduler: the scheduler instance
	Scheduler() scheduler.Scheduler

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run runs the window message loop until the window closes, then releases the renderer
	// and the window.
	Run()

	// Quit asks the message loop to exit.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window and a WGPU renderer are created unless supplied through WithWindow and
// WithRenderer. The first frame is requested before returning so the window is cleared to
// the background color even before a scene is loaded.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:        &sync.Mutex{},
		pointSize: 1,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow(e.windowOptions...)
	}
	if e.renderer == nil {
		e.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, e.window, e.rendererOptions...)
	}
	if e.loader == nil {
		e.loader = loader.NewLoader(loader.BackendTypePCB)
	}

	e.camera = camera.NewCamera(e.cameraOptions...)
	e.scheduler = scheduler.NewScheduler(e.window, e.draw)
	e.controller = input.NewController(e.camera, e.scheduler, e.controllerOptions...)
	e.profiler = profiler.NewProfiler(append([]profiler.ProfilerBuilderOption{
		profiler.WithRenderStats(e.scheduler.Stats),
	}, e.profilerOptions...)...)

	e.window.SetEventCallback(e.HandleEvent)
	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
		e.scheduler.RequestRender()
	})

	e.scheduler.RequestRender()
	return e
}

func (e *engine) LoadPointCloud(data []byte) error {
	s, err := loader.Decode(data)
	if err != nil {
		log.Printf("[Viewer] rejected point cloud: %v", err)
		return fmt.Errorf("failed to decode point cloud: %w", err)
	}
	return e.Show(s)
}

func (e *engine) LoadFile(path string) error {
	s, err := e.loader.Load(path)
	if err != nil {
		log.Printf("[Viewer] %v", err)
		return err
	}
	return e.Show(s)
}

func (e *engine) Show(s *scene.Scene) error {
	if s == nil {
		return errors.New("engine: nil scene")
	}
	if err := e.renderer.Upload(s); err != nil {
		log.Printf("[Viewer] upload failed: %v", err)
		return err
	}

	e.current.Store(s)
	e.camera.Seed(s)
	e.controller.Reset()
	log.Printf("[Viewer] showing %d points (color: %t)", s.PointCount, s.HasColor())

	e.scheduler.RequestRender()
	return nil
}

func (e *engine) Scene() *scene.Scene {
	return e.current.Load()
}

func (e *engine) HandleEvent(ev input.Event) {
	e.controller.Handle(ev)
}

func (e *engine) SetPointSize(size float32) {
	if size <= 0 {
		return
	}
	e.mu.Lock()
	e.pointSize = size
	e.mu.Unlock()
	e.scheduler.RequestRender()
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() input.Controller {
	return e.controller
}

func (e *engine) Scheduler() scheduler.Scheduler {
	return e.scheduler
}

func (e *engine) Window() window.Window {
	return e.window
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) Run() {
	e.window.ProcessMessages()

	e.renderer.Release()
	if err := e.window.Close(); err != nil {
		log.Printf("[Viewer] failed to close window: %v", err)
	}
}

// Quit asks the window loop to exit.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(e.window.RequestClose)
}

// draw is the scheduler's frame step: recompute the camera matrices for the current
// viewport and draw the resident points.
// Recovers from panics so a bad frame does not take down the message loop.
func (e *engine) draw() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Viewer] draw recovered from panic: %v", r)
		}
	}()

	width, height := e.window.Width(), e.window.Height()
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	e.mu.Lock()
	size := e.pointSize * e.window.ContentScale()
	e.mu.Unlock()
	if err := e.renderer.Draw(e.camera.ViewMatrix(), e.camera.ProjectionMatrix(aspect), size); err != nil {
		log.Printf("[Viewer] draw failed: %v", err)
	}

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}
