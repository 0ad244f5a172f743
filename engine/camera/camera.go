package camera

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-pcv/common"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

const (
	// MinElevation and MaxElevation bound phi short of the poles, where the look-at basis degenerates.
	MinElevation float32 = -89
	MaxElevation float32 = 89

	// PanScale converts one pixel of pointer travel into world units per unit of radius.
	PanScale float32 = 0.002

	defaultNear float32 = 0.1
	defaultFar  float32 = 10000
)

type cameraImpl struct {
	mu *sync.Mutex

	theta  float32
	phi    float32
	radius float32
	target mgl32.Vec3

	focalLength float32
	aperture    float32

	minZoom float32
	maxZoom float32
	near    float32
	far     float32

	bounds   scene.BBox
	bounded  bool
	panScale float32
}

// Camera defines the interface for the orbit camera.
// The camera stores its pose as spherical coordinates (theta, phi, radius) around a target
// point and derives view and projection matrices from that state on demand. All angles are
// in degrees.
type Camera interface {
	// Seed copies the initial pose and lens of a scene into the camera and confines later pans
	// to the scene's bounding box. The seeded values are not validated against the zoom or
	// elevation bounds.
	//
	// Parameters:
	//   - s: the scene providing the camera seed and bounds
	Seed(s *scene.Scene)

	// Theta returns the azimuth in degrees. It is unbounded.
	//
	// Returns:
	//   - float32: azimuth in degrees
	Theta() float32

	// Phi returns the elevation in degrees.
	//
	// Returns:
	//   - float32: elevation in degrees
	Phi() float32

	// Radius returns the distance from the eye to the target.
	//
	// Returns:
	//   - float32: orbit radius
	Radius() float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target
	Target() mgl32.Vec3

	// ZoomBounds returns the radius limits enforced by ZoomBy.
	//
	// Returns:
	//   - minZoom: smallest allowed radius
	//   - maxZoom: largest allowed radius
	ZoomBounds() (minZoom, maxZoom float32)

	// Bounds returns the box that confines the target during pans.
	//
	// Returns:
	//   - scene.BBox: the pan bounds
	//   - bool: false if no scene has been seeded yet
	Bounds() (scene.BBox, bool)

	// FocalLength returns the lens focal length in millimetres.
	FocalLength() float32

	// Aperture returns the sensor height in millimetres.
	Aperture() float32

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view derived from aperture and focal length
	Fov() float32

	// EyePosition converts the spherical pose into a world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	EyePosition() mgl32.Vec3

	// ViewMatrix returns the right-handed look-at matrix from the eye to the target.
	// It never contains NaN, including when the eye coincides with the target.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection for the given aspect ratio.
	//
	// Parameters:
	//   - aspect: viewport width divided by height
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix(aspect float32) mgl32.Mat4

	// ViewProjectionMatrix returns projection × view, the model matrix being identity.
	//
	// Parameters:
	//   - aspect: viewport width divided by height
	//
	// Returns:
	//   - mgl32.Mat4: the combined MVP matrix
	ViewProjectionMatrix(aspect float32) mgl32.Mat4

	// Orbit rotates the eye around the target. Positive dPhi lowers the elevation.
	//
	// Parameters:
	//   - dTheta: azimuth change in degrees
	//   - dPhi: elevation change in degrees, subtracted from phi and clamped to [-89, 89]
	Orbit(dTheta, dPhi float32)

	// Pan slides the target across the screen plane. The pointer delta is scaled by
	// radius × PanScale so drag speed feels the same at any zoom level. After seeding the
	// target is clamped into the scene's bounding box.
	//
	// Parameters:
	//   - dx: horizontal pointer delta in pixels
	//   - dy: vertical pointer delta in pixels
	Pan(dx, dy float32)

	// ZoomBy adds delta to the radius and clamps the result to the zoom bounds.
	//
	// Parameters:
	//   - delta: radius change, positive moves the eye away from the target
	ZoomBy(delta float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the default pose: azimuth 45, elevation 45, radius 10
// around the origin, a 50mm lens over a 41.4214mm aperture, and zoom bounds [0.1, 100].
// It panics if the configured zoom bounds are not 0 < min < max.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		theta:       45,
		phi:         45,
		radius:      10,
		focalLength: 50,
		aperture:    41.4214,
		minZoom:     0.1,
		maxZoom:     100,
		near:        defaultNear,
		far:         defaultFar,
		panScale:    PanScale,
	}
	for _, option := range options {
		option(c)
	}
	if !(c.minZoom > 0 && c.minZoom < c.maxZoom) {
		panic(fmt.Sprintf("camera: invalid zoom bounds [%v, %v]", c.minZoom, c.maxZoom))
	}
	return c
}

func (c *cameraImpl) Seed(s *scene.Scene) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focalLength = s.Camera.FocalLength
	c.aperture = s.Camera.Aperture
	c.target = mgl32.Vec3(s.Camera.Target)
	c.theta = s.Camera.Azimuth
	c.phi = s.Camera.Elevation
	c.radius = s.Camera.Radius
	c.bounds = s.BBox
	c.bounded = true
}

func (c *cameraImpl) Theta() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theta
}

func (c *cameraImpl) Phi() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phi
}

func (c *cameraImpl) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) ZoomBounds() (minZoom, maxZoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minZoom, c.maxZoom
}

func (c *cameraImpl) Bounds() (scene.BBox, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds, c.bounded
}

func (c *cameraImpl) FocalLength() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focalLength
}

func (c *cameraImpl) Aperture() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aperture
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.VerticalFov(c.aperture, c.focalLength)
}

func (c *cameraImpl) EyePosition() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *cameraImpl) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection(aspect)
}

func (c *cameraImpl) ViewProjectionMatrix(aspect float32) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection(aspect).Mul4(c.view())
}

func (c *cameraImpl) Orbit(dTheta, dPhi float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theta += dTheta
	c.phi = common.Clamp(c.phi-dPhi, MinElevation, MaxElevation)
}

func (c *cameraImpl) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	right := common.SphericalToCartesian(1, c.theta+90, 0, mgl32.Vec3{})
	up := common.SphericalToCartesian(1, c.theta, c.phi+90, mgl32.Vec3{})
	scale := c.radius * c.panScale

	c.target = c.target.Sub(right.Mul(dx).Add(up.Mul(dy)).Mul(scale))
	if c.bounded {
		c.target = common.ClampVec3(c.target, c.bounds.Min, c.bounds.Max)
	}
}

func (c *cameraImpl) ZoomBy(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = common.Clamp(c.radius+delta, c.minZoom, c.maxZoom)
}

// eye computes the eye position. Caller must hold the mutex.
func (c *cameraImpl) eye() mgl32.Vec3 {
	return common.SphericalToCartesian(c.radius, c.theta, c.phi, c.target)
}

// view computes the view matrix. Caller must hold the mutex.
func (c *cameraImpl) view() mgl32.Mat4 {
	return common.LookAt(c.eye(), c.target, common.WorldUp)
}

// projection computes the projection matrix. Caller must hold the mutex.
func (c *cameraImpl) projection(aspect float32) mgl32.Mat4 {
	return common.Perspective(common.VerticalFov(c.aperture, c.focalLength), aspect, c.near, c.far)
}
