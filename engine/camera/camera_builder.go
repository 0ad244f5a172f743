package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithOrbit sets the initial spherical pose.
//
// Parameters:
//   - theta: azimuth in degrees
//   - phi: elevation in degrees (not clamped)
//   - radius: distance from the target (not clamped)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera pose
func WithOrbit(theta, phi, radius float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.theta = theta
		c.phi = phi
		c.radius = radius
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - target: world-space target
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithLens sets the focal length and aperture that define the vertical field of view.
//
// Parameters:
//   - focalLength: focal length in millimetres
//   - aperture: sensor height in millimetres
//
// Returns:
//   - CameraBuilderOption: a function that sets the lens
func WithLens(focalLength, aperture float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.focalLength = focalLength
		c.aperture = aperture
	}
}

// WithZoomBounds sets the minimum and maximum radius. NewCamera panics unless 0 < min < max.
//
// Parameters:
//   - min: smallest allowed radius
//   - max: largest allowed radius
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom bounds
func WithZoomBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minZoom = min
		c.maxZoom = max
	}
}

// WithClipPlanes overrides the near and far clipping distances (default 0.1 and 10000).
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithPanScale overrides the pan speed factor applied per unit of radius.
//
// Parameters:
//   - scale: world units per pixel per unit of radius
//
// Returns:
//   - CameraBuilderOption: a function that sets the pan scale
func WithPanScale(scale float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.panScale = scale
	}
}
