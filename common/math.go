package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// epsilon is the squared-length threshold under which a basis vector is treated as degenerate.
const epsilon = 1e-12

// WorldUp is the world-space up direction used by every look-at computation in the viewer.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Clamp limits v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v confined to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	return min(hi, max(lo, v))
}

// ClampVec3 confines each component of v to the matching component range of [lo, hi].
//
// Parameters:
//   - v: the vector to clamp
//   - lo: per-component lower bounds
//   - hi: per-component upper bounds
//
// Returns:
//   - mgl32.Vec3: the clamped vector
func ClampVec3(v, lo, hi mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		Clamp(v[0], lo[0], hi[0]),
		Clamp(v[1], lo[1], hi[1]),
		Clamp(v[2], lo[2], hi[2]),
	}
}

// SphericalToCartesian converts a distance and two angles in degrees into a point around origin.
// Elevation 0 lies in the origin's horizontal plane and azimuth 0 points along +X.
//
// Parameters:
//   - r: distance from origin
//   - thetaDeg: azimuth in degrees
//   - phiDeg: elevation in degrees
//   - origin: the center of the sphere
//
// Returns:
//   - mgl32.Vec3: the Cartesian position
func SphericalToCartesian(r, thetaDeg, phiDeg float32, origin mgl32.Vec3) mgl32.Vec3 {
	t := float64(mgl32.DegToRad(thetaDeg))
	p := float64(mgl32.DegToRad(phiDeg))
	cosP := math.Cos(p)
	return mgl32.Vec3{
		r*float32(cosP*math.Cos(t)) + origin[0],
		r*float32(math.Sin(p)) + origin[1],
		r*float32(cosP*math.Sin(t)) + origin[2],
	}
}

// VerticalFov derives the vertical field of view from a physical lens description.
//
// Parameters:
//   - aperture: sensor height in millimetres
//   - focalLength: focal length in millimetres
//
// Returns:
//   - float32: field of view in radians
func VerticalFov(aperture, focalLength float32) float32 {
	return float32(2 * math.Atan(float64(aperture/2)/float64(focalLength)))
}

// Perspective creates a right-handed perspective projection matrix mapping view-space depth
// into the [-1, 1] clip range with element [2][3] equal to -1.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(fovY, aspect, near, far)
}

// LookAt creates a right-handed view matrix that positions the camera at eye looking at center.
// When eye and center coincide the backward axis falls back to +Z, and when the view direction
// is parallel to up the right axis falls back to a perpendicular of the backward axis, so the
// result never contains NaN.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically WorldUp)
//
// Returns:
//   - mgl32.Mat4: the view matrix (column-major)
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	z := eye.Sub(center)
	if z.Dot(z) < epsilon {
		z = mgl32.Vec3{0, 0, 1}
	} else {
		z = z.Normalize()
	}

	x := up.Cross(z)
	if x.Dot(x) < epsilon {
		// Looking straight along up: borrow the axis least aligned with z.
		alt := mgl32.Vec3{0, 0, 1}
		if math.Abs(float64(z[2])) > 0.9 {
			alt = mgl32.Vec3{1, 0, 0}
		}
		x = alt.Cross(z)
	}
	x = x.Normalize()

	y := z.Cross(x)

	return mgl32.Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// HasNaN reports whether any element of m is NaN or infinite.
//
// Parameters:
//   - m: the matrix to inspect
//
// Returns:
//   - bool: true if the matrix is not finite
func HasNaN(m mgl32.Mat4) bool {
	for _, v := range m {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}
