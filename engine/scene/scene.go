// Package scene holds the in-memory point cloud record produced by the loader.
// A Scene is immutable once built: viewers replace the whole record on reload
// instead of mutating it in place.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FlagHasColor marks a scene whose points carry an RGB color each.
const FlagHasColor uint8 = 1 << 0

// BBox is an axis-aligned bounding box. Min[i] <= Max[i] holds for every axis of a well-formed box.
type BBox struct {
	Min [3]float32
	Max [3]float32
}

// Contains reports whether p lies inside the box, boundaries included.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if p is inside the box
func (b BBox) Contains(p [3]float32) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Valid reports whether Min[i] <= Max[i] on all three axes.
//
// Returns:
//   - bool: true if the box is well-formed
func (b BBox) Valid() bool {
	for i := range 3 {
		if !(b.Min[i] <= b.Max[i]) {
			return false
		}
	}
	return true
}

// Center returns the midpoint of the box.
//
// Returns:
//   - mgl32.Vec3: the box center
func (b BBox) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
//
// Returns:
//   - mgl32.Vec3: Max - Min
func (b BBox) Size() mgl32.Vec3 {
	return mgl32.Vec3(b.Max).Sub(mgl32.Vec3(b.Min))
}

// BoundsOf computes the tight bounding box of a flat xyz position slice.
// An empty slice yields the zero box.
//
// Parameters:
//   - positions: flat slice of xyz triples
//
// Returns:
//   - BBox: the bounds of all points
func BoundsOf(positions []float32) BBox {
	if len(positions) < 3 {
		return BBox{}
	}
	b := BBox{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for i := 0; i+2 < len(positions); i += 3 {
		for a := range 3 {
			v := positions[i+a]
			b.Min[a] = min(b.Min[a], v)
			b.Max[a] = max(b.Max[a], v)
		}
	}
	return b
}

// CameraSeed is the initial camera pose authored into a scene file.
type CameraSeed struct {
	// FocalLength is the lens focal length in millimetres.
	FocalLength float32
	// Aperture is the sensor height in millimetres.
	Aperture float32
	// Target is the look-at point.
	Target [3]float32
	// Azimuth is the horizontal orbit angle in degrees.
	Azimuth float32
	// Elevation is the vertical orbit angle in degrees.
	Elevation float32
	// Radius is the distance from the eye to Target.
	Radius float32
}

// Scene is a decoded point cloud together with its bounds and initial camera.
// Callers must treat every field as read-only after construction.
type Scene struct {
	// Flags is the raw flag byte; bit 0 (FlagHasColor) mirrors Colors != nil.
	Flags uint8
	// Camera is the authored initial camera pose.
	Camera CameraSeed
	// PointCount is the number of points.
	PointCount uint32
	// BBox bounds every point and confines camera panning.
	BBox BBox
	// Positions holds PointCount xyz triples.
	Positions []float32
	// Colors holds PointCount rgb triples, or nil when the scene carries no colors.
	Colors []uint8
}

// HasColor reports whether the scene carries per-point colors.
//
// Returns:
//   - bool: true if Colors is populated
func (s *Scene) HasColor() bool {
	return s.Colors != nil
}

// Point returns the position of point i.
//
// Parameters:
//   - i: the point index (must be < PointCount)
//
// Returns:
//   - [3]float32: the xyz position
func (s *Scene) Point(i int) [3]float32 {
	return [3]float32{s.Positions[i*3], s.Positions[i*3+1], s.Positions[i*3+2]}
}

// Color returns the color of point i, or white when the scene has no colors.
//
// Parameters:
//   - i: the point index (must be < PointCount)
//
// Returns:
//   - [3]uint8: the rgb color
func (s *Scene) Color(i int) [3]uint8 {
	if s.Colors == nil {
		return FallbackColor
	}
	return [3]uint8{s.Colors[i*3], s.Colors[i*3+1], s.Colors[i*3+2]}
}

// FallbackColor is drawn for every point of a scene without colors.
var FallbackColor = [3]uint8{255, 255, 255}
