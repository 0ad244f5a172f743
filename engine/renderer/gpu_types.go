package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// PointShaderSource is the WGSL program that draws every point as an instanced square.
// Its CameraUniform struct matches GPUCameraUniform and its PointInput matches the layout
// written by packPoints.
//
//go:embed assets/point.wgsl
var PointShaderSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Size: 80 bytes (WGSL uniform aligned).
type GPUCameraUniform struct {
	MVP       [16]float32 // offset  0: projection × view (mat4x4<f32>)
	Viewport  [2]float32  // offset 64: framebuffer size in pixels (vec2<f32>)
	PointSize float32     // offset 72: point diameter in pixels
	_pad      float32     // offset 76: padding to 80 bytes
}

// NewGPUCameraUniform builds the uniform for one frame.
//
// Parameters:
//   - view: the view matrix
//   - proj: the projection matrix
//   - width, height: framebuffer size in pixels
//   - pointSize: point diameter in pixels
//
// Returns:
//   - GPUCameraUniform: the populated uniform
func NewGPUCameraUniform(view, proj mgl32.Mat4, width, height int, pointSize float32) GPUCameraUniform {
	return GPUCameraUniform{
		MVP:       proj.Mul4(view),
		Viewport:  [2]float32{float32(width), float32(height)},
		PointSize: pointSize,
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MVP[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.Viewport[0]))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(g.Viewport[1]))
	binary.LittleEndian.PutUint32(buf[72:], math.Float32bits(g.PointSize))
	return buf
}
