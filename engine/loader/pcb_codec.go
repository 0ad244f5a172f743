package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// Decode parses a .pcb buffer into a Scene. Fields are read in strict layout order through a
// bounds-checked cursor; bytes after the last point record are ignored.
//
// Parameters:
//   - data: the complete file contents
//
// Returns:
//   - *scene.Scene: the decoded scene
//   - error: a *FormatError (BadMagic, UnsupportedVersion or Truncated) if the buffer is malformed
func Decode(data []byte) (*scene.Scene, error) {
	r := newByteReader(data)

	magic := r.Uint32()
	if r.Err() != nil {
		return nil, r.Err()
	}
	if magic != PCBMagic {
		return nil, &FormatError{Kind: BadMagic, Offset: 0, Need: uint64(PCBMagic), Have: uint64(magic)}
	}

	version := r.Uint8()
	if r.Err() != nil {
		return nil, r.Err()
	}
	if version != PCBVersion {
		return nil, &FormatError{Kind: UnsupportedVersion, Offset: 4, Need: uint64(PCBVersion), Have: uint64(version)}
	}

	s := &scene.Scene{}
	s.Flags = r.Uint8()
	s.Camera.FocalLength = r.Float32()
	s.Camera.Aperture = r.Float32()
	s.Camera.Target = r.Vec3()
	s.Camera.Azimuth = r.Float32()
	s.Camera.Elevation = r.Float32()
	s.Camera.Radius = r.Float32()
	s.PointCount = r.Uint32()
	s.BBox.Min = r.Vec3()
	s.BBox.Max = r.Vec3()
	if r.Err() != nil {
		return nil, r.Err()
	}

	hasColor := s.Flags&scene.FlagHasColor != 0
	if !r.Require(encodedSize(s.PointCount, hasColor) - pcbHeaderSize) {
		return nil, r.Err()
	}

	n := int(s.PointCount)
	s.Positions = make([]float32, n*3)
	if hasColor {
		s.Colors = make([]uint8, n*3)
	}
	for i := range n {
		s.Positions[i*3] = r.Float32()
		s.Positions[i*3+1] = r.Float32()
		s.Positions[i*3+2] = r.Float32()
		if hasColor {
			r.Bytes(s.Colors[i*3 : i*3+3])
		}
	}
	if r.Err() != nil {
		return nil, r.Err()
	}

	return s, nil
}

// Encode serializes a Scene into the .pcb layout. It is the exact inverse of Decode:
// decoding the result yields a scene equal to s bit for bit.
//
// Parameters:
//   - s: the scene to serialize
//
// Returns:
//   - []byte: the encoded buffer
//   - error: ErrInconsistentScene if Positions or Colors do not hold PointCount triples
func Encode(s *scene.Scene) ([]byte, error) {
	n := int(s.PointCount)
	if len(s.Positions) != n*3 {
		return nil, fmt.Errorf("%w: %d positions for %d points", ErrInconsistentScene, len(s.Positions), n)
	}
	hasColor := s.Colors != nil
	if hasColor && len(s.Colors) != n*3 {
		return nil, fmt.Errorf("%w: %d color bytes for %d points", ErrInconsistentScene, len(s.Colors), n)
	}

	flags := s.Flags &^ scene.FlagHasColor
	if hasColor {
		flags |= scene.FlagHasColor
	}

	w := newByteWriter(encodedSize(s.PointCount, hasColor))
	w.Uint32(PCBMagic)
	w.Uint8(PCBVersion)
	w.Uint8(flags)
	w.Float32(s.Camera.FocalLength)
	w.Float32(s.Camera.Aperture)
	w.Vec3(s.Camera.Target)
	w.Float32(s.Camera.Azimuth)
	w.Float32(s.Camera.Elevation)
	w.Float32(s.Camera.Radius)
	w.Uint32(s.PointCount)
	w.Vec3(s.BBox.Min)
	w.Vec3(s.BBox.Max)

	for i := range n {
		w.Float32(s.Positions[i*3])
		w.Float32(s.Positions[i*3+1])
		w.Float32(s.Positions[i*3+2])
		if hasColor {
			w.Bytes(s.Colors[i*3 : i*3+3])
		}
	}

	return w.buf, nil
}
