package loader

import (
	"errors"
	"fmt"
)

// Binary point cloud (.pcb) layout constants. All multi-byte fields are little-endian.
const (
	// PCBMagic is the little-endian u32 at offset 0 ("PCVB" read as bytes B V C P).
	PCBMagic uint32 = 0x50435642
	// PCBVersion is the only supported format version.
	PCBVersion uint8 = 1

	// pcbHeaderSize is magic(4) + version(1) + flags(1) + focal(4) + aperture(4) + target(12)
	// + azimuth(4) + elevation(4) + radius(4) + pointCount(4) + bbox(24).
	pcbHeaderSize = 66
	// pcbPositionSize is the size of one xyz float32 position record.
	pcbPositionSize = 12
	// pcbColorSize is the size of one rgb u8 color record.
	pcbColorSize = 3
)

// FormatErrorKind classifies why a .pcb buffer was rejected.
type FormatErrorKind int

const (
	// BadMagic means the first four bytes are not PCBMagic.
	BadMagic FormatErrorKind = iota + 1
	// UnsupportedVersion means the version byte is not PCBVersion.
	UnsupportedVersion
	// Truncated means the buffer ends before the data its header declares.
	Truncated
)

// String returns the kind name.
func (k FormatErrorKind) String() string {
	switch k {
	case BadMagic:
		return "bad magic"
	case UnsupportedVersion:
		return "unsupported version"
	case Truncated:
		return "truncated"
	default:
		return fmt.Sprintf("FormatErrorKind(%d)", int(k))
	}
}

// FormatError is returned by Decode for any malformed buffer.
// Use errors.Is against ErrBadMagic, ErrUnsupportedVersion or ErrTruncated to test the kind.
type FormatError struct {
	// Kind is the failure class.
	Kind FormatErrorKind
	// Offset is the byte offset at which decoding failed.
	Offset int
	// Need is the number of bytes required at Offset (Truncated), or the expected value
	// (BadMagic, UnsupportedVersion).
	Need uint64
	// Have is the number of bytes available at Offset (Truncated), or the value found.
	Have uint64
}

// Error formats the failure with its offset and the expected/actual values.
func (e *FormatError) Error() string {
	switch e.Kind {
	case BadMagic:
		return fmt.Sprintf("pcb: bad magic 0x%08x (want 0x%08x)", e.Have, e.Need)
	case UnsupportedVersion:
		return fmt.Sprintf("pcb: unsupported version %d (want %d)", e.Have, e.Need)
	case Truncated:
		return fmt.Sprintf("pcb: truncated at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
	default:
		return fmt.Sprintf("pcb: %s", e.Kind)
	}
}

// Is matches any *FormatError of the same Kind, so sentinel comparisons ignore offsets.
func (e *FormatError) Is(target error) bool {
	var fe *FormatError
	if !errors.As(target, &fe) {
		return false
	}
	return fe.Kind == e.Kind
}

// Sentinel format errors for use with errors.Is.
var (
	ErrBadMagic           error = &FormatError{Kind: BadMagic}
	ErrUnsupportedVersion error = &FormatError{Kind: UnsupportedVersion}
	ErrTruncated          error = &FormatError{Kind: Truncated}

	// ErrInconsistentScene is returned by Encode when slice lengths disagree with PointCount.
	ErrInconsistentScene = errors.New("pcb: scene slices do not match point count")
)

// encodedSize returns the number of bytes a scene with the given point count occupies.
//
// Parameters:
//   - pointCount: number of points
//   - hasColor: whether each point carries an rgb color
//
// Returns:
//   - uint64: total encoded size in bytes
func encodedSize(pointCount uint32, hasColor bool) uint64 {
	record := uint64(pcbPositionSize)
	if hasColor {
		record += pcbColorSize
	}
	return pcbHeaderSize + uint64(pointCount)*record
}
