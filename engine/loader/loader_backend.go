package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// loaderBackend defines the generic interface for decoding scenes from files or streams.
// Concrete implementations (e.g., pcbLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load decodes the scene stored at the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *scene.Scene: the decoded scene
	//   - error: error if reading or decoding fails
	Load(path string) (*scene.Scene, error)

	// LoadReader decodes a scene from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing the encoded scene
	//
	// Returns:
	//   - *scene.Scene: the decoded scene
	//   - error: error if reading or decoding fails
	LoadReader(r io.Reader) (*scene.Scene, error)

	// Extensions lists the lower-case file extensions this backend accepts.
	//
	// Returns:
	//   - []string: extensions including the leading dot
	Extensions() []string
}
