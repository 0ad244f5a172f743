package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// pcbLoaderBackendImpl is the loaderBackend for the binary point cloud format.
type pcbLoaderBackendImpl struct{}

var _ loaderBackend = &pcbLoaderBackendImpl{}

// newPCBLoaderBackend creates a new .pcb loader backend.
//
// Returns:
//   - loaderBackend: the loader backend for .pcb files
func newPCBLoaderBackend() loaderBackend {
	return &pcbLoaderBackendImpl{}
}

func (b *pcbLoaderBackendImpl) Load(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(data)
}

func (b *pcbLoaderBackendImpl) LoadReader(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return Decode(data)
}

func (b *pcbLoaderBackendImpl) Extensions() []string {
	return []string{".pcb"}
}
