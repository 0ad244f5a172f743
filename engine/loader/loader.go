package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// LoaderBackendType identifies the scene file format backend to use.
type LoaderBackendType int

const (
	// BackendTypePCB selects the binary point cloud (.pcb) backend.
	BackendTypePCB LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	sceneCache map[string]*scene.Scene

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching point cloud scenes.
// It abstracts the file format behind a backend and keeps decoded scenes keyed by path or name.
type Loader interface {
	// Load decodes a scene file and caches the result.
	// If the scene is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the scene file
	//
	// Returns:
	//   - *scene.Scene: the loaded scene
	//   - error: error if the extension is unsupported or decoding fails
	Load(path string) (*scene.Scene, error)

	// LoadReader decodes a scene from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded scene
	//   - r: the reader providing the encoded scene
	//
	// Returns:
	//   - *scene.Scene: the loaded scene
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (*scene.Scene, error)

	// Get retrieves a cached scene by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *scene.Scene: the cached scene or nil
	Get(name string) *scene.Scene

	// Evict drops a cached scene so the next Load re-reads it from disk.
	//
	// Parameters:
	//   - name: the cache key to drop
	Evict(name string)

	// Scenes returns a copy of the scene cache.
	//
	// Returns:
	//   - map[string]*scene.Scene: all cached scenes keyed by name
	Scenes() map[string]*scene.Scene
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypePCB)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		sceneCache: make(map[string]*scene.Scene),
	}

	switch backendType {
	case BackendTypePCB:
		fallthrough
	default:
		l.backend = newPCBLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*scene.Scene, error) {
	l.mu.RLock()
	if cached, ok := l.sceneCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	s, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.sceneCache[path] = s
	l.mu.Unlock()

	return s, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*scene.Scene, error) {
	l.mu.RLock()
	if cached, ok := l.sceneCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	s, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.sceneCache[name] = s
	l.mu.Unlock()

	return s, nil
}

func (l *loader) Get(name string) *scene.Scene {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sceneCache[name]
}

func (l *loader) Evict(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sceneCache, name)
}

func (l *loader) Scenes() map[string]*scene.Scene {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*scene.Scene, len(l.sceneCache))
	for k, v := range l.sceneCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects the loader backend for a path based on its file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(l.backend.Extensions(), ext) {
		return l.backend, nil
	}
	return nil, fmt.Errorf("unsupported scene format: %q", ext)
}
