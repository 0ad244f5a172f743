package loader

import (
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithScene is an option builder that pre-populates the scene cache.
//
// Parameters:
//   - key: the cache key for the scene
//   - s: the scene to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the scene option to a loader
func WithScene(key string, s *scene.Scene) LoaderBuilderOption {
	return func(l *loader) {
		l.sceneCache[key] = s
	}
}
