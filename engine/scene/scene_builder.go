package scene

// SceneBuilderOption is a functional option for assembling a Scene with NewScene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *sceneBuilder)

// sceneBuilder collects options before NewScene freezes them into a Scene.
type sceneBuilder struct {
	scene     Scene
	boundsSet bool
	cameraSet bool
}

// NewScene assembles a Scene from the given options. When no explicit bounds are supplied
// the bounding box is computed from the points. Without WithCamera the seed is a 50mm lens
// with a 41.4214mm aperture looking at the box center from 45° azimuth and elevation.
//
// Parameters:
//   - options: functional options describing points, colors, bounds and camera
//
// Returns:
//   - *Scene: the assembled scene
func NewScene(options ...SceneBuilderOption) *Scene {
	b := &sceneBuilder{
		scene: Scene{
			Camera: CameraSeed{
				FocalLength: 50,
				Aperture:    41.4214,
				Azimuth:     45,
				Elevation:   45,
				Radius:      10,
			},
		},
	}
	for _, opt := range options {
		opt(b)
	}

	s := b.scene
	s.PointCount = uint32(len(s.Positions) / 3)
	if !b.boundsSet {
		s.BBox = BoundsOf(s.Positions)
	}
	if !b.cameraSet {
		s.Camera.Target = [3]float32(s.BBox.Center())
	}
	if s.Colors != nil {
		s.Flags |= FlagHasColor
	} else {
		s.Flags &^= FlagHasColor
	}
	return &s
}

// WithPoints sets the flat xyz position slice. Trailing values that do not form a full
// triple are dropped.
//
// Parameters:
//   - positions: flat slice of xyz triples
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPoints(positions []float32) SceneBuilderOption {
	return func(b *sceneBuilder) {
		n := len(positions) / 3 * 3
		b.scene.Positions = append([]float32(nil), positions[:n]...)
	}
}

// WithColors sets the flat rgb color slice. It must hold one triple per point.
//
// Parameters:
//   - colors: flat slice of rgb triples
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithColors(colors []uint8) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.scene.Colors = append([]uint8{}, colors...)
	}
}

// WithBounds overrides the computed bounding box.
//
// Parameters:
//   - bbox: the bounding box to store
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBounds(bbox BBox) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.scene.BBox = bbox
		b.boundsSet = true
	}
}

// WithCamera sets the authored camera seed.
//
// Parameters:
//   - seed: the initial camera pose
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(seed CameraSeed) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.scene.Camera = seed
		b.cameraSet = true
	}
}

// WithFlags sets reserved flag bits. Bit 0 is always derived from the presence of colors.
//
// Parameters:
//   - flags: the raw flag byte
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFlags(flags uint8) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.scene.Flags = flags
	}
}
