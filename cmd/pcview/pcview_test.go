package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pcv/engine/loader"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_Sphere(t *testing.T) {
	s, err := generate(&genOptions{shape: "sphere", points: 500, radius: 3})
	require.NoError(t, err)

	assert.Equal(t, uint32(500), s.PointCount)
	assert.True(t, s.HasColor())
	for i := range int(s.PointCount) {
		assert.InDelta(t, 3, mgl32.Vec3(s.Point(i)).Len(), 1e-4)
	}
	assert.True(t, s.BBox.Valid())
	assert.InDelta(t, 0, mgl32.Vec3(s.Camera.Target).Len(), 0.1)
	assert.Greater(t, s.Camera.Radius, float32(3))
}

func TestGenerate_Helix(t *testing.T) {
	s, err := generate(&genOptions{shape: "helix", points: 100, radius: 2, turns: 3, noColor: true})
	require.NoError(t, err)

	assert.Equal(t, uint32(100), s.PointCount)
	assert.False(t, s.HasColor())
	assert.InDelta(t, -4, s.Point(0)[1], 1e-5)
	assert.InDelta(t, 4, s.Point(99)[1], 1e-5)
	p := s.Point(0)
	assert.InDelta(t, 2, mgl32.Vec2{p[0], p[2]}.Len(), 1e-5)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts genOptions
	}{
		{"unknown shape", genOptions{shape: "torus", points: 10, radius: 1}},
		{"negative points", genOptions{shape: "sphere", points: -1, radius: 1}},
		{"zero radius", genOptions{shape: "sphere", points: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(&tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestGradient(t *testing.T) {
	positions := []float32{0, 5, 1, 10, 5, 3}
	colors := gradient(positions, scene.BoundsOf(positions))
	assert.Equal(t, []uint8{0, 128, 0, 255, 128, 255}, colors)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("255, 0,51")
	require.NoError(t, err)
	assert.Equal(t, [4]float64{1, 0, 0.2, 1}, c)

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c", "256,0,0", "-1,0,0"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestGenThenInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.pcb")

	out, err := execute(t, "gen", path, "--points", "64", "--radius", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 64 points")

	s, err := loader.NewLoader(loader.BackendTypePCB).Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(64), s.PointCount)

	out, err = execute(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Points:     64")
	assert.Contains(t, out, "Colors:     true")
	assert.Contains(t, out, "Flags:      0x01")
}

func TestInfo_Errors(t *testing.T) {
	_, err := execute(t, "info", filepath.Join(t.TempDir(), "missing.pcb"))
	assert.Error(t, err)

	_, err = execute(t, "info")
	assert.Error(t, err)
}

func TestView_RejectsBadFlagsBeforeOpeningWindow(t *testing.T) {
	_, err := execute(t, "view", "cloud.pcb", "--min-zoom", "5", "--max-zoom", "1")
	assert.ErrorContains(t, err, "invalid zoom bounds")

	_, err = execute(t, "cloud.pcb", "--bg", "red")
	assert.ErrorContains(t, err, "invalid color")
}
