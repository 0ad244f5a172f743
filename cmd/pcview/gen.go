package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-pcv/common"
	"github.com/Carmen-Shannon/oxy-pcv/engine/loader"
	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

// goldenAngle spaces consecutive sphere samples in degrees.
const goldenAngle = 137.50776405003785

type genOptions struct {
	shape   string
	points  int
	radius  float32
	turns   float32
	noColor bool
}

func newGenCmd() *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen <out.pcb>",
		Short: "Write a synthetic point cloud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := generate(opts)
			if err != nil {
				return err
			}
			data, err := loader.Encode(s)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d points to %s\n", s.PointCount, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.shape, "shape", "sphere", "Shape to generate (sphere, helix)")
	cmd.Flags().IntVar(&opts.points, "points", 100000, "Number of points")
	cmd.Flags().Float32Var(&opts.radius, "radius", 5, "Shape radius")
	cmd.Flags().Float32Var(&opts.turns, "turns", 8, "Helix turns")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Omit per-point colors")
	return cmd
}

// generate builds the requested shape with its camera framing the whole cloud.
func generate(opts *genOptions) (*scene.Scene, error) {
	if opts.points < 0 {
		return nil, fmt.Errorf("point count must not be negative, got %d", opts.points)
	}
	if opts.radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", opts.radius)
	}

	var positions []float32
	switch opts.shape {
	case "sphere":
		positions = sphere(opts.points, opts.radius)
	case "helix":
		positions = helix(opts.points, opts.radius, opts.turns)
	default:
		return nil, fmt.Errorf("unknown shape %q (use sphere or helix)", opts.shape)
	}

	bbox := scene.BoundsOf(positions)
	size := bbox.Size()
	extent := max(size[0], size[1], size[2], opts.radius)

	options := []scene.SceneBuilderOption{
		scene.WithPoints(positions),
		scene.WithCamera(scene.CameraSeed{
			FocalLength: 50,
			Aperture:    41.4214,
			Target:      [3]float32(bbox.Center()),
			Azimuth:     45,
			Elevation:   30,
			Radius:      extent * 2,
		}),
	}
	if !opts.noColor {
		options = append(options, scene.WithColors(gradient(positions, bbox)))
	}
	return scene.NewScene(options...), nil
}

// sphere spreads n points evenly over a sphere surface on a Fibonacci lattice.
func sphere(n int, radius float32) []float32 {
	out := make([]float32, 0, n*3)
	for i := range n {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		phi := float32(math.Asin(y) * 180 / math.Pi)
		theta := float32(math.Mod(float64(i)*goldenAngle, 360))
		p := common.SphericalToCartesian(radius, theta, phi, mgl32.Vec3{})
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// helix winds n points around the y axis, rising four radii over all turns.
func helix(n int, radius, turns float32) []float32 {
	out := make([]float32, 0, n*3)
	height := radius * 4
	for i := range n {
		t := float32(i) / float32(max(n-1, 1))
		angle := float64(t * turns * 2 * math.Pi)
		out = append(out,
			radius*float32(math.Cos(angle)),
			t*height-height/2,
			radius*float32(math.Sin(angle)),
		)
	}
	return out
}

// gradient colors each point by its normalized position inside bbox.
func gradient(positions []float32, bbox scene.BBox) []uint8 {
	size := bbox.Size()
	out := make([]uint8, len(positions))
	for i, v := range positions {
		axis := i % 3
		t := float32(0.5)
		if size[axis] > 0 {
			t = common.Clamp((v-bbox.Min[axis])/size[axis], 0, 1)
		}
		out[i] = uint8(math.Round(float64(t) * 255))
	}
	return out
}
