package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-pcv/engine/loader"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.pcb>",
		Short: "Display point cloud information",
		Long:  "Display the header of a .pcb file: point count, colors, bounding box and the authored camera.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInfo(out io.Writer, path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	s, err := loader.NewLoader(loader.BackendTypePCB).Load(path)
	if err != nil {
		return err
	}

	size, center := s.BBox.Size(), s.BBox.Center()
	cam := s.Camera

	fmt.Fprintf(out, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(out, "Size:       %.2f KB\n", float64(stat.Size())/1024)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Points:     %d\n", s.PointCount)
	fmt.Fprintf(out, "Colors:     %t\n", s.HasColor())
	fmt.Fprintf(out, "Flags:      0x%02x\n", s.Flags)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Bounds Min: (%.3f, %.3f, %.3f)\n", s.BBox.Min[0], s.BBox.Min[1], s.BBox.Min[2])
	fmt.Fprintf(out, "Bounds Max: (%.3f, %.3f, %.3f)\n", s.BBox.Max[0], s.BBox.Max[1], s.BBox.Max[2])
	fmt.Fprintf(out, "Dimensions: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	fmt.Fprintf(out, "Center:     (%.3f, %.3f, %.3f)\n", center[0], center[1], center[2])
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Lens:       %.2fmm focal, %.4fmm aperture\n", cam.FocalLength, cam.Aperture)
	fmt.Fprintf(out, "Target:     (%.3f, %.3f, %.3f)\n", cam.Target[0], cam.Target[1], cam.Target[2])
	fmt.Fprintf(out, "Orbit:      azimuth %.2f°, elevation %.2f°, radius %.3f\n", cam.Azimuth, cam.Elevation, cam.Radius)
	return nil
}
