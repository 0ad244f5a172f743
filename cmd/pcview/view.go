package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-pcv/engine"
	"github.com/Carmen-Shannon/oxy-pcv/engine/camera"
	"github.com/Carmen-Shannon/oxy-pcv/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pcv/engine/window"
)

// viewOptions holds the flags shared by the root command and `pcview view`.
type viewOptions struct {
	width      int
	height     int
	pointSize  float32
	minZoom    float32
	maxZoom    float32
	background string
	uncapped   bool
	noMSAA     bool
	software   bool
	profile    bool
}

func newRootCmd() *cobra.Command {
	opts := &viewOptions{}
	root := &cobra.Command{
		Use:   "pcview <file.pcb>",
		Short: "Point cloud viewer",
		Long: `pcview - Point Cloud Viewer

Open a .pcb point cloud in a window, print its header or generate a demo cloud.

Controls:
  Left drag   - Orbit around the target
  Right drag  - Pan within the scene bounds
  Scroll      - Zoom in/out
  Esc         - Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(cmd.Context(), args[0], opts)
		},
	}
	root.SilenceUsage = true
	bindViewFlags(root, opts)

	viewOpts := &viewOptions{}
	viewCmd := &cobra.Command{
		Use:   "view <file.pcb>",
		Short: "Open a point cloud in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args[0], viewOpts)
		},
	}
	bindViewFlags(viewCmd, viewOpts)

	root.AddCommand(viewCmd, newInfoCmd(), newGenCmd())
	return root
}

func bindViewFlags(cmd *cobra.Command, opts *viewOptions) {
	cmd.Flags().IntVar(&opts.width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&opts.height, "height", 720, "Window height")
	cmd.Flags().Float32Var(&opts.pointSize, "point-size", 1, "Point diameter in screen coordinates")
	cmd.Flags().Float32Var(&opts.minZoom, "min-zoom", 0.1, "Closest orbit radius")
	cmd.Flags().Float32Var(&opts.maxZoom, "max-zoom", 100, "Farthest orbit radius")
	cmd.Flags().StringVar(&opts.background, "bg", "0,0,0", "Background color (R,G,B)")
	cmd.Flags().BoolVar(&opts.uncapped, "uncapped", false, "Present without waiting for vsync")
	cmd.Flags().BoolVar(&opts.noMSAA, "no-msaa", false, "Disable 4x multisampling")
	cmd.Flags().BoolVar(&opts.software, "software", false, "Force the fallback (software) GPU adapter")
	cmd.Flags().BoolVar(&opts.profile, "profile", false, "Log draw rate and memory statistics")
}

// runView opens the window and blocks until it closes or ctx is cancelled.
func runView(ctx context.Context, path string, opts *viewOptions) error {
	if !(opts.minZoom > 0 && opts.minZoom < opts.maxZoom) {
		return fmt.Errorf("invalid zoom bounds: need 0 < min-zoom < max-zoom, got %v and %v", opts.minZoom, opts.maxZoom)
	}
	bg, err := parseColor(opts.background)
	if err != nil {
		return err
	}

	presentMode := renderer.PresentModeVSync
	if opts.uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAA4x
	if opts.noMSAA {
		msaa = renderer.MSAAOff
	}

	eng := engine.NewEngine(
		engine.WithProfiling(opts.profile),
		engine.WithPointSize(opts.pointSize),
		engine.WithWindowOptions(
			window.WithTitle("pcview - "+filepath.Base(path)),
			window.WithSize(opts.width, opts.height),
		),
		engine.WithRendererOptions(
			renderer.WithPresentMode(presentMode),
			renderer.WithMSAA(msaa),
			renderer.WithClearColor(bg),
			renderer.WithForceSoftwareRenderer(opts.software),
		),
		engine.WithCameraOptions(camera.WithZoomBounds(opts.minZoom, opts.maxZoom)),
	)

	if err := eng.LoadFile(path); err != nil {
		eng.Quit()
		eng.Run()
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Println("[pcview] interrupted, closing window")
			eng.Quit()
		case <-done:
		}
	}()

	eng.Run()
	return nil
}

// parseColor parses an "R,G,B" triple of 0-255 integers into an opaque clear color.
func parseColor(s string) ([4]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [4]float64{}, fmt.Errorf("invalid color %q: want R,G,B", s)
	}
	rgba := [4]float64{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return [4]float64{}, fmt.Errorf("invalid color %q: components must be 0-255", s)
		}
		rgba[i] = float64(v) / 255
	}
	return rgba, nil
}
