// Command pcview views, inspects and generates .pcb point cloud files.
//
// Controls:
//
//	Left drag   - Orbit around the target
//	Right drag  - Pan within the scene bounds
//	Scroll      - Zoom in/out
//	Esc         - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd())
	stop()
	if err != nil {
		os.Exit(1)
	}
}
