// orrery-render - Headless Solar System Renderer
// Renders a system to a numbered PNG sequence without a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/viewer"
)

var (
	scenePath = flag.String("scene", "", "Path to a YAML scene file")
	preset    = flag.String("preset", "basic", "Built-in system when no scene is given (basic, alien)")
	seed      = flag.Uint64("seed", 1, "Seed for random starting angles")
	meshPath  = flag.String("mesh", "", "Optional GLB/glTF mesh to draw bodies with")
	frames    = flag.Int("frames", 120, "Number of frames to render")
	dt        = flag.Float64("dt", 1.0/30, "Simulated seconds per frame")
	width     = flag.Int("width", 320, "Framebuffer width")
	height    = flag.Int("height", 240, "Framebuffer height")
	scale     = flag.Int("scale", 2, "Integer upscale factor for saved frames")
	outDir    = flag.String("out", "frames", "Output directory")
	orbits    = flag.Bool("orbits", true, "Draw orbit lines")
	dump      = flag.Bool("dump", false, "Print the system as a YAML scene and exit")
	verbose   = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orrery-render - Headless Solar System Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orrery-render [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	v, err := viewer.New(viewer.Options{
		ScenePath: *scenePath,
		Preset:    *preset,
		Seed:      *seed,
		MeshPath:  *meshPath,
		Width:     *width,
		Height:    *height,
	})
	if err != nil {
		return err
	}
	v.ShowOrbits = *orbits
	v.Camera.Snap()

	if *dump {
		data, err := scene.ConfigOf(v.System, v.View).Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if *frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", *frames)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	slog.Info("rendering",
		"system", v.System.Name,
		"bodies", v.System.Len(),
		"frames", *frames,
		"size", fmt.Sprintf("%dx%d", *width**scale, *height**scale),
		"out", *outDir,
	)

	start := time.Now()
	bar := progressbar.Default(int64(*frames), "rendering")
	total, err := renderFrames(ctx, v, *frames, *dt, *outDir, *scale, bar)
	if err != nil {
		return err
	}
	if err := bar.Finish(); err != nil {
		slog.Debug("progress", "err", err)
	}

	slog.Info("done",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"triangles", total.Triangles,
		"culled", total.Culled,
		"fragments", total.Fragments,
		"written", total.Written,
	)
	return nil
}

// progress is the part of the progress bar the frame loop drives.
type progress interface {
	Add(n int) error
}

// renderFrames draws n frames dt seconds apart and saves them as numbered
// PNGs in dir. Progress errors only affect the display and are logged.
func renderFrames(ctx context.Context, v *viewer.Viewer, n int, dt float64, dir string, scale int, bar progress) (render.Stats, error) {
	var total render.Stats
	for i := range n {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		total.Add(v.Draw())
		path := filepath.Join(dir, fmt.Sprintf("frame%04d.png", i))
		if err := v.Framebuffer().SavePNGScaled(path, scale); err != nil {
			return total, err
		}
		slog.Debug("frame", "path", path, "written", v.Stats().Written, "culled", v.Stats().Culled)

		v.Step(dt)
		if err := bar.Add(1); err != nil {
			slog.Debug("progress", "err", err)
		}
	}
	return total, nil
}
