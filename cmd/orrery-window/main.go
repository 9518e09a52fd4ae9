// orrery-window - Desktop Solar System Viewer
// Shows the software-rendered system in a desktop window. Controls match the
// terminal viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/orrery/pkg/viewer"
)

var (
	scenePath = flag.String("scene", "", "Path to a YAML scene file")
	preset    = flag.String("preset", "basic", "Built-in system when no scene is given (basic, alien)")
	seed      = flag.Uint64("seed", 1, "Seed for random starting angles")
	meshPath  = flag.String("mesh", "", "Optional GLB/glTF mesh to draw bodies with")
	width     = flag.Int("width", 480, "Framebuffer width")
	height    = flag.Int("height", 270, "Framebuffer height")
	zoom      = flag.Int("zoom", 2, "Window pixels per framebuffer pixel")
	verbose   = flag.Bool("v", false, "Verbose logging")
)

const (
	tps       = 60
	orbitRate = 1.5 // rad/s while a key is held
	panRate   = 0.6
	zoomStep  = 1.15
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	v, err := viewer.New(viewer.Options{
		ScenePath: *scenePath,
		Preset:    *preset,
		Seed:      *seed,
		MeshPath:  *meshPath,
		Width:     *width,
		Height:    *height,
		FPS:       tps,
	})
	if err != nil {
		return err
	}
	slog.Info("loaded system", "name", v.System.Name, "bodies", v.System.Len())

	g := &game{v: v}
	ebiten.SetWindowTitle("orrery - " + v.System.Name)
	ebiten.SetWindowSize(*width**zoom, *height**zoom)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type game struct {
	v     *viewer.Viewer
	fbImg *ebiten.Image

	dragging   bool
	lastX      int
	lastY      int
	lastReport time.Time
}

func (g *game) Update() error {
	v := g.v
	const dt = 1.0 / tps

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Held keys
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyW), ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		v.Camera.Orbit(0, orbitRate*dt)
	case ebiten.IsKeyPressed(ebiten.KeyS), ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		v.Camera.Orbit(0, -orbitRate*dt)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyA), ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		v.Camera.Orbit(-orbitRate*dt, 0)
	case ebiten.IsKeyPressed(ebiten.KeyD), ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		v.Camera.Orbit(orbitRate*dt, 0)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyQ):
		v.Camera.Pan(-panRate*dt, 0)
	case ebiten.IsKeyPressed(ebiten.KeyE):
		v.Camera.Pan(panRate*dt, 0)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyR):
		v.Camera.Pan(0, panRate*dt)
	case ebiten.IsKeyPressed(ebiten.KeyF):
		v.Camera.Pan(0, -panRate*dt)
	}

	// Toggles
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		v.Camera.Zoom(1 / zoomStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		v.Camera.Zoom(zoomStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.FollowNext()
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.switchPreset("basic")
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.switchPreset("alien")
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		v.TimeScale = math.Max(v.TimeScale/2, 1.0/16)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		v.TimeScale = math.Min(v.TimeScale*2, 64)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.Paused = !v.Paused
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		v.ShowOrbits = !v.ShowOrbits
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		v.Wireframe = !v.Wireframe
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.ShowAxes = !v.ShowAxes
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.snapshot()
	}

	// Mouse drag orbits, wheel zooms
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			v.Camera.Orbit(float64(x-g.lastX)*0.01, float64(y-g.lastY)*0.01)
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.Camera.Zoom(math.Pow(zoomStep, -wy))
	}

	v.Step(dt)

	if time.Since(g.lastReport) >= 5*time.Second {
		st := v.Stats()
		slog.Debug("frame",
			"tps", ebiten.ActualTPS(),
			"fps", ebiten.ActualFPS(),
			"triangles", st.Triangles,
			"culled", st.Culled,
			"written", st.Written,
		)
		g.lastReport = time.Now()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.v.Framebuffer()
	g.v.Draw()

	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width || g.fbImg.Bounds().Dy() != fb.Height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
	}

	g.fbImg.WritePixels(fb.ToImage().Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.v.Framebuffer()
	return fb.Width, fb.Height
}

func (g *game) switchPreset(name string) {
	if err := g.v.SwitchPreset(name); err != nil {
		slog.Error("switch preset", "name", name, "err", err)
		return
	}
	ebiten.SetWindowTitle("orrery - " + name)
}

func (g *game) snapshot() {
	path := fmt.Sprintf("orrery-%s.png", time.Now().Format("20060102-150405"))
	if err := g.v.Framebuffer().SavePNGScaled(path, *zoom); err != nil {
		slog.Error("snapshot", "err", err)
		return
	}
	slog.Info("saved snapshot", "path", path)
}
