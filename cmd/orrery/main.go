// orrery - Terminal Solar System Viewer
// Watch a procedurally shaded planetary system orbit in your terminal.
//
// Controls:
//
//	Mouse drag  - Orbit the camera
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E, R/F    - Pan left/right, up/down
//	+/-         - Adjust zoom
//	Tab         - Follow the next body
//	1/2         - Switch to the basic/alien system
//	[/]         - Slow down/speed up time
//	Space       - Pause
//	O           - Toggle orbit lines
//	X           - Toggle wireframe mode (x-ray)
//	G           - Toggle axes
//	P           - Save a PNG snapshot
//	Home        - Reset the camera
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orrery/pkg/viewer"
)

var (
	scenePath = flag.String("scene", "", "Path to a YAML scene file")
	preset    = flag.String("preset", "basic", "Built-in system when no scene is given (basic, alien)")
	seed      = flag.Uint64("seed", 1, "Seed for random starting angles")
	meshPath  = flag.String("mesh", "", "Optional GLB/glTF mesh to draw bodies with")
	targetFPS = flag.Int("fps", 30, "Target FPS")
	snapScale = flag.Int("snap-scale", 4, "Upscale factor for PNG snapshots")
	verbose   = flag.Bool("v", false, "Verbose logging")
)

const (
	orbitStep = 0.08
	panStep   = 0.05
	zoomStep  = 1.15
	dragScale = 0.02
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orrery - Terminal Solar System Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orrery [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit the camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E, R/F    - Pan\n")
		fmt.Fprintf(os.Stderr, "  Tab         - Follow next body\n")
		fmt.Fprintf(os.Stderr, "  1/2         - Basic/alien system\n")
		fmt.Fprintf(os.Stderr, "  [/]         - Time scale\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause\n")
		fmt.Fprintf(os.Stderr, "  O/X/G       - Orbits, wireframe, axes\n")
		fmt.Fprintf(os.Stderr, "  P           - PNG snapshot\n")
		fmt.Fprintf(os.Stderr, "  Home        - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
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

// HUD renders an overlay with system info and view toggles.
type HUD struct {
	ShowHUD   bool
	status    string
	statusAt  time.Time
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{ShowHUD: true, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Notify shows msg on the bottom row for a few seconds.
func (h *HUD) Notify(msg string) {
	h.status = msg
	h.statusAt = time.Now()
}

// Render draws the HUD over the top and bottom rows of scr.
func (h *HUD) Render(scr uv.Screen, width, height int, v *viewer.Viewer) {
	const (
		reset    = "\x1b[0m"
		bold     = "\x1b[1m"
		dim      = "\x1b[2m"
		bgBlack  = "\x1b[40m"
		fgWhite  = "\x1b[97m"
		fgGreen  = "\x1b[92m"
		fgYellow = "\x1b[93m"
		fgCyan   = "\x1b[96m"
	)

	if h.status != "" && time.Since(h.statusAt) < 3*time.Second {
		msg := fmt.Sprintf("%s%s%s %s %s", bgBlack, bold, fgYellow, h.status, reset)
		draw(scr, msg, max((width-len(h.status)-2)/2, 0), height-1, width)
		return
	}

	if !h.ShowHUD {
		return
	}

	// Top left: FPS
	draw(scr, fmt.Sprintf("%s%s %.0f FPS %s", bgBlack, fgGreen, h.fps, reset), 0, 0, 10)

	// Top middle: system name and followed body
	title := v.System.Name
	if name := v.FollowName(); name != "" {
		title += " > " + name
	}
	draw(scr, fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, title, reset),
		max((width-len(title)-2)/2, 0), 0, len(title)+2)

	// Top right: triangle counts
	st := v.Stats()
	tris := fmt.Sprintf(" %d tris %d culled ", st.Triangles, st.Culled)
	draw(scr, fmt.Sprintf("%s%s%s%s%s", bgBlack, fgCyan, bold, tris, reset),
		max(width-len(tris), 0), 0, len(tris))

	// Bottom: toggles and clock
	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	clock := fmt.Sprintf("t=%.0fs x%g", v.System.Time, v.TimeScale)
	if v.Paused {
		clock += " paused"
	}
	modes := fmt.Sprintf("%s%s %s Orbits  %s X-Ray (wireframe)  %s Axes %s",
		bgBlack, fgWhite, check(v.ShowOrbits), check(v.Wireframe), check(v.ShowAxes), reset)
	draw(scr, modes, 0, height-1, width)
	draw(scr, fmt.Sprintf("%s%s%s %s %s", bgBlack, dim, fgYellow, clock, reset),
		max(width-len(clock)-2, 0), height-1, len(clock)+2)
}

func draw(scr uv.Screen, s string, x, y, w int) {
	uv.NewStyledString(s).Draw(scr, uv.Rect(x, y, w, 1))
}

func run() error {
	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	v, err := viewer.New(viewer.Options{
		ScenePath: *scenePath,
		Preset:    *preset,
		Seed:      *seed,
		MeshPath:  *meshPath,
		Width:     width,
		Height:    height * 2,
		FPS:       *targetFPS,
	})
	if err != nil {
		return err
	}
	slog.Info("loaded system",
		"name", v.System.Name,
		"bodies", v.System.Len(),
		"triangles", v.Triangles(),
	)

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	// Context for clean shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hud := NewHUD()
	var (
		mouseDown              bool
		lastMouseX, lastMouseY int
	)

	// handle applies one input event and reports whether to quit.
	handle := func(ev uv.Event) bool {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			v.Resize(width, height*2)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c"):
				return true
			case ev.MatchString("w", "up"):
				v.Camera.Orbit(0, orbitStep)
			case ev.MatchString("s", "down"):
				v.Camera.Orbit(0, -orbitStep)
			case ev.MatchString("a", "left"):
				v.Camera.Orbit(-orbitStep, 0)
			case ev.MatchString("d", "right"):
				v.Camera.Orbit(orbitStep, 0)
			case ev.MatchString("q"):
				v.Camera.Pan(-panStep, 0)
			case ev.MatchString("e"):
				v.Camera.Pan(panStep, 0)
			case ev.MatchString("r"):
				v.Camera.Pan(0, panStep)
			case ev.MatchString("f"):
				v.Camera.Pan(0, -panStep)
			case ev.MatchString("+", "="):
				v.Camera.Zoom(1 / zoomStep)
			case ev.MatchString("-", "_"):
				v.Camera.Zoom(zoomStep)
			case ev.MatchString("tab"):
				v.FollowNext()
			case ev.MatchString("1"):
				switchPreset(v, hud, "basic")
			case ev.MatchString("2"):
				switchPreset(v, hud, "alien")
			case ev.MatchString("["):
				v.TimeScale = math.Max(v.TimeScale/2, 1.0/16)
			case ev.MatchString("]"):
				v.TimeScale = math.Min(v.TimeScale*2, 64)
			case ev.MatchString("space"):
				v.Paused = !v.Paused
			case ev.MatchString("o"):
				v.ShowOrbits = !v.ShowOrbits
			case ev.MatchString("x"):
				v.Wireframe = !v.Wireframe
			case ev.MatchString("g"):
				v.ShowAxes = !v.ShowAxes
			case ev.MatchString("p"):
				snapshot(v, hud)
			case ev.MatchString("home"):
				v.Reset()
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				hud.ShowHUD = !hud.ShowHUD
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastMouseX, lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				dx := ev.X - lastMouseX
				dy := ev.Y - lastMouseY
				v.Camera.Orbit(float64(dx)*dragScale, float64(dy)*dragScale)
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				v.Camera.Zoom(1 / zoomStep)
			case uv.MouseWheelDown:
				v.Camera.Zoom(zoomStep)
			}
		}
		return false
	}

	ticker := time.NewTicker(time.Second / time.Duration(max(*targetFPS, 1)))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			if handle(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame).Seconds()
			lastFrame = now
			if dt > 0.1 {
				dt = 0.1
			}

			v.Step(dt)
			v.Draw()

			v.Framebuffer().Draw(term, term.Bounds())
			hud.UpdateFPS()
			hud.Render(term, width, height, v)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

func switchPreset(v *viewer.Viewer, hud *HUD, name string) {
	if err := v.SwitchPreset(name); err != nil {
		hud.Notify(err.Error())
		return
	}
	hud.Notify(fmt.Sprintf("%s system (%d bodies)", name, v.System.Len()))
}

func snapshot(v *viewer.Viewer, hud *HUD) {
	path := fmt.Sprintf("orrery-%s.png", time.Now().Format("20060102-150405"))
	if err := v.Framebuffer().SavePNGScaled(path, *snapScale); err != nil {
		hud.Notify("snapshot failed: " + err.Error())
		return
	}
	hud.Notify("saved " + path)
}
