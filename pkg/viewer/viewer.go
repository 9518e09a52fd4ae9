// Package viewer ties a scene, a camera and the renderer together into the
// frame loop shared by the orrery front ends.
package viewer

import (
	"fmt"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// Mesh resolution and ring geometry defaults.
const (
	DefaultSphereStacks = 16
	DefaultSphereSlices = 32

	ringRadius   = 2.45
	ringBands    = 12
	ringSegments = 96
	orbitChords  = 96
)

// Options configures a Viewer.
type Options struct {
	ScenePath string // YAML scene; empty selects Preset
	Preset    string // Built-in system name
	Seed      uint64
	MeshPath  string // Optional .glb/.gltf body mesh

	Width, Height int // Framebuffer size in pixels
	FPS           int // Camera spring rate

	SphereStacks, SphereSlices int
}

func (o *Options) defaults() {
	if o.Preset == "" {
		o.Preset = "basic"
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.SphereStacks <= 0 {
		o.SphereStacks = DefaultSphereStacks
	}
	if o.SphereSlices <= 0 {
		o.SphereSlices = DefaultSphereSlices
	}
}

// Viewer owns everything needed to draw one view of a system.
// It is not safe for concurrent use.
type Viewer struct {
	System *scene.System
	Camera *render.OrbitCamera
	View   scene.View

	ShowOrbits bool
	ShowAxes   bool
	Wireframe  bool // Draw mesh edges instead of shaded surfaces
	Paused     bool
	TimeScale  float64

	// Follow is the index of the body the camera tracks, or -1.
	Follow int

	opts     Options
	fb       *render.Framebuffer
	renderer *render.Renderer
	overlay  *render.Wireframe
	meshes   render.Meshes
	last     render.Stats
}

// New loads the scene and meshes described by opts.
func New(opts Options) (*Viewer, error) {
	opts.defaults()

	sys, view, err := LoadSystem(opts)
	if err != nil {
		return nil, err
	}
	meshes, err := LoadMeshes(opts.MeshPath, opts.SphereStacks, opts.SphereSlices)
	if err != nil {
		return nil, err
	}

	fb := render.NewFramebuffer(opts.Width, opts.Height)
	fb.SetBackground(view.Background)
	fb.Clear()

	v := &Viewer{
		System:     sys,
		View:       view,
		ShowOrbits: true,
		TimeScale:  1,
		Follow:     -1,
		opts:       opts,
		fb:         fb,
		renderer:   render.NewRenderer(fb),
		overlay:    render.NewWireframe(fb),
		meshes:     meshes,
	}
	v.resetCamera()
	return v, nil
}

// LoadSystem builds the system named by opts: the scene file if set,
// otherwise the preset.
func LoadSystem(opts Options) (*scene.System, scene.View, error) {
	if opts.ScenePath == "" {
		sys, err := scene.Preset(opts.Preset, opts.Seed)
		if err != nil {
			return nil, scene.View{}, err
		}
		return sys, scene.DefaultView(), nil
	}

	cfg, err := scene.LoadConfig(opts.ScenePath)
	if err != nil {
		return nil, scene.View{}, err
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	sys, err := cfg.Build()
	if err != nil {
		return nil, scene.View{}, fmt.Errorf("%s: %w", opts.ScenePath, err)
	}
	return sys, cfg.View(), nil
}

// LoadMeshes builds the body and ring geometry. The body is a UV sphere
// unless meshPath names a glTF file, which is fitted to unit radius.
func LoadMeshes(meshPath string, stacks, slices int) (render.Meshes, error) {
	body := models.NewUVSphere(stacks, slices)
	if meshPath != "" {
		m, err := models.LoadGLB(meshPath)
		if err != nil {
			return render.Meshes{}, fmt.Errorf("load mesh: %w", err)
		}
		body = m
	}
	return render.Meshes{
		Body: render.TriangleList(body),
		Ring: render.TriangleList(models.NewDisc(ringRadius, ringBands, ringSegments)),
	}, nil
}

func (v *Viewer) resetCamera() {
	v.Camera = render.NewOrbitCamera(v.View.Eye, v.View.Target, v.opts.FPS)
	v.Camera.SetAspect(v.aspect())
}

func (v *Viewer) aspect() float64 {
	if v.fb.Width == 0 || v.fb.Height == 0 {
		return 1
	}
	return float64(v.fb.Width) / float64(v.fb.Height)
}

// Framebuffer returns the render target.
func (v *Viewer) Framebuffer() *render.Framebuffer {
	return v.fb
}

// Stats returns the counters of the last Draw.
func (v *Viewer) Stats() render.Stats {
	return v.last
}

// Triangles returns the triangle count of one body mesh.
func (v *Viewer) Triangles() int {
	return len(v.meshes.Body) / 3
}

// Resize changes the framebuffer size and the camera aspect ratio.
func (v *Viewer) Resize(width, height int) {
	if width == v.fb.Width && height == v.fb.Height {
		return
	}
	v.fb.Resize(width, height)
	v.renderer.Resize()
	v.Camera.SetAspect(v.aspect())
}

// Reset restores the initial camera and stops following.
func (v *Viewer) Reset() {
	v.Follow = -1
	v.resetCamera()
}

// SwitchPreset replaces the system with a built-in one, keeping the seed.
func (v *Viewer) SwitchPreset(name string) error {
	sys, err := scene.Preset(name, v.opts.Seed)
	if err != nil {
		return err
	}
	v.System = sys
	v.View = scene.DefaultView()
	v.fb.SetBackground(v.View.Background)
	v.Reset()
	return nil
}

// FollowNext moves the camera focus to the next body, wrapping back to
// free orbit after the last one.
func (v *Viewer) FollowNext() {
	v.Follow++
	if v.Follow >= v.System.Len() {
		v.Follow = -1
		v.Camera.LookAt(v.View.Target)
	}
}

// FollowName returns the name of the followed body, or "".
func (v *Viewer) FollowName() string {
	if v.Follow < 0 || v.Follow >= v.System.Len() {
		return ""
	}
	return v.System.Bodies[v.Follow].Name
}

// Step advances the simulation by dt seconds (scaled by TimeScale, skipped
// while paused) and the camera by one frame.
func (v *Viewer) Step(dt float64) {
	if !v.Paused {
		v.System.Update(dt * v.TimeScale)
	}
	if v.Follow >= 0 && v.Follow < v.System.Len() {
		v.Camera.LookAt(v.System.Bodies[v.Follow].Position)
	}
	v.Camera.Update()
}

// Frame returns the per-frame render context for the current state.
func (v *Viewer) Frame() render.Frame {
	return v.Camera.Frame(v.fb.Width, v.fb.Height, v.System.Time, render.Light{Position: v.View.Light})
}

// Draw renders the current state into the framebuffer.
func (v *Viewer) Draw() render.Stats {
	f := v.Frame()
	v.fb.Clear()

	if v.Wireframe {
		v.last = render.Stats{}
		for i := range v.System.Len() {
			model, _ := v.System.Object(i)
			v.overlay.DrawTriangles(f, model, v.meshes.Body, render.ColorGreen)
		}
	} else {
		v.last = v.renderer.RenderScene(f, v.System, v.meshes)
	}

	if v.ShowOrbits {
		v.System.Orbits(func(center math3d.Vec3, radius float64) {
			v.overlay.DrawOrbit(f, center, radius, orbitChords, render.ColorOrbit)
		})
	}
	if v.ShowAxes {
		v.overlay.DrawAxes(f, 2)
	}
	return v.last
}
