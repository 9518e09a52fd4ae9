package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orrery/pkg/math3d"
)

// Orbit camera limits.
const (
	MaxPitch    = math.Pi/2 - 0.1
	MinDistance = 0.5
)

// springAxis eases one camera coordinate toward its goal.
type springAxis struct {
	Position float64
	Goal     float64
	velocity float64
	spring   harmonica.Spring
}

func newSpringAxis(fps int, v float64) springAxis {
	return springAxis{
		Position: v,
		Goal:     v,
		// critically damped, no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (a *springAxis) update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Goal)
}

func (a *springAxis) snap() {
	a.Position, a.velocity = a.Goal, 0
}

// OrbitCamera looks at Target from a point on a sphere around it, described
// by yaw, pitch and distance. Input moves goals; Update eases the current
// values toward them.
type OrbitCamera struct {
	Target math3d.Vec3

	// Projection parameters
	FOV    float64 // Vertical field of view in radians
	Aspect float64 // Width / Height
	Near   float64
	Far    float64

	yaw, pitch, distance springAxis
	target               [3]springAxis
}

// NewOrbitCamera creates a camera at eye looking at target, updated fps
// times per second.
func NewOrbitCamera(eye, target math3d.Vec3, fps int) *OrbitCamera {
	off := eye.Sub(target)
	d := max(off.Len(), MinDistance)
	yaw := math.Atan2(off.X, off.Z)
	pitch := 0.0
	if off.Len() > 0 {
		pitch = math.Asin(math.Max(-1, math.Min(1, off.Y/off.Len())))
	}
	pitch = math.Max(-MaxPitch, math.Min(MaxPitch, pitch))

	c := &OrbitCamera{
		Target:   target,
		FOV:      math.Pi / 3,
		Aspect:   1,
		Near:     0.1,
		Far:      100,
		yaw:      newSpringAxis(fps, yaw),
		pitch:    newSpringAxis(fps, pitch),
		distance: newSpringAxis(fps, d),
	}
	c.target[0] = newSpringAxis(fps, target.X)
	c.target[1] = newSpringAxis(fps, target.Y)
	c.target[2] = newSpringAxis(fps, target.Z)
	return c
}

// Orbit rotates the goal by dyaw and dpitch radians. Pitch stops short of
// the poles.
func (c *OrbitCamera) Orbit(dyaw, dpitch float64) {
	c.yaw.Goal += dyaw
	c.pitch.Goal = math.Max(-MaxPitch, math.Min(MaxPitch, c.pitch.Goal+dpitch))
}

// Zoom multiplies the goal distance by factor.
func (c *OrbitCamera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.distance.Goal = max(c.distance.Goal*factor, MinDistance)
}

// Pan moves the goal target along the camera's right and up axes, scaled
// by the current distance so the motion feels the same at any zoom.
func (c *OrbitCamera) Pan(dx, dy float64) {
	forward := c.goalTarget().Sub(c.goalEye()).Normalize()
	right := forward.Cross(math3d.Up()).Normalize()
	up := right.Cross(forward)
	move := right.Scale(dx * c.distance.Goal).Add(up.Scale(dy * c.distance.Goal))
	for i, v := range [3]float64{move.X, move.Y, move.Z} {
		c.target[i].Goal += v
	}
}

// Update advances every spring by one frame.
func (c *OrbitCamera) Update() {
	c.yaw.update()
	c.pitch.update()
	c.distance.update()
	for i := range c.target {
		c.target[i].update()
	}
	c.distance.Position = max(c.distance.Position, MinDistance)
	c.Target = math3d.V3(c.target[0].Position, c.target[1].Position, c.target[2].Position)
}

// Snap jumps to the goals without easing.
func (c *OrbitCamera) Snap() {
	c.yaw.snap()
	c.pitch.snap()
	c.distance.snap()
	for i := range c.target {
		c.target[i].snap()
	}
	c.Target = c.goalTarget()
}

// LookAt retargets the camera, keeping its orbit angles and distance.
func (c *OrbitCamera) LookAt(target math3d.Vec3) {
	c.target[0].Goal, c.target[1].Goal, c.target[2].Goal = target.X, target.Y, target.Z
}

// Eye returns the current camera position.
func (c *OrbitCamera) Eye() math3d.Vec3 {
	return orbitPoint(c.Target, c.yaw.Position, c.pitch.Position, c.distance.Position)
}

// Distance returns the current distance to the target.
func (c *OrbitCamera) Distance() float64 {
	return c.distance.Position
}

func (c *OrbitCamera) goalTarget() math3d.Vec3 {
	return math3d.V3(c.target[0].Goal, c.target[1].Goal, c.target[2].Goal)
}

func (c *OrbitCamera) goalEye() math3d.Vec3 {
	return orbitPoint(c.goalTarget(), c.yaw.Goal, c.pitch.Goal, c.distance.Goal)
}

func orbitPoint(target math3d.Vec3, yaw, pitch, d float64) math3d.Vec3 {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	return target.Add(math3d.V3(cp*sy, sp, cp*cy).Scale(d))
}

// SetAspect sets the projection aspect ratio (width / height).
func (c *OrbitCamera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *OrbitCamera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Eye(), c.Target, math3d.Up())
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// Frame builds the per-frame context for a width x height target.
func (c *OrbitCamera) Frame(width, height int, time float64, light Light) Frame {
	return Frame{
		View:       c.ViewMatrix(),
		Projection: c.ProjectionMatrix(),
		Viewport:   math3d.Viewport(0, 0, float64(width), float64(height)),
		Time:       time,
		Light:      light,
	}
}
