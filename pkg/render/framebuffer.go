// Package render implements the orrery software pipeline: vertex transform,
// triangle rasterization, per-fragment shading and a depth-tested frame
// buffer, plus the camera and presentation helpers around it.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Framebuffer owns the color and depth storage for one frame.
// Depth follows the viewport convention: smaller is closer.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data

	depth      []float64
	background color.RGBA
	writes     int
}

// NewFramebuffer creates a cleared framebuffer with a black background.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{background: ColorBlack}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates storage for new dimensions and clears it.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = max(width, 0)
	fb.Height = max(height, 0)
	fb.Pixels = make([]color.RGBA, fb.Width*fb.Height)
	fb.depth = make([]float64, fb.Width*fb.Height)
	fb.Clear()
}

// SetBackground sets the color used by every later Clear.
func (fb *Framebuffer) SetBackground(c math3d.Vec3) {
	fb.background = ToRGBA(c)
}

// Background returns the current clear color.
func (fb *Framebuffer) Background() color.RGBA {
	return fb.background
}

// Clear resets every pixel to the background color and every depth cell to
// +Inf.
func (fb *Framebuffer) Clear() {
	n := len(fb.Pixels)
	fb.writes = 0
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.Pixels[0] = fb.background
	fb.depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
		copy(fb.depth[i:], fb.depth[:i])
	}
}

// Point writes c at (x, y) if depth is strictly less than the stored depth.
// Out-of-range coordinates are ignored. Each channel is clamped to [0, 1]
// and quantized to 8 bits. Point reports whether the pixel was written.
func (fb *Framebuffer) Point(x, y int, depth float64, c math3d.Vec3) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	idx := y*fb.Width + x
	if !(depth < fb.depth[idx]) {
		return false
	}
	fb.depth[idx] = depth
	fb.Pixels[idx] = ToRGBA(c)
	fb.writes++
	return true
}

// Depth returns the stored depth at (x, y), or +Inf if out of bounds.
func (fb *Framebuffer) Depth(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math.Inf(1)
	}
	return fb.depth[y*fb.Width+x]
}

// Writes returns the number of depth-test passes since the last Clear.
func (fb *Framebuffer) Writes() int {
	return fb.writes
}

// ToRGBA clamps c to [0, 1] and quantizes it to an opaque 8-bit color.
func ToRGBA(c math3d.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.X * 255),
		G: uint8(c.Y * 255),
		B: uint8(c.Z * 255),
		A: 255,
	}
}

// SetPixel sets a pixel at (x, y) without touching depth. Used for overlays.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage copies the color buffer into a standard image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		o := i * 4
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = p.R, p.G, p.B, p.A
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return savePNG(path, fb.ToImage())
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
