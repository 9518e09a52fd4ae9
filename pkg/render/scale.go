package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Upscale resizes img to width x height with nearest-neighbour sampling,
// keeping the hard pixel edges of the software rasterizer.
func Upscale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNGScaled writes the framebuffer to path, enlarged by an integer
// factor. Factors below 2 write the framebuffer as is.
func (fb *Framebuffer) SavePNGScaled(path string, factor int) error {
	if factor < 2 {
		return fb.SavePNG(path)
	}
	return savePNG(path, Upscale(fb.ToImage(), fb.Width*factor, fb.Height*factor))
}
