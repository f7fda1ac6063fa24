// Package framebuffer provides the CPU render target frames are shaded into.
package framebuffer

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// Framebuffer is a linear RGBA float color buffer. Row 0 is the top row.
type Framebuffer struct {
	width  int
	height int
	pix    []float32
}

// New creates a framebuffer with the specified dimensions.
func New(width, height int) *Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*4),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Resize reallocates the buffer if the dimensions have changed. The
// contents after a resize are undefined until the next Clear.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.width && height == fb.height {
		return
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	fb.width = width
	fb.height = height
	fb.pix = make([]float32, width*height*4)
}

// Clear fills the buffer with the specified color.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	for i := 0; i < len(fb.pix); i += 4 {
		fb.pix[i+0] = r
		fb.pix[i+1] = g
		fb.pix[i+2] = b
		fb.pix[i+3] = a
	}
}

// SetPixel stores a color. Writes outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c mgl32.Vec4) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := (y*fb.width + x) * 4
	fb.pix[i+0] = c.X()
	fb.pix[i+1] = c.Y()
	fb.pix[i+2] = c.Z()
	fb.pix[i+3] = c.W()
}

// At returns the color at a pixel, clamping coordinates to the buffer.
func (fb *Framebuffer) At(x, y int) mgl32.Vec4 {
	if x < 0 {
		x = 0
	}
	if x >= fb.width {
		x = fb.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= fb.height {
		y = fb.height - 1
	}
	i := (y*fb.width + x) * 4
	return mgl32.Vec4{fb.pix[i+0], fb.pix[i+1], fb.pix[i+2], fb.pix[i+3]}
}

// Pixels returns the backing slice, RGBA row-major from the top row.
func (fb *Framebuffer) Pixels() []float32 {
	return fb.pix
}

// Bytes converts the buffer to 8-bit RGBA, clamping each channel to [0, 1].
// Row 0 of the output is the top row.
func (fb *Framebuffer) Bytes() []byte {
	out := make([]byte, fb.width*fb.height*4)
	for i, v := range fb.pix {
		out[i] = quantize(v)
	}
	return out
}

// RGBA converts the buffer to an 8-bit image.
func (fb *Framebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			i := (y*fb.width + x) * 4
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(fb.pix[i+0]),
				G: quantize(fb.pix[i+1]),
				B: quantize(fb.pix[i+2]),
				A: quantize(fb.pix[i+3]),
			})
		}
	}
	return img
}

// WritePNG encodes the buffer as a PNG image.
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.RGBA())
}

func quantize(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
