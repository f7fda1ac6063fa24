// Package texture provides CPU-resident textures: RGBA color maps with
// mip chains and filtered sampling, single-channel depth maps, and TGA
// decoding for the asset formats the pipeline consumes.
package texture

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Wrap selects how sample coordinates outside [0,1] are resolved.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Filter selects the minification/magnification filter for Sample.
type Filter int

const (
	FilterBilinear Filter = iota
	FilterNearest
)

// Texture2D is a CPU-resident RGBA texture with an optional mip chain.
// Texels are linear float32 values. Level 0 is full resolution; row 0
// corresponds to v=0.
type Texture2D struct {
	Wrap   Wrap
	Filter Filter
	levels []mipLevel
}

type mipLevel struct {
	width  int
	height int
	pix    []float32 // RGBA, row-major, 4 floats per texel
}

// New creates an empty texture of the given size with all texels zero.
func New(width, height int) *Texture2D {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Texture2D{
		levels: []mipLevel{{
			width:  width,
			height: height,
			pix:    make([]float32, width*height*4),
		}},
	}
}

// Solid creates a 1x1 texture holding a single color. Useful as the
// fallback for unbound material maps.
func Solid(c mgl32.Vec4) *Texture2D {
	t := New(1, 1)
	t.SetTexel(0, 0, c)
	return t
}

// FromImage converts a decoded image into a texture. Channel values are
// normalized to [0,1].
func FromImage(img image.Image) *Texture2D {
	rgba := ImageToRGBA(img)
	b := rgba.Bounds()
	t := New(b.Dx(), b.Dy())
	lvl := &t.levels[0]
	for y := 0; y < lvl.height; y++ {
		for x := 0; x < lvl.width; x++ {
			i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			o := (y*lvl.width + x) * 4
			lvl.pix[o+0] = float32(rgba.Pix[i+0]) / 255
			lvl.pix[o+1] = float32(rgba.Pix[i+1]) / 255
			lvl.pix[o+2] = float32(rgba.Pix[i+2]) / 255
			lvl.pix[o+3] = float32(rgba.Pix[i+3]) / 255
		}
	}
	return t
}

// Width returns the level-0 width in texels.
func (t *Texture2D) Width() int { return t.levels[0].width }

// Height returns the level-0 height in texels.
func (t *Texture2D) Height() int { return t.levels[0].height }

// Levels returns the number of mip levels, at least 1.
func (t *Texture2D) Levels() int { return len(t.levels) }

// SetTexel writes a level-0 texel. Out-of-range coordinates are ignored.
func (t *Texture2D) SetTexel(x, y int, c mgl32.Vec4) {
	lvl := &t.levels[0]
	if x < 0 || y < 0 || x >= lvl.width || y >= lvl.height {
		return
	}
	o := (y*lvl.width + x) * 4
	lvl.pix[o+0] = c[0]
	lvl.pix[o+1] = c[1]
	lvl.pix[o+2] = c[2]
	lvl.pix[o+3] = c[3]
}

// Texel fetches a single texel from the given mip level, applying the
// texture's wrap mode to out-of-range coordinates.
func (t *Texture2D) Texel(level, x, y int) mgl32.Vec4 {
	if level < 0 {
		level = 0
	}
	if level >= len(t.levels) {
		level = len(t.levels) - 1
	}
	lvl := &t.levels[level]
	x = t.wrapCoord(x, lvl.width)
	y = t.wrapCoord(y, lvl.height)
	o := (y*lvl.width + x) * 4
	return mgl32.Vec4{lvl.pix[o+0], lvl.pix[o+1], lvl.pix[o+2], lvl.pix[o+3]}
}

func (t *Texture2D) wrapCoord(c, n int) int {
	switch t.Wrap {
	case WrapClamp:
		if c < 0 {
			return 0
		}
		if c >= n {
			return n - 1
		}
		return c
	default:
		c %= n
		if c < 0 {
			c += n
		}
		return c
	}
}

// GenerateMips rebuilds the mip chain from level 0 with a box filter,
// halving each dimension down to 1x1.
func (t *Texture2D) GenerateMips() {
	t.levels = t.levels[:1]
	for {
		prev := &t.levels[len(t.levels)-1]
		if prev.width == 1 && prev.height == 1 {
			return
		}
		w := prev.width / 2
		h := prev.height / 2
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		next := mipLevel{width: w, height: h, pix: make([]float32, w*h*4)}
		for y := 0; y < h; y++ {
			sy0 := y * 2
			sy1 := sy0 + 1
			if sy1 >= prev.height {
				sy1 = prev.height - 1
			}
			for x := 0; x < w; x++ {
				sx0 := x * 2
				sx1 := sx0 + 1
				if sx1 >= prev.width {
					sx1 = prev.width - 1
				}
				o := (y*w + x) * 4
				for c := 0; c < 4; c++ {
					sum := prev.pix[(sy0*prev.width+sx0)*4+c] +
						prev.pix[(sy0*prev.width+sx1)*4+c] +
						prev.pix[(sy1*prev.width+sx0)*4+c] +
						prev.pix[(sy1*prev.width+sx1)*4+c]
					next.pix[o+c] = sum / 4
				}
			}
		}
		t.levels = append(t.levels, next)
	}
}

// Sample reads the texture at (u,v) on level 0 using the configured
// filter. Texel centers sit at (x+0.5)/width.
func (t *Texture2D) Sample(u, v float32) mgl32.Vec4 {
	return t.sampleLevel(0, u, v)
}

// SampleLevel reads the texture at (u,v) with an explicit level of
// detail, blending linearly between the two nearest mip levels. The lod
// is clamped to the available chain.
func (t *Texture2D) SampleLevel(u, v, lod float32) mgl32.Vec4 {
	if lod <= 0 || len(t.levels) == 1 {
		return t.sampleLevel(0, u, v)
	}
	maxLod := float32(len(t.levels) - 1)
	if lod >= maxLod {
		return t.sampleLevel(len(t.levels)-1, u, v)
	}
	lo := int(lod)
	frac := lod - float32(lo)
	a := t.sampleLevel(lo, u, v)
	b := t.sampleLevel(lo+1, u, v)
	return a.Mul(1 - frac).Add(b.Mul(frac))
}

func (t *Texture2D) sampleLevel(level int, u, v float32) mgl32.Vec4 {
	lvl := &t.levels[level]
	if t.Filter == FilterNearest {
		x := int(u * float32(lvl.width))
		y := int(v * float32(lvl.height))
		return t.Texel(level, x, y)
	}

	// Bilinear with half-texel centering.
	fx := u*float32(lvl.width) - 0.5
	fy := v*float32(lvl.height) - 0.5
	x0 := floorInt(fx)
	y0 := floorInt(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.Texel(level, x0, y0)
	c10 := t.Texel(level, x0+1, y0)
	c01 := t.Texel(level, x0, y0+1)
	c11 := t.Texel(level, x0+1, y0+1)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bot := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bot.Mul(ty))
}

func floorInt(f float32) int {
	i := int(f)
	if f < 0 && f != float32(i) {
		i--
	}
	return i
}
