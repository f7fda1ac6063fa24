package shadow

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// Params controls the depth compare bias and the PCF kernel size.
type Params struct {
	// KernelBound is the tap radius: the kernel spans
	// [-KernelBound, +KernelBound] texels on both axes.
	KernelBound int
	// Bias is the constant depth bias applied to every compare.
	Bias float32
	// SlopeBias scales the bias by surface slope when positive;
	// zero disables slope scaling.
	SlopeBias float32
}

// DefaultParams returns a 3x3 kernel with a slope-scaled bias.
func DefaultParams() Params {
	return Params{
		KernelBound: 1,
		Bias:        0.0005,
		SlopeBias:   0.0025,
	}
}

// DepthBias resolves the compare bias for a surface. With slope scaling
// enabled the bias grows as the surface turns away from the light but
// never drops below the constant term.
func (p Params) DepthBias(ndotl float32) float32 {
	if p.SlopeBias <= 0 {
		return p.Bias
	}
	b := p.SlopeBias * (1 - ndotl)
	if b < p.Bias {
		b = p.Bias
	}
	return b
}

// Occlusion runs the PCF kernel over one cascade tile of the shadow
// atlas and returns the occluded fraction in [0,1]. shadowPos is the
// [0,1] cascade-space position from Select. Tiles sit side by side
// along U, one per cascade; taps clamp to the tile so a kernel at the
// edge never reads a neighboring cascade. A shadow position outside
// [0,1] on any axis short-circuits to 0.
func Occlusion(atlas *texture.DepthMap, count, index int, shadowPos mgl32.Vec3, params Params, ndotl float32) float32 {
	if atlas == nil || index < 0 || count <= 0 || index >= count {
		return 0
	}
	if shadowPos.X() < 0 || shadowPos.X() > 1 ||
		shadowPos.Y() < 0 || shadowPos.Y() > 1 ||
		shadowPos.Z() < 0 || shadowPos.Z() > 1 {
		return 0
	}

	bound := params.KernelBound
	if bound < 0 {
		bound = 0
	}

	// Rescale U into the cascade's atlas tile.
	u := (shadowPos.X() + float32(index)) / float32(count)
	cx := int(u * float32(atlas.Width()))
	cy := int(shadowPos.Y() * float32(atlas.Height()))

	tileW := atlas.Width() / count
	minX := index * tileW
	maxX := minX + tileW - 1
	maxY := atlas.Height() - 1

	bias := params.DepthBias(ndotl)
	ref := shadowPos.Z()

	occluded := 0
	taps := 0
	for dy := -bound; dy <= bound; dy++ {
		for dx := -bound; dx <= bound; dx++ {
			x := clampInt(cx+dx, minX, maxX)
			y := clampInt(cy+dy, 0, maxY)
			if atlas.At(x, y)+bias < ref {
				occluded++
			}
			taps++
		}
	}
	return float32(occluded) / float32(taps)
}

// Factor converts an occlusion fraction and shadow intensity into the
// multiplier applied to direct sun light: 1 - occlusion*intensity.
func Factor(occlusion, intensity float32) float32 {
	return 1 - occlusion*intensity
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
