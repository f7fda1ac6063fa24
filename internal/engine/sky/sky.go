// Package sky provides the image-based ambient term: a six-face cube
// map sampled along the reflected view direction with a mip level and
// weight driven by surface shininess.
package sky

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// Face order matches the sky asset naming convention.
const (
	FaceRight = iota // +X
	FaceLeft         // -X
	FaceUp           // +Y
	FaceDown         // -Y
	FaceBack         // +Z
	FaceFront        // -Z
	faceCount
)

// FaceSuffixes are the file name suffixes of the six sky faces, in
// face-index order.
var FaceSuffixes = [faceCount]string{"_rt", "_lf", "_up", "_dn", "_bk", "_ft"}

// Reflection constants: rough surfaces read a deep blurry mip with a
// near-zero weight, smooth surfaces a sharp mip at full weight.
const (
	mipRough     = 5.0
	mipSmooth    = 1.5
	weightRough  = 0.001
	weightSmooth = 0.25
)

// CubeMap is a CPU-resident six-face environment map with mip chains.
type CubeMap struct {
	faces [faceCount]*texture.Texture2D
	size  int
}

// NewCubeMap assembles a cube map from six equally sized square faces
// and builds their mip chains.
func NewCubeMap(faces [6]*texture.Texture2D) (*CubeMap, error) {
	c := &CubeMap{}
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("sky face %d missing", i)
		}
		if f.Width() != f.Height() {
			return nil, fmt.Errorf("sky face %d is %dx%d, want square", i, f.Width(), f.Height())
		}
		if i == 0 {
			c.size = f.Width()
		} else if f.Width() != c.size {
			return nil, fmt.Errorf("sky face %d is %d texels wide, want %d", i, f.Width(), c.size)
		}
		f.Wrap = texture.WrapClamp
		f.GenerateMips()
		c.faces[i] = f
	}
	return c, nil
}

// Size returns the face edge length in texels.
func (c *CubeMap) Size() int { return c.size }

// Sample reads the cube map along a direction at the given mip level.
// Returns RGB; a zero direction reads black.
func (c *CubeMap) Sample(dir mgl32.Vec3, lod float32) mgl32.Vec3 {
	x, y, z := dir.X(), dir.Y(), dir.Z()
	ax, ay, az := abs32(x), abs32(y), abs32(z)
	if ax == 0 && ay == 0 && az == 0 {
		return mgl32.Vec3{}
	}

	// Standard cube map face selection by major axis.
	var face int
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			face, sc, tc = FaceRight, -z, -y
		} else {
			face, sc, tc = FaceLeft, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			face, sc, tc = FaceUp, x, z
		} else {
			face, sc, tc = FaceDown, x, -z
		}
	default:
		ma = az
		if z > 0 {
			face, sc, tc = FaceBack, x, -y
		} else {
			face, sc, tc = FaceFront, -x, -y
		}
	}

	u := (sc/ma + 1) / 2
	v := (tc/ma + 1) / 2
	texel := c.faces[face].SampleLevel(u, v, lod)
	return texel.Vec3()
}

// SkyVector remaps a world-space direction into cube-map space. The
// world is Z-up while the cube convention is Y-up, so Y and Z swap and
// the new Z negates.
func SkyVector(world mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{world.X(), world.Z(), -world.Y()}
}

// Reflect mirrors an incident direction about a surface normal.
func Reflect(incident, normal mgl32.Vec3) mgl32.Vec3 {
	return incident.Sub(normal.Mul(2 * incident.Dot(normal)))
}

// Contribution returns the additive sky term for a surface. view points
// from the camera toward the surface; shininessT is the normalized
// shininess, 0 fully rough to 1 fully smooth. A nil map contributes
// exactly zero.
func (c *CubeMap) Contribution(view, normal mgl32.Vec3, shininessT float32) mgl32.Vec3 {
	if c == nil {
		return mgl32.Vec3{}
	}
	t := mgl32.Clamp(shininessT, 0, 1)
	dir := SkyVector(Reflect(view, normal))
	lod := mipRough + (mipSmooth-mipRough)*t
	weight := weightRough + (weightSmooth-weightRough)*t
	return c.Sample(dir, lod).Mul(weight)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
