package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/picking"
	"github.com/Faultbox/sunshade/internal/engine/shadow"
	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// BakeShadowAtlas renders the cascade depth atlas for a scene. Each
// tile is traced by unprojecting its texels through the cascade matrix
// and intersecting the scene; texels that hit nothing stay at the far
// plane. For an orthographic cascade the hit parameter divided by the
// segment length equals the remapped [0,1] depth the sampler compares
// against. Returns nil when the set is empty.
func BakeShadowAtlas(sc *Scene, set *shadow.CascadeSet, resolution int) *texture.DepthMap {
	if sc == nil || set == nil || set.Count() == 0 || resolution < 1 {
		return nil
	}

	count := set.Count()
	atlas := texture.NewDepthMap(resolution*count, resolution)

	for i := 0; i < count; i++ {
		inv := set.Matrices[i].Inv()
		if inv == (mgl32.Mat4{}) {
			// Singular matrix: the tile stays at the far plane.
			continue
		}
		bakeTile(sc, atlas, inv, i, resolution)
	}

	return atlas
}

func bakeTile(sc *Scene, atlas *texture.DepthMap, inv mgl32.Mat4, tile, resolution int) {
	for y := 0; y < resolution; y++ {
		ndcY := (float32(y)+0.5)/float32(resolution)*2 - 1
		for x := 0; x < resolution; x++ {
			ndcX := (float32(x)+0.5)/float32(resolution)*2 - 1

			near := picking.Unproject(inv, mgl32.Vec4{ndcX, ndcY, -1, 1})
			far := picking.Unproject(inv, mgl32.Vec4{ndcX, ndcY, 1, 1})

			seg := far.Sub(near)
			segLen := seg.Len()
			if segLen <= 0 {
				continue
			}

			ray := picking.Ray{Origin: near, Direction: seg.Mul(1 / segLen)}
			h, ok := sc.Intersect(ray, 0, segLen)
			if !ok {
				continue
			}
			atlas.Set(tile*resolution+x, y, h.T/segLen)
		}
	}
}
