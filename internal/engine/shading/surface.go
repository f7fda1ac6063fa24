// Package shading evaluates the final color of visible surface points:
// reflectance under the sun and point lights, cascaded shadow
// attenuation, sky ambient, the selection rim highlight, and the debug
// visualization modes. Evaluation is pure computation over an immutable
// per-frame snapshot; points never depend on each other.
package shading

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SurfacePoint is one visible sample of scene geometry, produced by the
// geometry pass once per evaluated pixel. Immutable during shading.
type SurfacePoint struct {
	Position  mgl32.Vec3 // world space
	Normal    mgl32.Vec3 // world space, unit length
	Tangent   mgl32.Vec3 // world space, unit length
	Bitangent mgl32.Vec3 // world space, unit length
	UV        mgl32.Vec2
	ViewDepth float32 // distance from the camera, drives cascades and LOD
	Instance  int32   // owning scene instance, -1 when none
	Highlight float32 // per-instance highlight flag, nonzero = highlighted
}

// ApplyNormalMap rotates a tangent-space normal sample into world space
// through the point's tangent frame.
func (p SurfacePoint) ApplyNormalMap(n mgl32.Vec3) mgl32.Vec3 {
	world := p.Tangent.Mul(n.X()).
		Add(p.Bitangent.Mul(n.Y())).
		Add(p.Normal.Mul(n.Z()))
	if l := world.Len(); l > 1e-6 {
		return world.Mul(1 / l)
	}
	return p.Normal
}
