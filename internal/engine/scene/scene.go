// Package scene provides the analytic demo level the renderer shades.
// It handles ray intersection against plane, sphere, and box instances
// and builds the surface points the shading pipeline consumes.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/material"
	"github.com/Faultbox/sunshade/internal/engine/picking"
	"github.com/Faultbox/sunshade/internal/engine/shading"
)

// Hit describes a ray-surface intersection with its tangent frame.
type Hit struct {
	T        float32
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3
	UV       mgl32.Vec2
	Instance int32
}

// Shape is analytic geometry a ray can intersect. Implementations
// leave Hit.Instance at zero; the scene fills it in.
type Shape interface {
	Hit(r picking.Ray, tMin, tMax float32) (Hit, bool)
}

// Instance is a placed shape with its surface material.
type Instance struct {
	Name      string
	Shape     Shape
	Material  material.Maps
	Highlight float32
}

// Scene is a flat list of instances.
type Scene struct {
	Instances []Instance
}

// Intersect returns the nearest hit along the ray, if any.
func (s *Scene) Intersect(r picking.Ray, tMin, tMax float32) (Hit, bool) {
	var closest Hit
	found := false

	for i := range s.Instances {
		h, ok := s.Instances[i].Shape.Hit(r, tMin, tMax)
		if !ok {
			continue
		}
		if !found || h.T < closest.T {
			h.Instance = int32(i)
			closest = h
			found = true
		}
	}

	return closest, found
}

// Material returns the material of an instance, or the default material
// for an out-of-range index.
func (s *Scene) Material(instance int32) material.Maps {
	if instance < 0 || int(instance) >= len(s.Instances) {
		return material.Default()
	}
	return s.Instances[instance].Material
}

// SurfacePoint converts a hit into the shading input for a camera at
// the given position.
func (s *Scene) SurfacePoint(h Hit, camPos mgl32.Vec3) shading.SurfacePoint {
	var highlight float32
	if h.Instance >= 0 && int(h.Instance) < len(s.Instances) {
		highlight = s.Instances[h.Instance].Highlight
	}

	return shading.SurfacePoint{
		Position:  h.Position,
		Normal:    h.Normal,
		Tangent:   h.Tangent,
		Bitangent: h.Normal.Cross(h.Tangent),
		UV:        h.UV,
		ViewDepth: h.Position.Sub(camPos).Len(),
		Instance:  h.Instance,
		Highlight: highlight,
	}
}
