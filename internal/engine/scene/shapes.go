package scene

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/picking"
)

// Plane is an infinite horizontal plane at the given height. The normal
// always points up; UVs are the world XY coordinates.
type Plane struct {
	Height float32
}

// Hit intersects the ray with the plane.
func (p Plane) Hit(r picking.Ray, tMin, tMax float32) (Hit, bool) {
	dz := r.Direction.Z()
	if dz > -1e-6 && dz < 1e-6 {
		return Hit{}, false
	}

	t := (p.Height - r.Origin.Z()) / dz
	if t < tMin || t > tMax {
		return Hit{}, false
	}

	pos := r.At(t)
	return Hit{
		T:        t,
		Position: pos,
		Normal:   mgl32.Vec3{0, 0, 1},
		Tangent:  mgl32.Vec3{1, 0, 0},
		UV:       mgl32.Vec2{pos.X(), pos.Y()},
	}, true
}

// Sphere is a sphere with spherical UVs.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Hit intersects the ray with the sphere, returning the nearest root in range.
func (s Sphere) Hit(r picking.Ray, tMin, tMax float32) (Hit, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Hit{}, false
	}
	sqrtD := float32(gomath.Sqrt(float64(discriminant)))

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return Hit{}, false
		}
	}

	pos := r.At(root)
	normal := pos.Sub(s.Center).Mul(1 / s.Radius)

	// Tangent follows lines of latitude; degenerate at the poles.
	tangent := mgl32.Vec3{0, 0, 1}.Cross(normal)
	if l := tangent.Len(); l > 1e-4 {
		tangent = tangent.Mul(1 / l)
	} else {
		tangent = mgl32.Vec3{1, 0, 0}
	}

	u := 0.5 + float32(gomath.Atan2(float64(normal.Y()), float64(normal.X())))/(2*gomath.Pi)
	v := 0.5 + float32(gomath.Asin(float64(mgl32.Clamp(normal.Z(), -1, 1))))/gomath.Pi

	return Hit{
		T:        root,
		Position: pos,
		Normal:   normal,
		Tangent:  tangent,
		UV:       mgl32.Vec2{u, v},
	}, true
}

// Box is an axis-aligned box with planar per-face UVs.
type Box struct {
	Bounds picking.AABB
}

// NewBox creates a box from two corners.
func NewBox(min, max mgl32.Vec3) Box {
	return Box{Bounds: picking.NewAABB(min, max)}
}

// Hit intersects the ray with the box.
func (b Box) Hit(r picking.Ray, tMin, tMax float32) (Hit, bool) {
	t, ok := r.IntersectAABB(b.Bounds)
	if !ok || t < tMin || t > tMax {
		return Hit{}, false
	}

	pos := r.At(t)
	center := b.Bounds.Min.Add(b.Bounds.Max).Mul(0.5)
	half := b.Bounds.Max.Sub(b.Bounds.Min).Mul(0.5)

	// The face is the axis where the hit point sits deepest into the
	// unit cube, with the sign of its offset from the center.
	rel := pos.Sub(center)
	axis := 0
	best := float32(-1)
	for i := 0; i < 3; i++ {
		if half[i] <= 0 {
			continue
		}
		d := rel[i] / half[i]
		if d < 0 {
			d = -d
		}
		if d > best {
			best = d
			axis = i
		}
	}

	var normal, tangent mgl32.Vec3
	var uv mgl32.Vec2
	switch axis {
	case 0:
		normal = mgl32.Vec3{sign(rel.X()), 0, 0}
		tangent = mgl32.Vec3{0, sign(rel.X()), 0}
		uv = mgl32.Vec2{pos.Y(), pos.Z()}
	case 1:
		normal = mgl32.Vec3{0, sign(rel.Y()), 0}
		tangent = mgl32.Vec3{-sign(rel.Y()), 0, 0}
		uv = mgl32.Vec2{pos.X(), pos.Z()}
	default:
		normal = mgl32.Vec3{0, 0, sign(rel.Z())}
		tangent = mgl32.Vec3{1, 0, 0}
		uv = mgl32.Vec2{pos.X(), pos.Y()}
	}

	return Hit{
		T:        t,
		Position: pos,
		Normal:   normal,
		Tangent:  tangent,
		UV:       uv,
	}, true
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
