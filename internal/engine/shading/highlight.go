package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// RimTerm computes the animated rim overlay added to highlighted
// instances. toView points from the surface to the camera; the term
// peaks at grazing angles and cycles each color channel at its own
// frequency.
func RimTerm(toView, normal mgl32.Vec3, time float32) mgl32.Vec3 {
	facing := toView.Dot(normal)
	if facing < 0 {
		facing = 0
	}
	likeness := 1 - facing
	factor := Smoothstep(0.5, 1.0, likeness)

	color := mgl32.Vec3{
		0.5 + 0.5*cos32(5*time),
		0.5 + 0.5*sin32(6*time),
		0.5 + 0.5*cos32(8*time),
	}
	return color.Mul(factor)
}

// highlighted reports whether a point receives the rim overlay: either
// its own flag is set or its instance is the frame's highlighted one.
func (f *Frame) highlighted(pt SurfacePoint) bool {
	if pt.Highlight != 0 {
		return true
	}
	return f.Highlighted >= 0 && pt.Instance == f.Highlighted
}

func cos32(x float32) float32 { return float32(gomath.Cos(float64(x))) }

func sin32(x float32) float32 { return float32(gomath.Sin(float64(x))) }
