package scene

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/material"
	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// BuildDemo constructs the built-in test level: a checkered ground
// plane, three spheres across the roughness range, a crate, and a
// floating highlighted gadget.
func BuildDemo() *Scene {
	ground := material.Maps{
		Albedo:    checkerTexture(8, mgl32.Vec4{0.75, 0.75, 0.78, 1}, mgl32.Vec4{0.35, 0.35, 0.38, 1}),
		Normal:    rippleNormalTexture(32),
		Roughness: texture.Solid(mgl32.Vec4{0.9, 0.9, 0.9, 1}),
		UVScale:   mgl32.Vec2{0.125, 0.125},
	}

	return &Scene{
		Instances: []Instance{
			{
				Name:     "ground",
				Shape:    Plane{Height: 0},
				Material: ground,
			},
			{
				Name:     "sphere_matte",
				Shape:    Sphere{Center: mgl32.Vec3{-2.5, 1, 1}, Radius: 1},
				Material: solidMaterial(mgl32.Vec4{0.8, 0.2, 0.2, 1}, 0.35),
			},
			{
				Name:     "sphere_rough",
				Shape:    Sphere{Center: mgl32.Vec3{0, 2.5, 1}, Radius: 1},
				Material: solidMaterial(mgl32.Vec4{0.2, 0.7, 0.3, 1}, 0.8),
			},
			{
				Name:     "sphere_chrome",
				Shape:    Sphere{Center: mgl32.Vec3{2.5, 1, 1}, Radius: 1},
				Material: solidMaterial(mgl32.Vec4{0.9, 0.9, 0.95, 1}, 0.05),
			},
			{
				Name:     "crate",
				Shape:    NewBox(mgl32.Vec3{-5, -1, 0}, mgl32.Vec3{-3.5, 0.5, 1.5}),
				Material: solidMaterial(mgl32.Vec4{0.55, 0.4, 0.25, 1}, 0.7),
			},
			{
				Name:      "gadget",
				Shape:     NewBox(mgl32.Vec3{3.5, -0.5, 1.5}, mgl32.Vec3{4.5, 0.5, 2.5}),
				Material:  solidMaterial(mgl32.Vec4{1.0, 0.6, 0.1, 1}, 0.4),
				Highlight: 1,
			},
		},
	}
}

func solidMaterial(albedo mgl32.Vec4, roughness float32) material.Maps {
	m := material.Default()
	m.Albedo = texture.Solid(albedo)
	m.Roughness = texture.Solid(mgl32.Vec4{roughness, roughness, roughness, 1})
	return m
}

func checkerTexture(size int, a, b mgl32.Vec4) *texture.Texture2D {
	t := texture.New(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				t.SetTexel(x, y, a)
			} else {
				t.SetTexel(x, y, b)
			}
		}
	}
	t.GenerateMips()
	return t
}

// rippleNormalTexture bakes concentric tangent-space ripples, encoded
// the usual way with (0.5, 0.5, 1) as the flat normal.
func rippleNormalTexture(size int) *texture.Texture2D {
	t := texture.New(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := (float32(x) + 0.5) / float32(size)
			v := (float32(y) + 0.5) / float32(size)
			dx := u - 0.5
			dy := v - 0.5
			r := float32(gomath.Sqrt(float64(dx*dx + dy*dy)))

			slope := 0.25 * float32(gomath.Sin(float64(r*16*gomath.Pi)))
			n := mgl32.Vec3{0, 0, 1}
			if r > 1e-5 {
				n = mgl32.Vec3{slope * dx / r, slope * dy / r, 1}.Normalize()
			}

			t.SetTexel(x, y, mgl32.Vec4{n.X()*0.5 + 0.5, n.Y()*0.5 + 0.5, n.Z()*0.5 + 0.5, 1})
		}
	}
	t.GenerateMips()
	return t
}
