// Package material resolves per-surface material properties from
// texture maps. All maps of a material share one UV transform.
package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// Maps binds the texture maps and UV transform for one material.
// Unbound maps fall back to neutral values: white albedo, full
// roughness, no normal perturbation.
type Maps struct {
	Albedo    *texture.Texture2D // RGBA base color
	Normal    *texture.Texture2D // tangent-space normal map
	Roughness *texture.Texture2D // roughness in the red channel
	UVScale   mgl32.Vec2
	UVOffset  mgl32.Vec2
}

// Sample is the resolved material at one surface point.
type Sample struct {
	Albedo    mgl32.Vec4
	Roughness float32
	Normal    mgl32.Vec3 // tangent space, valid only when HasNormal
	HasNormal bool
}

// Default returns a material with no maps bound and an identity UV
// transform.
func Default() Maps {
	return Maps{UVScale: mgl32.Vec2{1, 1}}
}

// TransformUV applies the material's UV scale and offset.
// A zero scale component is treated as 1 so a zero-valued Maps still
// samples sensibly.
func (m Maps) TransformUV(uv mgl32.Vec2) mgl32.Vec2 {
	sx := m.UVScale.X()
	sy := m.UVScale.Y()
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return mgl32.Vec2{
		uv.X()*sx + m.UVOffset.X(),
		uv.Y()*sy + m.UVOffset.Y(),
	}
}

// SampleAt resolves the material at a surface UV coordinate.
func (m Maps) SampleAt(uv mgl32.Vec2) Sample {
	uv = m.TransformUV(uv)

	s := Sample{
		Albedo:    mgl32.Vec4{1, 1, 1, 1},
		Roughness: 1,
	}
	if m.Albedo != nil {
		s.Albedo = m.Albedo.Sample(uv.X(), uv.Y())
	}
	if m.Roughness != nil {
		s.Roughness = m.Roughness.Sample(uv.X(), uv.Y())[0]
	}
	if m.Normal != nil {
		t := m.Normal.Sample(uv.X(), uv.Y())
		// Texel [0,1] to direction [-1,1].
		n := mgl32.Vec3{t[0]*2 - 1, t[1]*2 - 1, t[2]*2 - 1}
		if l := n.Len(); l > 1e-6 {
			s.Normal = n.Mul(1 / l)
			s.HasNormal = true
		}
	}
	return s
}
