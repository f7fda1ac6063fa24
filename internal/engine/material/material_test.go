package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/texture"
)

func TestSampleAtDefaults(t *testing.T) {
	s := Default().SampleAt(mgl32.Vec2{0.5, 0.5})

	if s.Albedo != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Errorf("unbound albedo = %v, want white", s.Albedo)
	}
	if s.Roughness != 1 {
		t.Errorf("unbound roughness = %v, want 1", s.Roughness)
	}
	if s.HasNormal {
		t.Error("unbound normal map reported HasNormal")
	}
}

func TestSampleAtResolvesMaps(t *testing.T) {
	m := Default()
	m.Albedo = texture.Solid(mgl32.Vec4{0.2, 0.4, 0.6, 0.5})
	m.Roughness = texture.Solid(mgl32.Vec4{0.25, 0, 0, 1})
	m.Normal = texture.Solid(mgl32.Vec4{0.5, 0.5, 1, 1})

	s := m.SampleAt(mgl32.Vec2{0.5, 0.5})

	if s.Albedo != (mgl32.Vec4{0.2, 0.4, 0.6, 0.5}) {
		t.Errorf("albedo = %v", s.Albedo)
	}
	if s.Roughness != 0.25 {
		t.Errorf("roughness = %v, want 0.25", s.Roughness)
	}
	if !s.HasNormal {
		t.Fatal("normal map bound but HasNormal is false")
	}
	// Texel (0.5, 0.5, 1) decodes to the unperturbed +Z normal.
	if !s.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("normal = %v, want +Z", s.Normal)
	}
}

func TestTransformUV(t *testing.T) {
	m := Maps{UVScale: mgl32.Vec2{2, 3}, UVOffset: mgl32.Vec2{0.1, 0.2}}

	got := m.TransformUV(mgl32.Vec2{0.5, 0.5})
	want := mgl32.Vec2{1.1, 1.7}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("TransformUV = %v, want %v", got, want)
	}
}

func TestTransformUVZeroScale(t *testing.T) {
	// A zero-valued Maps must behave like the identity transform.
	var m Maps
	got := m.TransformUV(mgl32.Vec2{0.3, 0.7})
	if !got.ApproxEqualThreshold(mgl32.Vec2{0.3, 0.7}, 1e-6) {
		t.Errorf("TransformUV = %v, want input unchanged", got)
	}
}
