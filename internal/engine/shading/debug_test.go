package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/lighting"
	"github.com/Faultbox/sunshade/internal/engine/material"
	"github.com/Faultbox/sunshade/internal/engine/shadow"
	"github.com/Faultbox/sunshade/internal/engine/texture"
)

func TestResolveDebugFlagsPriority(t *testing.T) {
	tests := []struct {
		name                                string
		albedo, normals, cascades, shadowed bool
		want                                DebugMode
	}{
		{"none", false, false, false, false, DebugNone},
		{"albedo beats normals", true, true, false, false, DebugAlbedo},
		{"albedo beats all", true, true, true, true, DebugAlbedo},
		{"normals beat cascades", false, true, true, false, DebugNormals},
		{"cascades beat shadowed", false, false, true, true, DebugCascades},
		{"shadowed alone", false, false, false, true, DebugShadowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDebugFlags(tt.albedo, tt.normals, tt.cascades, tt.shadowed)
			if got != tt.want {
				t.Errorf("ResolveDebugFlags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLODBand(t *testing.T) {
	tests := []struct {
		depth float32
		want  int
	}{
		{0, 0}, {19.9, 0},
		{20, 1}, {39, 1},
		{40, 2}, {169, 2},
		{170, 3}, {239, 3},
		{240, 4}, {1000, 4},
	}
	for _, tt := range tests {
		if got := LODBand(tt.depth); got != tt.want {
			t.Errorf("LODBand(%v) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestCascadeZoneColor(t *testing.T) {
	if got := CascadeZoneColor(-1); got != (mgl32.Vec3{}) {
		t.Errorf("CascadeZoneColor(-1) = %v, want black", got)
	}
	if got := CascadeZoneColor(0); got != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("CascadeZoneColor(0) = %v, want red", got)
	}
	if got := CascadeZoneColor(3); got != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("CascadeZoneColor(3) = %v, want magenta", got)
	}
	if got := CascadeZoneColor(5); got != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("CascadeZoneColor(5) = %v, want gray", got)
	}
}

func debugFrame(mode DebugMode) *Frame {
	fr := NewFrame()
	fr.Config.Debug = mode
	fr.CameraPos = mgl32.Vec3{0, 0, 5}
	fr.Sun = lighting.Sun{Direction: mgl32.Vec3{0, 0, 1}, Color: mgl32.Vec3{1, 1, 1}}
	fr.Cascades = &shadow.CascadeSet{
		Matrices:  []mgl32.Mat4{mgl32.Ident4()},
		Distances: []float32{10},
	}
	fr.Atlas = texture.NewDepthMap(4, 4)
	return fr
}

func TestShadeDebugModes(t *testing.T) {
	mat := material.Sample{Albedo: mgl32.Vec4{0.2, 0.3, 0.4, 0.5}, Roughness: 1}

	t.Run("albedo", func(t *testing.T) {
		got := Shade(debugFrame(DebugAlbedo), groundPoint(5), mat)
		want := mgl32.Vec4{0.2, 0.3, 0.4, 1}
		if !vec4Near(got, want, 1e-6) {
			t.Errorf("Shade = %v, want raw albedo %v", got, want)
		}
	})

	t.Run("normals", func(t *testing.T) {
		got := Shade(debugFrame(DebugNormals), groundPoint(5), mat)
		want := mgl32.Vec4{0.5, 0.5, 1, 1}
		if !vec4Near(got, want, 1e-6) {
			t.Errorf("Shade = %v, want encoded +Z %v", got, want)
		}
	})

	t.Run("cascade zone", func(t *testing.T) {
		got := Shade(debugFrame(DebugCascades), groundPoint(5), mat)
		want := mgl32.Vec4{1, 0, 0, 1}
		if !vec4Near(got, want, 1e-6) {
			t.Errorf("Shade = %v, want cascade 0 red %v", got, want)
		}

		// Beyond the cascade range the zone view renders black.
		got = Shade(debugFrame(DebugCascades), groundPoint(50), mat)
		want = mgl32.Vec4{0, 0, 0, 1}
		if !vec4Near(got, want, 1e-6) {
			t.Errorf("Shade = %v, want black %v", got, want)
		}
	})

	t.Run("shadowed", func(t *testing.T) {
		fr := debugFrame(DebugShadowed)
		fr.Atlas.Fill(0) // fully occluded
		got := Shade(fr, groundPoint(5), mat)
		want := mgl32.Vec4{1, 1, 1, 1}
		if !vec4Near(got, want, 1e-6) {
			t.Errorf("Shade = %v, want full-occlusion white %v", got, want)
		}
	})

	t.Run("lod zones", func(t *testing.T) {
		got := Shade(debugFrame(DebugLODZones), groundPoint(100), mat)
		want := mgl32.Vec4{0, 1, 0, 1} // third band, green
		if !vec4Near(got, want, 1e-6) {
			t.Errorf("Shade = %v, want %v", got, want)
		}
	})
}
