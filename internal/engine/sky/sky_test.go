package sky

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/texture"
)

func solidCube(t *testing.T, colors [6]mgl32.Vec4) *CubeMap {
	t.Helper()
	var faces [6]*texture.Texture2D
	for i, c := range colors {
		faces[i] = texture.Solid(c)
	}
	cube, err := NewCubeMap(faces)
	if err != nil {
		t.Fatalf("NewCubeMap failed: %v", err)
	}
	return cube
}

func TestSampleFacePick(t *testing.T) {
	cube := solidCube(t, [6]mgl32.Vec4{
		{1, 0, 0, 1}, // right
		{0, 1, 0, 1}, // left
		{0, 0, 1, 1}, // up
		{1, 1, 0, 1}, // down
		{1, 0, 1, 1}, // back
		{0, 1, 1, 1}, // front
	})

	tests := []struct {
		name string
		dir  mgl32.Vec3
		want mgl32.Vec3
	}{
		{"+x right", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"-x left", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{"+y up", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{"-y down", mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 1, 0}},
		{"+z back", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 1}},
		{"-z front", mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cube.Sample(tt.dir, 0)
			if !got.ApproxEqualThreshold(tt.want, 1e-6) {
				t.Errorf("Sample(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestSampleZeroDirection(t *testing.T) {
	cube := solidCube(t, [6]mgl32.Vec4{
		{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1},
		{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1},
	})
	if got := cube.Sample(mgl32.Vec3{}, 0); got != (mgl32.Vec3{}) {
		t.Errorf("Sample(zero) = %v, want black", got)
	}
}

func TestNewCubeMapValidates(t *testing.T) {
	var faces [6]*texture.Texture2D
	for i := range faces {
		faces[i] = texture.Solid(mgl32.Vec4{1, 1, 1, 1})
	}
	faces[3] = nil
	if _, err := NewCubeMap(faces); err == nil {
		t.Error("expected error for missing face")
	}

	faces[3] = texture.New(2, 2)
	if _, err := NewCubeMap(faces); err == nil {
		t.Error("expected error for mismatched face size")
	}
}

func TestSkyVector(t *testing.T) {
	// World up (Z) maps to cube up (Y).
	got := SkyVector(mgl32.Vec3{0, 0, 1})
	want := mgl32.Vec3{0, 1, 0}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("SkyVector(world up) = %v, want %v", got, want)
	}

	got = SkyVector(mgl32.Vec3{1, 2, 3})
	want = mgl32.Vec3{1, 3, -2}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("SkyVector = %v, want %v", got, want)
	}
}

func TestReflect(t *testing.T) {
	// Looking straight down at an upward-facing surface bounces straight up.
	got := Reflect(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 1})
	want := mgl32.Vec3{0, 0, 1}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("Reflect = %v, want %v", got, want)
	}

	// A grazing 45 degree bounce.
	in := mgl32.Vec3{1, 0, -1}.Normalize()
	got = Reflect(in, mgl32.Vec3{0, 0, 1})
	want = mgl32.Vec3{1, 0, 1}.Normalize()
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("Reflect grazing = %v, want %v", got, want)
	}
}

func TestContributionWeights(t *testing.T) {
	cube := solidCube(t, [6]mgl32.Vec4{
		{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1},
		{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1},
	})

	view := mgl32.Vec3{0, 0, -1}
	normal := mgl32.Vec3{0, 0, 1}

	// Fully smooth surfaces reflect at the strong weight.
	got := cube.Contribution(view, normal, 1)
	if !got.ApproxEqualThreshold(mgl32.Vec3{0.25, 0.25, 0.25}, 1e-5) {
		t.Errorf("Contribution(smooth) = %v, want 0.25 white", got)
	}

	// Fully rough surfaces barely register.
	got = cube.Contribution(view, normal, 0)
	if !got.ApproxEqualThreshold(mgl32.Vec3{0.001, 0.001, 0.001}, 1e-5) {
		t.Errorf("Contribution(rough) = %v, want 0.001 white", got)
	}
}

func TestContributionNilMap(t *testing.T) {
	var cube *CubeMap
	got := cube.Contribution(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 1}, 1)
	if got != (mgl32.Vec3{}) {
		t.Errorf("nil map Contribution = %v, want zero", got)
	}
}
