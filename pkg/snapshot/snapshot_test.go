package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// fullSnapshot builds a snapshot exercising every section.
func fullSnapshot() *Snapshot {
	s := &Snapshot{
		Config: Config{
			Model:           1,
			Debug:           2,
			ComplexNormals:  true,
			Simplified:      true,
			ShininessLower:  8,
			ShininessUpper:  128,
			KernelBound:     2,
			Bias:            0.0005,
			SlopeBias:       0.0025,
			ShadowIntensity: 0.65,
			AmbientStrength: 0.2,
			Highlighted:     3,
		},
		Sun: Sun{
			Direction: mgl32.Vec3{0.3, -0.5, 0.8},
			Color:     mgl32.Vec3{1, 0.95, 0.9},
		},
		Time: 12.5,
		Cascades: Cascades{
			Metric: 1,
			Matrices: []mgl32.Mat4{
				mgl32.Ident4(),
				mgl32.Scale3D(2, 2, 2),
				mgl32.Translate3D(1, 2, 3),
			},
			Distances: []float32{20, 40, 170},
		},
	}
	for i := 0; i < MaxLights; i++ {
		f := float32(i)
		s.Lights.Positions[i] = mgl32.Vec4{f, f + 1, f + 2, 1}
		s.Lights.Colors[i] = mgl32.Vec4{1, 0.5, 0.25, 1}
		s.Lights.SetRadius(i, f+1)
	}
	s.Lights.Count = MaxLights
	s.Atlas = &Atlas{
		Width:  4,
		Height: 2,
		Pix:    []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7},
	}
	return s
}

func encode(t *testing.T, s *Snapshot) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestRoundTrip_Full(t *testing.T) {
	want := fullSnapshot()
	data := encode(t, want)

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want.Version = CurrentVersion
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded snapshot differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestRoundTrip_NoCascadesNoAtlas(t *testing.T) {
	want := &Snapshot{Time: 1.5}
	want.Config.ShininessLower = 8
	want.Sun.Direction = mgl32.Vec3{0, 0, 1}

	got, err := Decode(encode(t, want))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Atlas != nil {
		t.Error("expected nil atlas")
	}

	want.Version = CurrentVersion
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded snapshot differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestRoundTrip_AllRadiiExact(t *testing.T) {
	s := fullSnapshot()
	// Slots at or beyond Count still round-trip.
	s.Lights.Count = 3

	got, err := Decode(encode(t, s))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i := 0; i < MaxLights; i++ {
		if got.Lights.Radius(i) != float32(i+1) {
			t.Errorf("radius %d = %g, want %d", i, got.Lights.Radius(i), i+1)
		}
	}
}

func TestEncode_HeaderLayout(t *testing.T) {
	data := encode(t, fullSnapshot())

	if string(data[0:4]) != "SSNP" {
		t.Errorf("magic = %q, want SSNP", data[0:4])
	}
	if data[4] != CurrentVersion.Minor || data[5] != CurrentVersion.Major {
		t.Errorf("version bytes = [%d %d], want [minor major] = [%d %d]",
			data[4], data[5], CurrentVersion.Minor, CurrentVersion.Major)
	}
}

func TestEncode_CascadeLengthMismatch(t *testing.T) {
	s := fullSnapshot()
	s.Cascades.Distances = s.Cascades.Distances[:2]

	var buf bytes.Buffer
	if err := s.Encode(&buf); err == nil {
		t.Error("expected error for mismatched cascade lengths")
	}
}

func TestEncode_AtlasSizeMismatch(t *testing.T) {
	s := fullSnapshot()
	s.Atlas.Pix = s.Atlas.Pix[:3]

	var buf bytes.Buffer
	if err := s.Encode(&buf); err == nil {
		t.Error("expected error for short atlas pixel data")
	}
}

func TestDecode_InvalidMagic(t *testing.T) {
	data := encode(t, fullSnapshot())
	copy(data, "XXXX")

	if _, err := Decode(data); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	data := encode(t, fullSnapshot())
	data[5] = 9 // major

	if _, err := Decode(data); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecode_Truncated(t *testing.T) {
	data := encode(t, fullSnapshot())

	if _, err := Decode(data[:3]); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("err = %v, want ErrTruncatedData for cut header", err)
	}
	if _, err := Decode(data[:len(data)-4]); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("err = %v, want ErrTruncatedData for cut atlas", err)
	}
}

func TestDecode_UnknownSection(t *testing.T) {
	data := append(encode(t, fullSnapshot()), 0xEE)

	if _, err := Decode(data); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("err = %v, want ErrUnknownSection", err)
	}
}

func TestDecode_DuplicateSection(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.WriteString("SSNP")
	buf.WriteByte(0) // minor
	buf.WriteByte(1) // major
	buf.WriteByte(tagClock)
	binary.Write(buf, binary.LittleEndian, float32(1))
	buf.WriteByte(tagClock)
	binary.Write(buf, binary.LittleEndian, float32(2))

	if _, err := Decode(buf.Bytes()); !errors.Is(err, ErrDuplicateSection) {
		t.Errorf("err = %v, want ErrDuplicateSection", err)
	}
}

func TestDecode_MissingSection(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.WriteString("SSNP")
	buf.WriteByte(0) // minor
	buf.WriteByte(1) // major
	buf.WriteByte(tagClock)
	binary.Write(buf, binary.LittleEndian, float32(1))

	if _, err := Decode(buf.Bytes()); !errors.Is(err, ErrMissingSection) {
		t.Errorf("err = %v, want ErrMissingSection", err)
	}
}

func TestDecode_BadCascades(t *testing.T) {
	s := fullSnapshot()
	s.Cascades.Distances = []float32{20, 20, 30}
	if _, err := Decode(encode(t, s)); err == nil {
		t.Error("expected error for non-increasing distances")
	}

	s = fullSnapshot()
	s.Cascades.Metric = 7
	if _, err := Decode(encode(t, s)); err == nil {
		t.Error("expected error for invalid metric")
	}

	s = fullSnapshot()
	s.Cascades.Distances[0] = 0
	s.Cascades.Distances[1] = 1
	s.Cascades.Distances[2] = 2
	if _, err := Decode(encode(t, s)); err == nil {
		t.Error("expected error for zero first distance")
	}
}

func TestDecode_LightCountTooHigh(t *testing.T) {
	s := fullSnapshot()
	s.Lights.Count = MaxLights + 1

	if _, err := Decode(encode(t, s)); err == nil {
		t.Error("expected error for light count past the block size")
	}
}

func TestLights_RadiusPacking(t *testing.T) {
	var l Lights
	for i := 0; i < MaxLights; i++ {
		l.SetRadius(i, float32(10+i))
	}

	// Light 6 lands in the second vec4, component 2.
	if l.Radii[1][2] != 16 {
		t.Errorf("Radii[1][2] = %g, want 16", l.Radii[1][2])
	}
	for i := 0; i < MaxLights; i++ {
		if l.Radius(i) != float32(10+i) {
			t.Errorf("Radius(%d) = %g, want %d", i, l.Radius(i), 10+i)
		}
	}
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.snap")
	want := fullSnapshot()

	if err := want.EncodeFile(path); err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	got, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	want.Version = CurrentVersion
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded snapshot differs:\n got %+v\nwant %+v", got, want)
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.snap")); err == nil {
		t.Error("expected error for missing file")
	}
}
