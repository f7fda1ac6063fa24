// Package snapshot reads and writes frame snapshot files.
//
// A snapshot freezes the inputs of one shading pass: the shading
// switches, the sun, the clock, the cascade set, the packed point light
// block, and optionally the baked shadow depth atlas. The layout is
// little-endian: a 4-byte magic "SSNP", a version stored as
// [minor, major], then tagged sections. A snapshot with a zero cascade
// count replays unshadowed.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Snapshot format errors.
var (
	ErrInvalidMagic       = errors.New("invalid snapshot magic: expected 'SSNP'")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrTruncatedData      = errors.New("truncated snapshot data")
	ErrUnknownSection     = errors.New("unknown snapshot section")
	ErrDuplicateSection   = errors.New("duplicate snapshot section")
	ErrMissingSection     = errors.New("missing snapshot section")
)

const magicString = "SSNP"

// Section tags.
const (
	tagConfig   byte = 0x01
	tagSun      byte = 0x02
	tagClock    byte = 0x03
	tagCascades byte = 0x04
	tagLights   byte = 0x05
	tagAtlas    byte = 0x06
)

// MaxLights is the number of point light slots in the packed block.
const MaxLights = 8

// Version represents the snapshot file version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVersion is the format version written by Encode.
var CurrentVersion = Version{Major: 1, Minor: 0}

// Config mirrors the shading switches in effect for the pass.
type Config struct {
	Model           uint8 // 0 smooth, 1 toon
	Debug           uint8
	ComplexNormals  bool
	Simplified      bool
	ShininessLower  float32
	ShininessUpper  float32
	KernelBound     int32
	Bias            float32
	SlopeBias       float32
	ShadowIntensity float32
	AmbientStrength float32
	Highlighted     int32
}

// Sun is the directional light at capture time.
type Sun struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

// Cascades holds the shadow cascade transforms and handover distances,
// nearest first. Matrices and Distances run in lockstep.
type Cascades struct {
	Metric    uint8
	Matrices  []mgl32.Mat4
	Distances []float32
}

// Lights is the packed point light block: one vec4 per slot for
// positions and colors, radii packed four per vec4. Slots at or beyond
// Count carry no light but round-trip byte for byte.
type Lights struct {
	Positions [MaxLights]mgl32.Vec4
	Colors    [MaxLights]mgl32.Vec4
	Radii     [MaxLights / 4]mgl32.Vec4
	Count     uint32
}

// Radius returns the falloff radius of light i, reading through the
// packed four-per-vec4 layout.
func (l *Lights) Radius(i int) float32 {
	return l.Radii[i/4][i%4]
}

// SetRadius stores the falloff radius of light i.
func (l *Lights) SetRadius(i int, r float32) {
	l.Radii[i/4][i%4] = r
}

// Atlas is the baked shadow depth atlas, cascade tiles side by side
// along the width.
type Atlas struct {
	Width  uint32
	Height uint32
	Pix    []float32
}

// Snapshot carries the inputs of one shading pass.
type Snapshot struct {
	Version  Version
	Config   Config
	Sun      Sun
	Time     float32
	Cascades Cascades
	Lights   Lights
	Atlas    *Atlas // nil when the atlas was not captured
}

// Encode writes the snapshot to w with the current format version.
func (s *Snapshot) Encode(w io.Writer) error {
	if len(s.Cascades.Distances) != len(s.Cascades.Matrices) {
		return fmt.Errorf("cascade matrices and distances length mismatch: %d vs %d",
			len(s.Cascades.Matrices), len(s.Cascades.Distances))
	}
	if s.Atlas != nil && len(s.Atlas.Pix) != int(s.Atlas.Width)*int(s.Atlas.Height) {
		return fmt.Errorf("atlas has %d texels, want %d",
			len(s.Atlas.Pix), int(s.Atlas.Width)*int(s.Atlas.Height))
	}

	if _, err := w.Write([]byte(magicString)); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	// Version is stored as [minor, major]
	if _, err := w.Write([]byte{CurrentVersion.Minor, CurrentVersion.Major}); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}

	if err := writeValues(w, "config", tagConfig, s.Config); err != nil {
		return err
	}
	if err := writeValues(w, "sun", tagSun, s.Sun); err != nil {
		return err
	}
	if err := writeValues(w, "clock", tagClock, s.Time); err != nil {
		return err
	}
	if err := writeValues(w, "cascades", tagCascades,
		s.Cascades.Metric, uint32(len(s.Cascades.Matrices)),
		s.Cascades.Matrices, s.Cascades.Distances); err != nil {
		return err
	}
	if err := writeValues(w, "lights", tagLights, s.Lights); err != nil {
		return err
	}
	if s.Atlas != nil {
		if err := writeValues(w, "atlas", tagAtlas,
			s.Atlas.Width, s.Atlas.Height, s.Atlas.Pix); err != nil {
			return err
		}
	}
	return nil
}

// EncodeFile writes the snapshot to disk.
func (s *Snapshot) EncodeFile(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// writeValues writes each value in sequence, wrapping errors with the
// section name.
func writeValues(w io.Writer, section string, vs ...any) error {
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("writing %s: %w", section, err)
		}
	}
	return nil
}

// Decode parses a snapshot from raw bytes.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedData
	}

	// Check magic "SSNP"
	if string(data[0:4]) != magicString {
		return nil, ErrInvalidMagic
	}

	// Version is stored as [minor, major]
	version := Version{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	s := &Snapshot{Version: version}
	r := bytes.NewReader(data[6:])
	seen := make(map[byte]bool)

	for {
		tag, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if seen[tag] {
			return nil, fmt.Errorf("%w: 0x%02x", ErrDuplicateSection, tag)
		}
		seen[tag] = true

		switch tag {
		case tagConfig:
			if err := binary.Read(r, binary.LittleEndian, &s.Config); err != nil {
				return nil, fmt.Errorf("%w: reading config", ErrTruncatedData)
			}
		case tagSun:
			if err := binary.Read(r, binary.LittleEndian, &s.Sun); err != nil {
				return nil, fmt.Errorf("%w: reading sun", ErrTruncatedData)
			}
		case tagClock:
			if err := binary.Read(r, binary.LittleEndian, &s.Time); err != nil {
				return nil, fmt.Errorf("%w: reading clock", ErrTruncatedData)
			}
		case tagCascades:
			c, err := decodeCascades(r)
			if err != nil {
				return nil, err
			}
			s.Cascades = c
		case tagLights:
			if err := binary.Read(r, binary.LittleEndian, &s.Lights); err != nil {
				return nil, fmt.Errorf("%w: reading lights", ErrTruncatedData)
			}
			if s.Lights.Count > MaxLights {
				return nil, fmt.Errorf("invalid light count: %d", s.Lights.Count)
			}
		case tagAtlas:
			a, err := decodeAtlas(r)
			if err != nil {
				return nil, err
			}
			s.Atlas = a
		default:
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownSection, tag)
		}
	}

	for _, tag := range []byte{tagConfig, tagSun, tagClock, tagCascades, tagLights} {
		if !seen[tag] {
			return nil, fmt.Errorf("%w: 0x%02x", ErrMissingSection, tag)
		}
	}
	return s, nil
}

// decodeCascades parses the cascade section body.
func decodeCascades(r *bytes.Reader) (Cascades, error) {
	var c Cascades
	if err := binary.Read(r, binary.LittleEndian, &c.Metric); err != nil {
		return Cascades{}, fmt.Errorf("%w: reading cascade metric", ErrTruncatedData)
	}
	if c.Metric > 1 {
		return Cascades{}, fmt.Errorf("invalid cascade metric: %d", c.Metric)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return Cascades{}, fmt.Errorf("%w: reading cascade count", ErrTruncatedData)
	}
	if count > 16 {
		return Cascades{}, fmt.Errorf("invalid cascade count: %d", count)
	}
	if count == 0 {
		return c, nil
	}

	c.Matrices = make([]mgl32.Mat4, count)
	if err := binary.Read(r, binary.LittleEndian, c.Matrices); err != nil {
		return Cascades{}, fmt.Errorf("%w: reading cascade matrices", ErrTruncatedData)
	}
	c.Distances = make([]float32, count)
	if err := binary.Read(r, binary.LittleEndian, c.Distances); err != nil {
		return Cascades{}, fmt.Errorf("%w: reading cascade distances", ErrTruncatedData)
	}

	if c.Distances[0] <= 0 {
		return Cascades{}, fmt.Errorf("cascade distance 0 is %g, want positive", c.Distances[0])
	}
	for i := 1; i < len(c.Distances); i++ {
		if c.Distances[i] <= c.Distances[i-1] {
			return Cascades{}, fmt.Errorf("cascade distances not increasing at %d", i)
		}
	}
	return c, nil
}

// decodeAtlas parses the atlas section body.
func decodeAtlas(r *bytes.Reader) (*Atlas, error) {
	var a Atlas
	if err := binary.Read(r, binary.LittleEndian, &a.Width); err != nil {
		return nil, fmt.Errorf("%w: reading atlas width", ErrTruncatedData)
	}
	if err := binary.Read(r, binary.LittleEndian, &a.Height); err != nil {
		return nil, fmt.Errorf("%w: reading atlas height", ErrTruncatedData)
	}
	if a.Width == 0 || a.Height == 0 || a.Width > 1<<15 || a.Height > 1<<15 {
		return nil, fmt.Errorf("invalid atlas dimensions: %dx%d", a.Width, a.Height)
	}

	a.Pix = make([]float32, int(a.Width)*int(a.Height))
	if err := binary.Read(r, binary.LittleEndian, a.Pix); err != nil {
		return nil, fmt.Errorf("%w: reading atlas texels", ErrTruncatedData)
	}
	return &a, nil
}

// DecodeFile parses a snapshot file from disk.
func DecodeFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return Decode(data)
}
