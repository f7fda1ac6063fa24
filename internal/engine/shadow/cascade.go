// Package shadow implements cascaded shadow mapping on the CPU: cascade
// selection, atlas depth filtering, and directional light matrix fitting.
package shadow

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Cascade count bounds. The pipeline resolves the actual count from
// configuration at load time.
const (
	MinCascades = 4
	MaxCascades = 6
)

// DefaultResolution is the default per-cascade tile resolution.
const DefaultResolution = 1024

// defaultDistances is the full handover table; a set built with N
// cascades takes the first N entries.
var defaultDistances = [MaxCascades]float32{20, 40, 170, 240, 400, 800}

// Metric identifies the depth measure cascade distances are expressed in.
type Metric int

const (
	// MetricViewDistance selects by Euclidean distance from the camera.
	MetricViewDistance Metric = iota
	// MetricClipDepth selects by a monotonic clip-space depth supplied
	// by the caller. Distances must be expressed in the same space.
	MetricClipDepth
)

// DefaultDistances returns the default handover distances for a cascade
// count, clamping the count to the supported range.
func DefaultDistances(count int) []float32 {
	count = ClampCount(count)
	out := make([]float32, count)
	copy(out, defaultDistances[:count])
	return out
}

// ClampCount clamps a cascade count to [MinCascades, MaxCascades].
func ClampCount(count int) int {
	if count < MinCascades {
		return MinCascades
	}
	if count > MaxCascades {
		return MaxCascades
	}
	return count
}

// CascadeSet holds the per-cascade light view-projection matrices and
// the strictly increasing distances at which each cascade hands over to
// the next. Matrices and Distances run in lockstep, nearest first.
type CascadeSet struct {
	Matrices  []mgl32.Mat4
	Distances []float32
	Metric    Metric
}

// Count returns the number of cascades in the set.
func (s *CascadeSet) Count() int { return len(s.Matrices) }

// Select returns the index of the cascade covering a surface point and
// the point transformed into that cascade's [0,1] shadow space. Index -1
// means no cascade applies and the point receives full sun.
//
// The walk stops at the first cascade whose distance exceeds depth, even
// when the projected point falls outside that cascade's volume; a point
// is never handed to a farther cascade. Points past the last distance
// are unshadowed.
func (s *CascadeSet) Select(worldPos mgl32.Vec3, depth float32) (int, mgl32.Vec3) {
	n := len(s.Matrices)
	if len(s.Distances) < n {
		n = len(s.Distances)
	}
	for i := 0; i < n; i++ {
		if depth >= s.Distances[i] {
			continue
		}
		h := s.Matrices[i].Mul4x1(worldPos.Vec4(1))
		// Light matrices are orthographic, so no perspective divide.
		p := mgl32.Vec3{
			h.X()*0.5 + 0.5,
			h.Y()*0.5 + 0.5,
			h.Z()*0.5 + 0.5,
		}
		if p.X() < 0 || p.X() > 1 ||
			p.Y() < 0 || p.Y() > 1 ||
			p.Z() < 0 || p.Z() > 1 {
			return -1, mgl32.Vec3{}
		}
		return i, p
	}
	return -1, mgl32.Vec3{}
}
