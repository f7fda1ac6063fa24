package shadow

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// FitCascade computes the light view-projection matrix for one view
// slice. The slice spans [near, far] along the camera forward axis; the
// orthographic volume is a bounding sphere around the slice, so the
// matrix stays valid as the camera rotates in place.
// sunDir is the normalized direction TO the sun.
func FitCascade(camPos, camForward, sunDir mgl32.Vec3, near, far, fovY, aspect float32) mgl32.Mat4 {
	halfDepth := (far - near) / 2
	center := camPos.Add(camForward.Mul(near + halfDepth))

	// Bounding sphere radius: the far-plane corners dominate.
	tanY := float32(gomath.Tan(float64(fovY) / 2))
	tanX := tanY * aspect
	lateral := far * sqrt32(tanX*tanX+tanY*tanY)
	radius := sqrt32(halfDepth*halfDepth + lateral*lateral)

	// Position light far enough to catch casters between the sun and
	// the slice.
	lightDistance := radius * 2
	lightPos := center.Add(sunDir.Mul(lightDistance))

	// Choose an appropriate up vector (avoid parallel with light direction)
	up := mgl32.Vec3{0, 0, 1}
	if abs32(sunDir.Z()) > 0.99 {
		up = mgl32.Vec3{0, 1, 0}
	}

	view := mgl32.LookAtV(lightPos, center, up)

	// Orthographic projection sized to the sphere, with padding to
	// avoid edge artifacts.
	padding := radius * 0.1
	halfSize := radius + padding
	zFar := lightDistance + radius + padding

	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, zFar)

	return proj.Mul4(view)
}

// BuildCascades fits one light matrix per handover distance. Cascade i
// covers the view range (distances[i-1], distances[i]], the first
// starting at the camera. Distances must be strictly increasing.
func BuildCascades(camPos, camForward, sunDir mgl32.Vec3, fovY, aspect float32, distances []float32, metric Metric) *CascadeSet {
	set := &CascadeSet{
		Matrices:  make([]mgl32.Mat4, len(distances)),
		Distances: append([]float32(nil), distances...),
		Metric:    metric,
	}
	near := float32(0)
	for i, far := range distances {
		set.Matrices[i] = FitCascade(camPos, camForward, sunDir, near, far, fovY, aspect)
		near = far
	}
	return set
}

// sqrt32 returns the square root of a float32.
func sqrt32(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}

// abs32 returns the absolute value of a float32.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
