// Package lighting provides the sun and point light sources consumed by
// the shading pipeline.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is the single directional light. Direction points from the scene
// toward the sun.
type Sun struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

// DefaultSun returns a white sun at a mid-morning angle.
func DefaultSun() Sun {
	return Sun{
		Direction: SunDirection(135, 50),
		Color:     mgl32.Vec3{1, 1, 1},
	}
}

// SunDirection converts azimuth/elevation angles to a sun direction.
// The world is Z-up: azimuth rotates around +Z starting at +X, elevation
// is degrees above the horizon. Returns a normalized vector pointing
// towards the sun.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	azRad := float64(mgl32.DegToRad(azimuth))
	elRad := float64(mgl32.DegToRad(elevation))

	x := float32(math.Cos(elRad) * math.Cos(azRad))
	y := float32(math.Cos(elRad) * math.Sin(azRad))
	z := float32(math.Sin(elRad))

	return mgl32.Vec3{x, y, z}
}
