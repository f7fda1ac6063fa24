package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// falloffEpsilon guards the distance falloff against division by zero.
const falloffEpsilon = 0.01

// PointLight represents a single point light source.
type PointLight struct {
	Position mgl32.Vec3 // World position
	Color    mgl32.Vec3 // RGB color (0-1 range)
	Radius   float32    // Falloff radius
}

// PointLightBuffer mirrors the std140 uniform block layout the GPU
// renderer consumes: one vec4 per light for positions and colors, radii
// packed four per vec4. Slots at or beyond Count are never read.
type PointLightBuffer struct {
	Positions [MaxPointLights]mgl32.Vec4
	Colors    [MaxPointLights]mgl32.Vec4
	Radii     [MaxPointLights / 4]mgl32.Vec4
	Count     int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	*b = PointLightBuffer{}
}

// AddLight appends a point light to the buffer.
// Returns false if the buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	i := b.Count
	b.Positions[i] = light.Position.Vec4(1)
	b.Colors[i] = light.Color.Vec4(1)
	b.Radii[i/4][i%4] = light.Radius
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	for _, l := range lights {
		if !b.AddLight(l) {
			return
		}
	}
}

// Radius returns the falloff radius of light i, reading through the
// packed four-per-vec4 layout.
func (b *PointLightBuffer) Radius(i int) float32 {
	return b.Radii[i/4][i%4]
}

// Light unpacks slot i back into a PointLight.
func (b *PointLightBuffer) Light(i int) PointLight {
	return PointLight{
		Position: b.Positions[i].Vec3(),
		Color:    b.Colors[i].Vec3(),
		Radius:   b.Radius(i),
	}
}

// Falloff computes the distance attenuation radius^2 / (dist^2 + 0.01).
// The value exceeds 1 inside the radius and is not clamped.
func Falloff(radius, dist float32) float32 {
	return radius * radius / (dist*dist + falloffEpsilon)
}
