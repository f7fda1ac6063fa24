package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Toon quantization bands.
const (
	toonDiffuseLo  = 0.35
	toonDiffuseHi  = 0.45
	toonSpecularLo = 0.8
	toonSpecularHi = 0.9
	toonFalloffLo  = 0.2
	toonFalloffHi  = 0.3

	// Above this roughness the toon model shows no highlight at all.
	toonRoughnessCutoff = 0.95
)

// Reflectance is the scalar diffuse and specular response of a surface
// to one light.
type Reflectance struct {
	Diffuse  float32
	Specular float32
}

// BlinnPhong evaluates the smooth model: Lambert diffuse and a specular
// lobe around the half vector. toView and toLight point away from the
// surface and must be unit length.
func BlinnPhong(normal, toView, toLight mgl32.Vec3, shininess float32) Reflectance {
	r := Reflectance{}
	if d := normal.Dot(toLight); d > 0 {
		r.Diffuse = d
	}

	half := toView.Add(toLight)
	if l := half.Len(); l > 1e-6 {
		half = half.Mul(1 / l)
		if d := normal.Dot(half); d > 0 {
			r.Specular = pow32(d, shininess)
		}
	}
	return r
}

// Toon quantizes a smooth reflectance into hard bands. Fully rough
// surfaces lose their specular entirely.
func Toon(r Reflectance, roughness float32) Reflectance {
	out := Reflectance{
		Diffuse: Smoothstep(toonDiffuseLo, toonDiffuseHi, r.Diffuse),
	}
	if roughness <= toonRoughnessCutoff {
		out.Specular = Smoothstep(toonSpecularLo, toonSpecularHi, r.Specular)
	}
	return out
}

// ToonFalloff quantizes a point-light falloff value so toon lights cut
// off in a band instead of bleeding softly.
func ToonFalloff(falloff float32) float32 {
	return Smoothstep(toonFalloffLo, toonFalloffHi, falloff)
}

// Smoothstep is the GLSL smoothstep: 0 at or below edge0, 1 at or above
// edge1, Hermite-interpolated between.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func pow32(base, exp float32) float32 {
	return float32(gomath.Pow(float64(base), float64(exp)))
}
