package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/shadow"
)

// Model selects the reflectance model.
type Model int

const (
	ModelSmooth Model = iota
	ModelToon
)

// DebugMode selects a diagnostic output in place of the lit color.
type DebugMode int

const (
	DebugNone DebugMode = iota
	DebugAlbedo
	DebugNormals
	DebugCascades
	DebugShadowed
	DebugLODZones
)

// ResolveDebugFlags folds the renderer's independent debug switches
// into one mode with a fixed precedence: albedo wins over normals,
// normals over cascade zones, cascade zones over shadow coverage.
func ResolveDebugFlags(albedo, normals, cascades, shadowed bool) DebugMode {
	switch {
	case albedo:
		return DebugAlbedo
	case normals:
		return DebugNormals
	case cascades:
		return DebugCascades
	case shadowed:
		return DebugShadowed
	default:
		return DebugNone
	}
}

// Feature cutoff distances for the simplified path. They coincide with
// the LOD band edges: normal mapping stops at the second edge, specular
// at the third.
const (
	normalMapMaxDepth = 40
	specularMaxDepth  = 170
)

// Config carries the stable shading switches, threaded explicitly
// through every evaluation.
type Config struct {
	Model          Model
	ComplexNormals bool // apply tangent-space normal maps
	Simplified     bool // drop normal mapping and specular at distance
	Debug          DebugMode
	ShininessLower float32
	ShininessUpper float32
	Shadow         shadow.Params
}

// DefaultConfig returns the smooth model with normal mapping on and the
// default shadow filtering.
func DefaultConfig() Config {
	return Config{
		Model:          ModelSmooth,
		ComplexNormals: true,
		ShininessLower: 8,
		ShininessUpper: 128,
		Shadow:         shadow.DefaultParams(),
	}
}

// Shininess maps a roughness value to the Blinn-Phong exponent:
// lower bound at full roughness, upper bound at zero.
func (c Config) Shininess(roughness float32) float32 {
	t := 1 - mgl32.Clamp(roughness, 0, 1)
	return c.ShininessLower + (c.ShininessUpper-c.ShininessLower)*t
}
