package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/lighting"
	"github.com/Faultbox/sunshade/internal/engine/shadow"
	"github.com/Faultbox/sunshade/internal/engine/sky"
	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// Frame is the per-frame evaluation snapshot: configuration, camera,
// lights, and the shared read-only resources. The orchestration layer
// publishes a consistent Frame before evaluation and must not mutate it
// until the pass completes. Nil resources degrade gracefully: no
// cascades or atlas means no shadowing, no sky map means no sky term,
// no light buffer means no point lights.
type Frame struct {
	Config Config

	CameraPos       mgl32.Vec3
	Sun             lighting.Sun
	AmbientStrength float32
	ShadowIntensity float32
	Time            float32
	Highlighted     int32 // instance id receiving the rim highlight, -1 none

	Cascades *shadow.CascadeSet
	Atlas    *texture.DepthMap
	Lights   *lighting.PointLightBuffer
	Sky      *sky.CubeMap
}

// NewFrame returns a frame with the default config, sun, and no bound
// resources.
func NewFrame() *Frame {
	return &Frame{
		Config:          DefaultConfig(),
		Sun:             lighting.DefaultSun(),
		AmbientStrength: 0.2,
		ShadowIntensity: 0.65,
		Highlighted:     -1,
	}
}
