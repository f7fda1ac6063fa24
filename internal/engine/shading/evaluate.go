package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/lighting"
	"github.com/Faultbox/sunshade/internal/engine/material"
	"github.com/Faultbox/sunshade/internal/engine/shadow"
)

// Shade evaluates the final RGBA color of one surface point against the
// frame snapshot. Alpha passes the material alpha through in both
// reflectance models.
func Shade(fr *Frame, pt SurfacePoint, mat material.Sample) mgl32.Vec4 {
	cfg := fr.Config

	// Resolve the shading normal. The simplified path drops normal
	// mapping past its cutoff distance.
	normal := pt.Normal
	if cfg.ComplexNormals && mat.HasNormal &&
		!(cfg.Simplified && pt.ViewDepth >= normalMapMaxDepth) {
		normal = pt.ApplyNormalMap(mat.Normal)
	}

	toView := fr.CameraPos.Sub(pt.Position)
	if l := toView.Len(); l > 1e-6 {
		toView = toView.Mul(1 / l)
	} else {
		toView = normal
	}

	// Sun shadowing: cascade selection, then the atlas PCF.
	ndotl := normal.Dot(fr.Sun.Direction)
	if ndotl < 0 {
		ndotl = 0
	}
	cascadeIndex := -1
	var occlusion float32
	if fr.Cascades != nil && fr.Atlas != nil {
		var shadowPos mgl32.Vec3
		cascadeIndex, shadowPos = fr.Cascades.Select(pt.Position, pt.ViewDepth)
		if cascadeIndex >= 0 {
			occlusion = shadow.Occlusion(fr.Atlas, fr.Cascades.Count(), cascadeIndex, shadowPos, cfg.Shadow, ndotl)
		}
	}

	if cfg.Debug != DebugNone {
		return debugColor(cfg.Debug, pt, mat, normal, cascadeIndex, occlusion)
	}

	shadowFactor := shadow.Factor(occlusion, fr.ShadowIntensity)

	roughness := mgl32.Clamp(mat.Roughness, 0, 1)
	shininess := cfg.Shininess(roughness)
	allowSpecular := !(cfg.Simplified && pt.ViewDepth >= specularMaxDepth)

	// Sun term.
	r := BlinnPhong(normal, toView, fr.Sun.Direction, shininess)
	if cfg.Model == ModelToon {
		r = Toon(r, roughness)
	}
	if !allowSpecular {
		r.Specular = 0
	}
	light := fr.Sun.Color.Mul((r.Diffuse + r.Specular) * shadowFactor)

	// Flat ambient and the sky reflection.
	light = light.Add(mgl32.Vec3{fr.AmbientStrength, fr.AmbientStrength, fr.AmbientStrength})
	light = light.Add(fr.Sky.Contribution(toView.Mul(-1), normal, 1-roughness))

	// Point lights. Slots beyond the active count are never read.
	if fr.Lights != nil {
		for i := 0; i < fr.Lights.Count; i++ {
			pl := fr.Lights.Light(i)
			toLight := pl.Position.Sub(pt.Position)
			dist := toLight.Len()
			if dist > 1e-6 {
				toLight = toLight.Mul(1 / dist)
			} else {
				toLight = normal
			}

			falloff := lighting.Falloff(pl.Radius, dist)
			pr := BlinnPhong(normal, toView, toLight, shininess)
			if cfg.Model == ModelToon {
				pr = Toon(pr, roughness)
				falloff = ToonFalloff(falloff)
			}
			if !allowSpecular {
				pr.Specular = 0
			}
			light = light.Add(pl.Color.Mul((pr.Diffuse + pr.Specular) * falloff))
		}
	}

	rgb := mulVec3(light, mat.Albedo.Vec3())

	// The rim overlay is additive and never suppresses the base color.
	if fr.highlighted(pt) {
		rgb = rgb.Add(RimTerm(toView, normal, fr.Time))
	}

	return rgb.Vec4(mat.Albedo.W())
}

// mulVec3 is the component-wise product.
func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
