package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/engine/material"
)

// cascadePalette colors the cascade-zone and LOD-zone views, nearest
// zone first: red, orange, green, magenta.
var cascadePalette = [4]mgl32.Vec3{
	{1, 0, 0},
	{1, 0.5, 0},
	{0, 1, 0},
	{1, 0, 1},
}

// lodBandEdges are the view-distance edges of the five LOD bands.
var lodBandEdges = [4]float32{20, 40, 170, 240}

// LODBand returns the band index 0..4 for a view depth.
func LODBand(depth float32) int {
	for i, edge := range lodBandEdges {
		if depth < edge {
			return i
		}
	}
	return len(lodBandEdges)
}

// CascadeZoneColor returns the diagnostic color for a cascade index:
// black for -1, the palette for 0-3, gray past the palette.
func CascadeZoneColor(index int) mgl32.Vec3 {
	if index < 0 {
		return mgl32.Vec3{}
	}
	if index >= len(cascadePalette) {
		return mgl32.Vec3{0.5, 0.5, 0.5}
	}
	return cascadePalette[index]
}

// LODZoneColor returns the diagnostic color for an LOD band, reusing
// the cascade palette with gray for the far band.
func LODZoneColor(band int) mgl32.Vec3 {
	if band < 0 {
		return mgl32.Vec3{}
	}
	if band >= len(cascadePalette) {
		return mgl32.Vec3{0.5, 0.5, 0.5}
	}
	return cascadePalette[band]
}

// debugColor renders the active diagnostic mode for one point. Debug
// output is always opaque.
func debugColor(mode DebugMode, pt SurfacePoint, mat material.Sample, normal mgl32.Vec3, cascadeIndex int, occlusion float32) mgl32.Vec4 {
	switch mode {
	case DebugAlbedo:
		return mat.Albedo.Vec3().Vec4(1)
	case DebugNormals:
		return normal.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5}).Vec4(1)
	case DebugCascades:
		return CascadeZoneColor(cascadeIndex).Vec4(1)
	case DebugShadowed:
		return mgl32.Vec3{occlusion, occlusion, occlusion}.Vec4(1)
	case DebugLODZones:
		return LODZoneColor(LODBand(pt.ViewDepth)).Vec4(1)
	}
	return mgl32.Vec4{0, 0, 0, 1}
}
