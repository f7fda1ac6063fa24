// Package renderer evaluates the shading pipeline into a framebuffer.
package renderer

import (
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sunshade/internal/engine/camera"
	"github.com/Faultbox/sunshade/internal/engine/framebuffer"
	"github.com/Faultbox/sunshade/internal/engine/picking"
	"github.com/Faultbox/sunshade/internal/engine/scene"
	"github.com/Faultbox/sunshade/internal/engine/shading"
	"github.com/Faultbox/sunshade/internal/engine/sky"
	"github.com/Faultbox/sunshade/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	TileSize   int
	NumWorkers int // 0 = use CPU count
	ClearColor mgl32.Vec4
}

// DefaultConfig returns a default renderer configuration.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     720,
		TileSize:   64,
		NumWorkers: 0,
		ClearColor: mgl32.Vec4{0.1, 0.1, 0.15, 1.0},
	}
}

// Stats summarizes one rendered frame.
type Stats struct {
	Rays         int
	PixelsShaded int
	Duration     time.Duration
}

// Renderer shades frames tile by tile across a pool of workers.
type Renderer struct {
	config Config
}

// New creates a renderer, substituting defaults for out-of-range settings.
func New(cfg Config) *Renderer {
	if cfg.TileSize < 1 {
		cfg.TileSize = 64
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	return &Renderer{config: cfg}
}

// Config returns the effective renderer configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// tile is a pixel rectangle; upper bounds are exclusive.
type tile struct {
	x0, y0, x1, y1 int
}

// Render shades the scene into the framebuffer using the given frame
// state and camera matrices. The frame state must not be mutated while
// Render runs; workers share it read-only.
func (r *Renderer) Render(fb *framebuffer.Framebuffer, sc *scene.Scene, fr *shading.Frame, view, proj mgl32.Mat4) Stats {
	start := time.Now()
	width, height := fb.Size()
	invVP := proj.Mul4(view).Inv()

	tilesX := (width + r.config.TileSize - 1) / r.config.TileSize
	tilesY := (height + r.config.TileSize - 1) / r.config.TileSize

	tiles := make(chan tile, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			t := tile{
				x0: tx * r.config.TileSize,
				y0: ty * r.config.TileSize,
				x1: (tx + 1) * r.config.TileSize,
				y1: (ty + 1) * r.config.TileSize,
			}
			if t.x1 > width {
				t.x1 = width
			}
			if t.y1 > height {
				t.y1 = height
			}
			tiles <- t
		}
	}
	close(tiles)

	results := make(chan Stats, r.config.NumWorkers)
	var wg sync.WaitGroup
	for i := 0; i < r.config.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local Stats
			for t := range tiles {
				st := r.renderTile(fb, sc, fr, invVP, t, width, height)
				local.Rays += st.Rays
				local.PixelsShaded += st.PixelsShaded
			}
			results <- local
		}()
	}
	wg.Wait()
	close(results)

	var stats Stats
	for st := range results {
		stats.Rays += st.Rays
		stats.PixelsShaded += st.PixelsShaded
	}
	stats.Duration = time.Since(start)

	logger.Debug("frame rendered",
		zap.Int("rays", stats.Rays),
		zap.Int("pixels_shaded", stats.PixelsShaded),
		zap.Duration("duration", stats.Duration),
		zap.Int("workers", r.config.NumWorkers),
	)

	return stats
}

// renderTile traces the primary ray for every pixel of a tile. Tiles
// never overlap, so workers write disjoint framebuffer regions.
func (r *Renderer) renderTile(fb *framebuffer.Framebuffer, sc *scene.Scene, fr *shading.Frame, invVP mgl32.Mat4, t tile, width, height int) Stats {
	var st Stats
	for y := t.y0; y < t.y1; y++ {
		for x := t.x0; x < t.x1; x++ {
			ray := picking.ScreenToRay(float32(x)+0.5, float32(y)+0.5, float32(width), float32(height), invVP)
			st.Rays++

			hit, ok := sc.Intersect(ray, 0, camera.FarPlane)
			if !ok {
				fb.SetPixel(x, y, r.background(fr, ray.Direction))
				continue
			}

			pt := sc.SurfacePoint(hit, fr.CameraPos)
			mat := sc.Material(hit.Instance).SampleAt(hit.UV)
			fb.SetPixel(x, y, shading.Shade(fr, pt, mat))
			st.PixelsShaded++
		}
	}
	return st
}

func (r *Renderer) background(fr *shading.Frame, dir mgl32.Vec3) mgl32.Vec4 {
	if fr.Sky != nil {
		return fr.Sky.Sample(sky.SkyVector(dir), 0).Vec4(1)
	}
	return r.config.ClearColor
}
