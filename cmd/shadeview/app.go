package main

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sunshade/internal/assets"
	"github.com/Faultbox/sunshade/internal/config"
	"github.com/Faultbox/sunshade/internal/engine/camera"
	"github.com/Faultbox/sunshade/internal/engine/debug"
	"github.com/Faultbox/sunshade/internal/engine/framebuffer"
	"github.com/Faultbox/sunshade/internal/engine/input"
	"github.com/Faultbox/sunshade/internal/engine/lighting"
	"github.com/Faultbox/sunshade/internal/engine/picking"
	"github.com/Faultbox/sunshade/internal/engine/renderer"
	"github.com/Faultbox/sunshade/internal/engine/scene"
	"github.com/Faultbox/sunshade/internal/engine/shader"
	"github.com/Faultbox/sunshade/internal/engine/shading"
	"github.com/Faultbox/sunshade/internal/engine/shadow"
	"github.com/Faultbox/sunshade/internal/engine/window"
	"github.com/Faultbox/sunshade/internal/logger"
)

// App is the interactive viewer: every frame the scene is shaded on the
// CPU into a framebuffer and presented through a fullscreen blit.
//
// Keys: WASD/QE move, TAB toggles mouselook, left click picks an
// instance for the rim highlight, M switches the reflectance model,
// N toggles normal mapping, P toggles the simplified path, 1-5 toggle
// debug views, 0 clears them, R refits the shadow cascades, F12 saves
// a screenshot, ESC quits.
type App struct {
	config  *config.Config
	running bool

	window *window.Window
	blit   *shader.Blit
	input  *input.Input

	cam   *camera.FlyCamera
	rend  *renderer.Renderer
	fb    *framebuffer.Framebuffer
	sc    *scene.Scene
	frame *shading.Frame

	capture *debug.ScreenshotCapture

	// Debug switches folded into the frame config each frame.
	debugAlbedo   bool
	debugNormals  bool
	debugCascades bool
	debugShadowed bool
	debugLODZones bool

	mouselook bool
	start     time.Time
}

// NewApp wires the window, presenter, and render state from config.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		start:  time.Now(),
	}

	// Create window (this also creates the OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      "Sunshade",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Initialize OpenGL (the blit needs a live context)
	if err := gl.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	a.blit, err = shader.NewBlit()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create blit: %w", err)
	}

	a.input = input.New()
	a.cam = camera.NewFlyCamera()

	// Size the render target from the drawable, not the config: a
	// fullscreen window may not get the requested mode.
	fbW, fbH := a.window.DrawableSize()
	a.fb = framebuffer.New(fbW, fbH)
	a.rend = renderer.New(renderer.Config{
		Width:      fbW,
		Height:     fbH,
		TileSize:   cfg.Graphics.TileSize,
		NumWorkers: cfg.Graphics.Workers,
		ClearColor: mgl32.Vec4{0.1, 0.1, 0.15, 1},
	})
	a.sc = scene.BuildDemo()
	a.frame = buildFrame(cfg)
	a.capture = debug.NewScreenshotCapture("screenshots", "sunshade")

	// Sky faces are optional; misses fall back to the clear color.
	if cfg.Sky.Enabled {
		mgr := assets.NewManager()
		if err := mgr.AddRoot(cfg.Sky.Dir); err != nil {
			logger.Warn("sky asset root unavailable", zap.Error(err))
		} else if cube, err := mgr.LoadSky(cfg.Sky.Prefix, cfg.Sky.Ext); err != nil {
			logger.Warn("sky disabled", zap.Error(err))
		} else {
			a.frame.Sky = cube
		}
	}

	a.refitShadows()

	logger.Info("viewer initialized",
		zap.Int("width", fbW),
		zap.Int("height", fbH),
		zap.Int("instances", len(a.sc.Instances)),
	)
	return a, nil
}

// buildFrame converts the configuration into the per-frame shading state.
func buildFrame(cfg *config.Config) *shading.Frame {
	fr := shading.NewFrame()
	fr.Sun = lighting.Sun{
		Direction: lighting.SunDirection(cfg.Sun.Azimuth, cfg.Sun.Elevation),
		Color:     mgl32.Vec3{cfg.Sun.Color[0], cfg.Sun.Color[1], cfg.Sun.Color[2]},
	}
	fr.AmbientStrength = cfg.Shading.AmbientStrength
	fr.ShadowIntensity = cfg.Shadow.Intensity

	fr.Config.Model = shading.ModelSmooth
	if cfg.Shading.Model == "toon" {
		fr.Config.Model = shading.ModelToon
	}
	fr.Config.ComplexNormals = cfg.Shading.ComplexNormals
	fr.Config.Simplified = cfg.Shading.Simplified
	fr.Config.ShininessLower = cfg.Shading.ShininessLower
	fr.Config.ShininessUpper = cfg.Shading.ShininessUpper
	fr.Config.Shadow = shadow.Params{
		KernelBound: cfg.Shadow.KernelBound,
		Bias:        cfg.Shadow.Bias,
		SlopeBias:   cfg.Shadow.SlopeBias,
	}

	if len(cfg.Lights) > 0 {
		lights := make([]lighting.PointLight, 0, len(cfg.Lights))
		for _, l := range cfg.Lights {
			lights = append(lights, lighting.PointLight{
				Position: mgl32.Vec3{l.Position[0], l.Position[1], l.Position[2]},
				Color:    mgl32.Vec3{l.Color[0], l.Color[1], l.Color[2]},
				Radius:   l.Radius,
			})
		}
		buf := lighting.NewPointLightBuffer()
		buf.SetLights(lights)
		fr.Lights = buf
	}
	return fr
}

// refitShadows fits the cascades to the current camera pose and rebakes
// the shadow atlas. The cascades then stay fixed until the next refit,
// so geometry far from the fitted volumes simply renders unshadowed.
func (a *App) refitShadows() {
	w, h := a.fb.Size()
	aspect := float32(w) / float32(h)
	distances := shadow.DefaultDistances(a.config.Shadow.Cascades)
	a.frame.Cascades = shadow.BuildCascades(
		a.cam.Position, a.cam.Forward(), a.frame.Sun.Direction,
		a.cam.FovY, aspect, distances, shadow.MetricViewDistance,
	)

	start := time.Now()
	a.frame.Atlas = scene.BakeShadowAtlas(a.sc, a.frame.Cascades, a.config.Shadow.Resolution)
	logger.Info("shadow atlas baked",
		zap.Int("cascades", a.frame.Cascades.Count()),
		zap.Int("resolution", a.config.Shadow.Resolution),
		zap.Duration("took", time.Since(start)),
	)
}

// Run starts the main viewer loop.
func (a *App) Run() error {
	a.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for a.running {
		// Calculate delta time
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}

		// Handle events
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.resize(event.Width, event.Height)
			case input.EventKeyDown:
				a.handleKey(event.Key)
			case input.EventMouseMove:
				if a.mouselook {
					a.cam.HandleLook(float32(event.RelX), float32(event.RelY))
				}
			case input.EventMouseDown:
				if event.Button == sdl.BUTTON_LEFT && !a.mouselook {
					a.pick(event.MouseX, event.MouseY)
				}
			}
		}

		// 2. Apply held-key movement
		a.move(dt)

		// 3. Render and present
		a.render()
		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.blit != nil {
		a.blit.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// handleKey dispatches one-shot key bindings.
func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_TAB:
		a.mouselook = !a.mouselook
		a.window.SetRelativeMouseMode(a.mouselook)
	case sdl.SCANCODE_M:
		if a.frame.Config.Model == shading.ModelSmooth {
			a.frame.Config.Model = shading.ModelToon
		} else {
			a.frame.Config.Model = shading.ModelSmooth
		}
	case sdl.SCANCODE_N:
		a.frame.Config.ComplexNormals = !a.frame.Config.ComplexNormals
	case sdl.SCANCODE_P:
		a.frame.Config.Simplified = !a.frame.Config.Simplified
	case sdl.SCANCODE_R:
		a.refitShadows()
	case sdl.SCANCODE_F12:
		a.screenshot()
	case sdl.SCANCODE_1:
		a.debugAlbedo = !a.debugAlbedo
	case sdl.SCANCODE_2:
		a.debugNormals = !a.debugNormals
	case sdl.SCANCODE_3:
		a.debugCascades = !a.debugCascades
	case sdl.SCANCODE_4:
		a.debugShadowed = !a.debugShadowed
	case sdl.SCANCODE_5:
		a.debugLODZones = !a.debugLODZones
	case sdl.SCANCODE_0:
		a.debugAlbedo = false
		a.debugNormals = false
		a.debugCascades = false
		a.debugShadowed = false
		a.debugLODZones = false
	}
	a.updateTitle()
}

// debugMode folds the independent debug switches, albedo first; the
// LOD zone view applies only with no other view active.
func (a *App) debugMode() shading.DebugMode {
	mode := shading.ResolveDebugFlags(a.debugAlbedo, a.debugNormals, a.debugCascades, a.debugShadowed)
	if mode == shading.DebugNone && a.debugLODZones {
		mode = shading.DebugLODZones
	}
	return mode
}

// updateTitle reflects the active model and debug view in the title bar.
func (a *App) updateTitle() {
	model := "smooth"
	if a.frame.Config.Model == shading.ModelToon {
		model = "toon"
	}
	title := "Sunshade [" + model + "]"
	if mode := a.debugMode(); mode != shading.DebugNone {
		title += " debug:" + debugName(mode)
	}
	a.window.SetTitle(title)
}

func debugName(m shading.DebugMode) string {
	switch m {
	case shading.DebugAlbedo:
		return "albedo"
	case shading.DebugNormals:
		return "normals"
	case shading.DebugCascades:
		return "cascades"
	case shading.DebugShadowed:
		return "shadowed"
	case shading.DebugLODZones:
		return "lod"
	default:
		return "none"
	}
}

// move applies held-key movement along the camera basis.
func (a *App) move(dt float32) {
	forward := a.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := a.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	up := a.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E)
	if forward != 0 || right != 0 || up != 0 {
		a.cam.HandleMovement(forward, right, up, dt)
	}
}

// resize tracks the window size in the framebuffer and GL viewport.
func (a *App) resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	fbW, fbH := a.window.DrawableSize()
	a.fb.Resize(fbW, fbH)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	logger.Debug("window resized", zap.Int("width", fbW), zap.Int("height", fbH))
}

// render shades the frame on the CPU and presents it.
func (a *App) render() {
	a.frame.Config.Debug = a.debugMode()
	a.frame.CameraPos = a.cam.Position
	a.frame.Time = float32(time.Since(a.start).Seconds())

	w, h := a.fb.Size()
	view := a.cam.ViewMatrix()
	proj := a.cam.Projection(float32(w) / float32(h))
	a.rend.Render(a.fb, a.sc, a.frame, view, proj)

	a.blit.Upload(w, h, a.fb.Bytes())
	a.blit.Draw()
}

// pick casts a ray through the clicked pixel and moves the rim
// highlight to the hit instance. Clicking it again, or empty space,
// clears the highlight.
func (a *App) pick(mx, my int) {
	w, h := a.fb.Size()
	view := a.cam.ViewMatrix()
	proj := a.cam.Projection(float32(w) / float32(h))
	inv := proj.Mul4(view).Inv()

	ray := picking.ScreenToRay(float32(mx)+0.5, float32(my)+0.5, float32(w), float32(h), inv)
	hit, ok := a.sc.Intersect(ray, 0, camera.FarPlane)
	if !ok || a.frame.Highlighted == hit.Instance {
		a.frame.Highlighted = -1
		return
	}

	a.frame.Highlighted = hit.Instance
	logger.Info("instance picked",
		zap.String("name", a.sc.Instances[hit.Instance].Name),
		zap.Int32("instance", hit.Instance),
	)
}

// screenshot saves the current framebuffer as a PNG.
func (a *App) screenshot() {
	path, err := a.capture.Capture(a.fb)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
