// shadetool is a CLI utility for the sunshade pipeline: offline renders
// of the demo scene, frame snapshot capture, and snapshot replay.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunshade/internal/config"
	"github.com/Faultbox/sunshade/internal/engine/camera"
	"github.com/Faultbox/sunshade/internal/engine/framebuffer"
	"github.com/Faultbox/sunshade/internal/engine/lighting"
	"github.com/Faultbox/sunshade/internal/engine/renderer"
	"github.com/Faultbox/sunshade/internal/engine/scene"
	"github.com/Faultbox/sunshade/internal/engine/shading"
	"github.com/Faultbox/sunshade/internal/engine/shadow"
	"github.com/Faultbox/sunshade/internal/engine/texture"
	"github.com/Faultbox/sunshade/internal/logger"
	"github.com/Faultbox/sunshade/pkg/snapshot"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render":
		cmdRender(args)
	case "bake":
		cmdBake(args)
	case "replay":
		cmdReplay(args)
	case "info":
		cmdInfo(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shadetool - sunshade render pipeline utility

Usage:
  shadetool <command> [options]

Commands:
  render [options]                Render the demo scene to a PNG
  bake [options]                  Capture a frame snapshot of the demo scene
  replay [options] <file.snap>    Re-render a snapshot to a PNG
  info <file.snap>                Show snapshot contents
  config [options]                Write the default config file for editing

Snapshots freeze the shading inputs (switches, sun, clock, cascades,
lights, shadow atlas) but not the camera; bake and replay both use the
stock demo camera so a replay reproduces the baked image.

Examples:
  shadetool render -model toon -o toon.png
  shadetool bake -config config.yaml -o frame.snap
  shadetool replay -o replay.png frame.snap
  shadetool info frame.snap`)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (defaults apply when empty)")
	out := fs.String("o", "render.png", "Output PNG path")
	width := fs.Int("width", 0, "Override render width")
	height := fs.Int("height", 0, "Override render height")
	model := fs.String("model", "", "Override reflectance model (smooth or toon)")
	debugView := fs.String("debug", "", "Debug view: albedo, normals, cascades, shadowed or lod")
	clock := fs.Float64("time", 0, "Animation clock in seconds (drives the rim highlight)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	initLogging(*verbose)

	cfg := loadConfig(*configPath)
	if *width > 0 {
		cfg.Graphics.Width = *width
	}
	if *height > 0 {
		cfg.Graphics.Height = *height
	}
	if *model != "" {
		if *model != "smooth" && *model != "toon" {
			fmt.Fprintf(os.Stderr, "Unknown model: %s\n", *model)
			os.Exit(1)
		}
		cfg.Shading.Model = *model
	}

	sc := scene.BuildDemo()
	cam := camera.NewFlyCamera()
	fr := frameFromConfig(cfg)
	fr.CameraPos = cam.Position
	fr.Time = float32(*clock)
	if *debugView != "" {
		mode, err := parseDebugView(*debugView)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fr.Config.Debug = mode
	}

	fitShadows(cfg, cam, fr, sc)

	rcfg := renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		TileSize:   cfg.Graphics.TileSize,
		NumWorkers: cfg.Graphics.Workers,
		ClearColor: mgl32.Vec4{0.1, 0.1, 0.15, 1},
	}
	stats, err := renderToPNG(sc, fr, cam, rcfg, *out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered: %s (%dx%d, %d pixels shaded, %v)\n",
		*out, cfg.Graphics.Width, cfg.Graphics.Height, stats.PixelsShaded, stats.Duration)
}

func cmdBake(args []string) {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (defaults apply when empty)")
	out := fs.String("o", "frame.snap", "Output snapshot path")
	includeAtlas := fs.Bool("atlas", true, "Include the baked shadow atlas")
	clock := fs.Float64("time", 0, "Clock value stored in the snapshot (seconds)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	initLogging(*verbose)

	cfg := loadConfig(*configPath)
	sc := scene.BuildDemo()
	cam := camera.NewFlyCamera()
	fr := frameFromConfig(cfg)
	fr.CameraPos = cam.Position
	fr.Time = float32(*clock)
	fitShadows(cfg, cam, fr, sc)

	snap := snapshotFromFrame(fr)
	if !*includeAtlas {
		snap.Atlas = nil
	}

	if err := snap.EncodeFile(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Captured: %s (%d cascades, %d lights", *out,
		len(snap.Cascades.Matrices), snap.Lights.Count)
	if snap.Atlas != nil {
		fmt.Printf(", %dx%d atlas", snap.Atlas.Width, snap.Atlas.Height)
	}
	fmt.Println(")")
}

func cmdReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	out := fs.String("o", "replay.png", "Output PNG path")
	width := fs.Int("width", 1280, "Render width")
	height := fs.Int("height", 720, "Render height")
	workers := fs.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shadetool replay [options] <file.snap>")
		os.Exit(1)
	}

	initLogging(*verbose)

	snap, err := snapshot.DecodeFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc := scene.BuildDemo()
	cam := camera.NewFlyCamera()
	fr := frameFromSnapshot(snap)
	fr.CameraPos = cam.Position

	rcfg := renderer.DefaultConfig()
	rcfg.Width = *width
	rcfg.Height = *height
	rcfg.NumWorkers = *workers
	stats, err := renderToPNG(sc, fr, cam, rcfg, *out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replayed: %s -> %s (%v)\n", fs.Arg(0), *out, stats.Duration)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shadetool info <file.snap>")
		os.Exit(1)
	}

	snap, err := snapshot.DecodeFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kb := int(snap.Config.KernelBound)
	fmt.Printf("Snapshot: %s\n", args[0])
	fmt.Printf("Version:  %s\n", snap.Version)
	fmt.Printf("Clock:    %.3fs\n", snap.Time)
	fmt.Println()

	fmt.Println("Shading:")
	fmt.Printf("  model        %s\n", modelName(snap.Config.Model))
	fmt.Printf("  debug        %s\n", debugViewName(snap.Config.Debug))
	fmt.Printf("  normal maps  %s\n", onOff(snap.Config.ComplexNormals))
	fmt.Printf("  simplified   %s\n", onOff(snap.Config.Simplified))
	fmt.Printf("  shininess    %g-%g\n", snap.Config.ShininessLower, snap.Config.ShininessUpper)
	fmt.Printf("  ambient      %.2f\n", snap.Config.AmbientStrength)
	if snap.Config.Highlighted >= 0 {
		fmt.Printf("  highlight    instance %d\n", snap.Config.Highlighted)
	}
	fmt.Println()

	d := snap.Sun.Direction
	c := snap.Sun.Color
	fmt.Println("Sun:")
	fmt.Printf("  direction    (%.3f, %.3f, %.3f)\n", d.X(), d.Y(), d.Z())
	fmt.Printf("  color        (%.2f, %.2f, %.2f)\n", c.X(), c.Y(), c.Z())
	fmt.Println()

	fmt.Println("Shadow:")
	fmt.Printf("  intensity    %.2f\n", snap.Config.ShadowIntensity)
	fmt.Printf("  kernel       %dx%d\n", 2*kb+1, 2*kb+1)
	fmt.Printf("  bias         %g (slope %g)\n", snap.Config.Bias, snap.Config.SlopeBias)
	fmt.Printf("  cascades     %d (%s)\n", len(snap.Cascades.Matrices), metricName(snap.Cascades.Metric))
	for i, dist := range snap.Cascades.Distances {
		fmt.Printf("    %d: up to %.1f\n", i, dist)
	}
	if snap.Atlas != nil {
		fmt.Printf("  atlas        %dx%d\n", snap.Atlas.Width, snap.Atlas.Height)
	} else {
		fmt.Println("  atlas        not captured")
	}
	fmt.Println()

	fmt.Printf("Lights: %d\n", snap.Lights.Count)
	for i := 0; i < int(snap.Lights.Count); i++ {
		p := snap.Lights.Positions[i]
		col := snap.Lights.Colors[i]
		fmt.Printf("  %d: pos (%.1f, %.1f, %.1f) color (%.2f, %.2f, %.2f) radius %.1f\n",
			i, p.X(), p.Y(), p.Z(), col.X(), col.Y(), col.Z(), snap.Lights.Radius(i))
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "config.yaml", "Output config path")
	fs.Parse(args)

	cfg := config.Default()
	if err := cfg.SaveTo(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote default config: %s\n", *out)
}

// initLogging wires zap for verbose mode; by default the engine logs are
// dropped so command output stays clean.
func initLogging(verbose bool) {
	if !verbose {
		logger.Nop()
		return
	}
	if err := logger.Init("debug", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the tool configuration: defaults, optionally
// overridden by an explicit file.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// frameFromConfig converts the configuration into per-frame shading state.
func frameFromConfig(cfg *config.Config) *shading.Frame {
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

// fitShadows fits the cascades to the camera pose and bakes the atlas.
func fitShadows(cfg *config.Config, cam *camera.FlyCamera, fr *shading.Frame, sc *scene.Scene) {
	aspect := float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)
	distances := shadow.DefaultDistances(cfg.Shadow.Cascades)
	fr.Cascades = shadow.BuildCascades(
		cam.Position, cam.Forward(), fr.Sun.Direction,
		cam.FovY, aspect, distances, shadow.MetricViewDistance,
	)
	fr.Atlas = scene.BakeShadowAtlas(sc, fr.Cascades, cfg.Shadow.Resolution)
}

// renderToPNG shades the scene into a fresh framebuffer and writes it out.
func renderToPNG(sc *scene.Scene, fr *shading.Frame, cam *camera.FlyCamera, rcfg renderer.Config, outPath string) (renderer.Stats, error) {
	fb := framebuffer.New(rcfg.Width, rcfg.Height)
	rend := renderer.New(rcfg)

	view := cam.ViewMatrix()
	proj := cam.Projection(float32(rcfg.Width) / float32(rcfg.Height))
	stats := rend.Render(fb, sc, fr, view, proj)

	f, err := os.Create(outPath)
	if err != nil {
		return stats, err
	}
	if err := fb.WritePNG(f); err != nil {
		f.Close()
		return stats, err
	}
	return stats, f.Close()
}

// snapshotFromFrame freezes the frame state into a snapshot.
func snapshotFromFrame(fr *shading.Frame) *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		Config: snapshot.Config{
			Model:           uint8(fr.Config.Model),
			Debug:           uint8(fr.Config.Debug),
			ComplexNormals:  fr.Config.ComplexNormals,
			Simplified:      fr.Config.Simplified,
			ShininessLower:  fr.Config.ShininessLower,
			ShininessUpper:  fr.Config.ShininessUpper,
			KernelBound:     int32(fr.Config.Shadow.KernelBound),
			Bias:            fr.Config.Shadow.Bias,
			SlopeBias:       fr.Config.Shadow.SlopeBias,
			ShadowIntensity: fr.ShadowIntensity,
			AmbientStrength: fr.AmbientStrength,
			Highlighted:     fr.Highlighted,
		},
		Sun: snapshot.Sun{
			Direction: fr.Sun.Direction,
			Color:     fr.Sun.Color,
		},
		Time: fr.Time,
	}

	if fr.Cascades != nil {
		snap.Cascades = snapshot.Cascades{
			Metric:    uint8(fr.Cascades.Metric),
			Matrices:  append([]mgl32.Mat4(nil), fr.Cascades.Matrices...),
			Distances: append([]float32(nil), fr.Cascades.Distances...),
		}
	}
	if fr.Lights != nil {
		snap.Lights.Positions = fr.Lights.Positions
		snap.Lights.Colors = fr.Lights.Colors
		snap.Lights.Radii = fr.Lights.Radii
		snap.Lights.Count = uint32(fr.Lights.Count)
	}
	if fr.Atlas != nil {
		snap.Atlas = &snapshot.Atlas{
			Width:  uint32(fr.Atlas.Width()),
			Height: uint32(fr.Atlas.Height()),
			Pix:    append([]float32(nil), fr.Atlas.Pix()...),
		}
	}
	return snap
}

// frameFromSnapshot rebuilds the frame state a snapshot captured.
func frameFromSnapshot(snap *snapshot.Snapshot) *shading.Frame {
	fr := shading.NewFrame()
	fr.Config.Model = shading.Model(snap.Config.Model)
	fr.Config.Debug = shading.DebugMode(snap.Config.Debug)
	fr.Config.ComplexNormals = snap.Config.ComplexNormals
	fr.Config.Simplified = snap.Config.Simplified
	fr.Config.ShininessLower = snap.Config.ShininessLower
	fr.Config.ShininessUpper = snap.Config.ShininessUpper
	fr.Config.Shadow = shadow.Params{
		KernelBound: int(snap.Config.KernelBound),
		Bias:        snap.Config.Bias,
		SlopeBias:   snap.Config.SlopeBias,
	}
	fr.ShadowIntensity = snap.Config.ShadowIntensity
	fr.AmbientStrength = snap.Config.AmbientStrength
	fr.Highlighted = snap.Config.Highlighted
	fr.Sun = lighting.Sun{Direction: snap.Sun.Direction, Color: snap.Sun.Color}
	fr.Time = snap.Time

	if len(snap.Cascades.Matrices) > 0 {
		fr.Cascades = &shadow.CascadeSet{
			Matrices:  append([]mgl32.Mat4(nil), snap.Cascades.Matrices...),
			Distances: append([]float32(nil), snap.Cascades.Distances...),
			Metric:    shadow.Metric(snap.Cascades.Metric),
		}
	}
	if snap.Lights.Count > 0 {
		buf := lighting.NewPointLightBuffer()
		buf.Positions = snap.Lights.Positions
		buf.Colors = snap.Lights.Colors
		buf.Radii = snap.Lights.Radii
		buf.Count = int(snap.Lights.Count)
		fr.Lights = buf
	}
	if snap.Atlas != nil {
		dm := texture.NewDepthMap(int(snap.Atlas.Width), int(snap.Atlas.Height))
		copy(dm.Pix(), snap.Atlas.Pix)
		fr.Atlas = dm
	}
	return fr
}

// parseDebugView maps a view name to the debug mode.
func parseDebugView(name string) (shading.DebugMode, error) {
	switch name {
	case "albedo":
		return shading.DebugAlbedo, nil
	case "normals":
		return shading.DebugNormals, nil
	case "cascades":
		return shading.DebugCascades, nil
	case "shadowed":
		return shading.DebugShadowed, nil
	case "lod":
		return shading.DebugLODZones, nil
	default:
		return shading.DebugNone, fmt.Errorf("unknown debug view: %s", name)
	}
}

func modelName(m uint8) string {
	switch shading.Model(m) {
	case shading.ModelSmooth:
		return "smooth"
	case shading.ModelToon:
		return "toon"
	default:
		return fmt.Sprintf("unknown (%d)", m)
	}
}

func debugViewName(m uint8) string {
	switch shading.DebugMode(m) {
	case shading.DebugNone:
		return "none"
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
		return fmt.Sprintf("unknown (%d)", m)
	}
}

func metricName(m uint8) string {
	if shadow.Metric(m) == shadow.MetricClipDepth {
		return "clip depth"
	}
	return "view distance"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
