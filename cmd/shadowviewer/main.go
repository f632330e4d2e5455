// Command shadowviewer opens a window showing a bouncing sphere above a floor, lit by a
// single point light that casts real-time shadows.
//
// Controls: WASD to move, Space/Left Shift to rise and sink, mouse to look, hold the left
// mouse button to lock the camera onto the sphere, scroll to zoom, Escape to quit.
package main

import (
	"flag"
	"time"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine"
	"github.com/Carmen-Shannon/oxy-shadow/engine/config"
	"github.com/Carmen-Shannon/oxy-shadow/engine/loader"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadow/engine/window"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML configuration file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to the working directory")
	profileFrames := flag.Int("profile-frames", 0, "exit after this many frames, 0 to run until closed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		common.LogFatal("failed to load configuration", "path", *configPath, "err", err)
	}
	level := common.Coalesce(*logLevel, cfg.Log.Level)
	if err := common.SetLogLevel(level); err != nil {
		common.LogFatal("invalid log level", "level", level, "err", err)
	}
	cfg.LogWarnings()

	var prof interface{ Stop() }
	if *cpuProfile {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	err = run(cfg, *profileFrames)
	if prof != nil {
		prof.Stop()
	}
	if err != nil {
		common.LogFatal("viewer stopped", "err", err)
	}
}

func run(cfg *config.Config, frameLimit int) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithCursorCaptured(true),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := renderer.NewRenderer(win, rendererOptions(cfg)...)
	if err != nil {
		return err
	}
	defer r.Release()

	s, err := scene.NewScene(r,
		scene.WithConfig(cfg),
		scene.WithLoader(loader.NewLoader(loader.BackendTypeOBJ, loader.WithUploader(r))),
	)
	if err != nil {
		return err
	}
	defer s.Release()

	eng, err := engine.NewEngine(win, s,
		engine.WithProfiling(cfg.Profiler.Enabled),
		engine.WithProfilerInterval(time.Duration(cfg.Profiler.IntervalSeconds*float32(time.Second))),
		engine.WithFrameLimit(frameLimit),
	)
	if err != nil {
		return err
	}

	common.LogInfo("viewer started", "width", win.Width(), "height", win.Height(), "shadowResolution", r.ShadowResolution())
	return eng.Run()
}

func rendererOptions(cfg *config.Config) []renderer.RendererBuilderOption {
	present := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		present = renderer.PresentModeVSync
	}
	msaa := renderer.MSAAOff
	if cfg.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithShadowMapResolution(cfg.Renderer.ShadowResolution),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithRendererTextureUnits(
			renderer.TextureUnit(cfg.Renderer.DiffuseUnit),
			renderer.TextureUnit(cfg.Renderer.ShadowUnit),
		),
	}
}
