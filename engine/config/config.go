// Package config reads the viewer configuration from TOML. Every field has a built-in
// default; a file only needs to name what it overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the configuration file read when no -config flag is given.
const DefaultPath = "viewer.toml"

// Config is the complete viewer configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Camera   CameraConfig   `toml:"camera"`
	Light    LightConfig    `toml:"light"`
	World    WorldConfig    `toml:"world"`
	Sphere   SphereConfig   `toml:"sphere"`
	Floor    FloorConfig    `toml:"floor"`
	Models   []ModelConfig  `toml:"models"`
	Profiler ProfilerConfig `toml:"profiler"`
}

// LogConfig selects the log level: debug, info, warn, error or fatal.
type LogConfig struct {
	Level string `toml:"level"`
}

// WindowConfig describes the main window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// RendererConfig holds the GPU settings.
type RendererConfig struct {
	MSAA             bool       `toml:"msaa"`
	ForceSoftware    bool       `toml:"force_software"`
	ShadowResolution int        `toml:"shadow_resolution"`
	ClearColor       [3]float32 `toml:"clear_color"`
	DiffuseUnit      uint32     `toml:"diffuse_unit"`
	ShadowUnit       uint32     `toml:"shadow_unit"`
}

// CameraConfig holds the initial camera state. Angles are in degrees.
type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Fov         float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Speed       float32    `toml:"speed"`
	Sensitivity float32    `toml:"sensitivity"`
}

// LightConfig describes the single shadow-casting light and its marker.
type LightConfig struct {
	Position    [3]float32 `toml:"position"`
	Color       [3]float32 `toml:"color"`
	MarkerScale float32    `toml:"marker_scale"`
}

// WorldConfig is the static volume the sphere bounces in. It is also the volume the
// light frustum is fitted to.
type WorldConfig struct {
	Min [3]float32 `toml:"min"`
	Max [3]float32 `toml:"max"`
}

// SphereConfig describes the bouncing sphere the camera can lock onto.
type SphereConfig struct {
	Position [3]float32 `toml:"position"`
	Velocity [3]float32 `toml:"velocity"`
	Color    [3]float32 `toml:"color"`
	Scale    float32    `toml:"scale"`
}

// FloorConfig describes the ground plane. Texture is an optional image path.
type FloorConfig struct {
	Y       float32    `toml:"y"`
	Scale   float32    `toml:"scale"`
	Color   [3]float32 `toml:"color"`
	Texture string     `toml:"texture"`
}

// ModelConfig places an OBJ model in the scene.
type ModelConfig struct {
	Path     string     `toml:"path"`
	Position [3]float32 `toml:"position"`
	Scale    float32    `toml:"scale"`
	Color    [3]float32 `toml:"color"`
}

// ProfilerConfig controls the periodic FPS and memory log line.
type ProfilerConfig struct {
	Enabled         bool    `toml:"enabled"`
	IntervalSeconds float32 `toml:"interval_seconds"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: a fully populated configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Window: WindowConfig{
			Title:  "oxy-shadow",
			Width:  1600,
			Height: 1200,
			VSync:  true,
		},
		Renderer: RendererConfig{
			MSAA:             true,
			ShadowResolution: 2048,
			ClearColor:       [3]float32{0.05, 0.05, 0.05},
			DiffuseUnit:      0,
			ShadowUnit:       1,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 7},
			Yaw:         -90,
			Fov:         45,
			Near:        0.1,
			Far:         100,
			Speed:       6,
			Sensitivity: 0.05,
		},
		Light: LightConfig{
			Position:    [3]float32{10, 25, 8},
			Color:       [3]float32{1, 1, 1},
			MarkerScale: 0.2,
		},
		World: WorldConfig{
			Min: [3]float32{-15, -2, -15},
			Max: [3]float32{15, 16, 15},
		},
		Sphere: SphereConfig{
			Position: [3]float32{0, 0, 0},
			Velocity: [3]float32{3, 2.5, 1.5},
			Color:    [3]float32{0.8, 0, 0},
			Scale:    1,
		},
		Floor: FloorConfig{
			Y:     -2,
			Scale: 100,
			Color: [3]float32{0, 0.1, 0.1},
		},
		Profiler: ProfilerConfig{
			Enabled:         true,
			IntervalSeconds: 5,
		},
	}
}

// Load reads the configuration file at path over the defaults and validates it.
// A missing file at DefaultPath is not an error: the defaults are returned.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - *Config: the merged configuration
//   - error: an error if the file cannot be read, has unknown keys or fails validation
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			common.LogDebug("no config file, using defaults", "path", path)
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML over the defaults and validates the result. Unknown keys are errors.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - *Config: the merged configuration
//   - error: a decode, strict-mode or validation error
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
