package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Warnings())
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[window]
width = 800
height = 600

[light]
position = [0.0, 12.0, 0.0]

[[models]]
path = "assets/teapot.obj"
position = [3.0, -2.0, 0.0]
scale = 0.5
color = [1.0, 1.0, 1.0]
`))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "oxy-shadow", cfg.Window.Title)
	assert.Equal(t, [3]float32{0, 12, 0}, cfg.Light.Position)
	assert.Equal(t, float32(0.2), cfg.Light.MarkerScale)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "assets/teapot.obj", cfg.Models[0].Path)
	assert.Equal(t, float32(0.5), cfg.Models[0].Scale)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\nfullscreen = true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fullscreen")
}

func TestDecodeRejectsEqualTextureUnits(t *testing.T) {
	_, err := Decode(strings.NewReader("[renderer]\ndiffuse_unit = 1\nshadow_unit = 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTextureUnitClash)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.World.Min = [3]float32{1, 1, 1}
	cfg.World.Max = [3]float32{1, 2, 2}
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "window size")
	assert.Contains(t, msg, "world bounds")
	assert.Contains(t, msg, "log.level")
}

func TestWarnsWhenLightOutsideBoundsSphere(t *testing.T) {
	cfg := Default()
	cfg.Light.Position = [3]float32{0, 200, 0}

	require.NoError(t, cfg.Validate())
	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "bounding sphere")
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings())
}
