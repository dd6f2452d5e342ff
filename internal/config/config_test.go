package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-yield/internal/model"
)

const validSystemYAML = `system:
  name: "Test Rooftop"
  location:
    latitude: 51.5074
    longitude: -0.1278
    altitude: 11
  array:
    tilt: 35
    azimuth: 180
    stringing:
      modules_per_string: 20
      strings_per_inverter: 10
  module_params:
    power_w: 400
    temp_coefficient_pct_per_c: -0.35
  inverter_params:
    power_w: 50000
    efficiency_pct: 96.5
  loss_params:
    soiling: 2
    shading: 1
    snow: 0.5
    mismatch: 2
    wiring: 2
    connections: 0.5
    lid: 1.5
    nameplate: 1
    age: 0
    availability: 3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", validSystemYAML+"weather_file: weather.csv\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Rooftop", c.System.Name)
	assert.Equal(t, "weather.csv", c.WeatherFile)

	m, err := c.System.ToModel()
	require.NoError(t, err)
	assert.Equal(t, 80000.0, m.NameplateDCW())
	assert.Equal(t, 2.0, m.Losses.Soiling)
	// Albedo was omitted, the stock ground reflectance applies.
	assert.Equal(t, model.DefaultAlbedo, m.Albedo)
}

func TestLoad_SystemFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "london.yaml", validSystemYAML)
	// The top-level config pulls the preset and overrides the tilt.
	path := writeFile(t, dir, "config.yaml", `system_file: london.yaml
system:
  array:
    tilt: 20
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Rooftop", c.System.Name)
	assert.Equal(t, 20.0, c.System.Array.Tilt)
	// Untouched preset fields survive the overlay.
	assert.Equal(t, 180.0, c.System.Array.Azimuth)
	assert.Equal(t, 400.0, c.System.Module.PowerW)
}

func TestLoad_InvalidSystemRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `system:
  location:
    latitude: 51.5
    longitude: -0.13
  array:
    tilt: 120
    azimuth: 180
    stringing:
      modules_per_string: 20
      strings_per_inverter: 10
  module_params:
    power_w: 400
    temp_coefficient_pct_per_c: -0.35
  inverter_params:
    power_w: 50000
    efficiency_pct: 96.5
`
	path := writeFile(t, dir, "config.yaml", bad)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array.tilt")
}

func TestLoadUnchecked_SkipsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "system:\n  array:\n    tilt: 120\n")

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, c.System.Array.Tilt)
	require.Error(t, c.Validate())
}

func TestToModel_NilLossesUsesDefaults(t *testing.T) {
	var s SystemConfig
	require.NoError(t, unmarshalSystem(t, validSystemYAML, &s))
	s.Losses = nil

	m, err := s.ToModel()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLossParams(), m.Losses)
}

func TestToModel_ExplicitZeroLossesStayZero(t *testing.T) {
	var s SystemConfig
	require.NoError(t, unmarshalSystem(t, validSystemYAML, &s))
	s.Losses = &LossConfig{}

	m, err := s.ToModel()
	require.NoError(t, err)
	assert.Zero(t, m.Losses.Soiling)
	assert.Zero(t, m.Losses.Availability)
}

func TestMergeSystem_ZeroValuesKeepPreset(t *testing.T) {
	base := SystemConfig{}
	base.Array.Tilt = 35
	base.Array.Azimuth = 180
	base.Albedo = 0.25

	// A zero override means "unset", not "horizontal"; a horizontal
	// array needs tilt 0 in the preset itself.
	out := MergeSystem(base, SystemConfig{})
	assert.Equal(t, 35.0, out.Array.Tilt)
	assert.Equal(t, 180.0, out.Array.Azimuth)
	assert.Equal(t, 0.25, out.Albedo)
}

func TestMergeSystem_LossesReplacedWholesale(t *testing.T) {
	base := SystemConfig{Losses: &LossConfig{Soiling: 2, Shading: 1}}
	override := SystemConfig{Losses: &LossConfig{Soiling: 5}}

	out := MergeSystem(base, override)
	assert.Equal(t, 5.0, out.Losses.Soiling)
	// Loss overrides are not merged field by field: an explicit block
	// replaces the preset's block entirely.
	assert.Zero(t, out.Losses.Shading)
}

func unmarshalSystem(t *testing.T, raw string, s *SystemConfig) error {
	t.Helper()
	path := writeFile(t, t.TempDir(), "system.yaml", raw)
	loaded, err := LoadSystemFile(path)
	if err != nil {
		return err
	}
	*s = loaded
	return nil
}
