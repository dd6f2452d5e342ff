package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-yield/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML) consumed by the CLI.
type Config struct {
	// Optional: load the system from a separate YAML preset
	// (e.g. examples/systems/*.yaml). Explicit fields in System
	// override the preset.
	SystemFile string       `yaml:"system_file"`
	System     SystemConfig `yaml:"system"`
	// WeatherFile points at a local TMY CSV; when empty the CLI
	// fetches from PVGIS.
	WeatherFile string `yaml:"weather_file"`
}

type SystemConfig struct {
	Name     string         `yaml:"name"`
	Location LocationConfig `yaml:"location"`
	Array    ArrayConfig    `yaml:"array"`
	Module   ModuleConfig   `yaml:"module_params"`
	Inverter InverterConfig `yaml:"inverter_params"`
	// Losses is optional; nil means the stock loss assumptions.
	Losses *LossConfig `yaml:"loss_params"`
	Albedo float64     `yaml:"albedo"`
}

type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Altitude  float64 `yaml:"altitude"`
}

type ArrayConfig struct {
	Tilt      float64         `yaml:"tilt"`
	Azimuth   float64         `yaml:"azimuth"`
	Stringing StringingConfig `yaml:"stringing"`
}

type StringingConfig struct {
	ModulesPerString   int `yaml:"modules_per_string"`
	StringsPerInverter int `yaml:"strings_per_inverter"`
}

type ModuleConfig struct {
	PowerW          float64 `yaml:"power_w"`
	TempCoefficient float64 `yaml:"temp_coefficient_pct_per_c"`
}

type InverterConfig struct {
	PowerW        float64 `yaml:"power_w"`
	EfficiencyPct float64 `yaml:"efficiency_pct"`
}

type LossConfig struct {
	Soiling      float64 `yaml:"soiling"`
	Shading      float64 `yaml:"shading"`
	Snow         float64 `yaml:"snow"`
	Mismatch     float64 `yaml:"mismatch"`
	Wiring       float64 `yaml:"wiring"`
	Connections  float64 `yaml:"connections"`
	Lid          float64 `yaml:"lid"`
	Nameplate    float64 `yaml:"nameplate"`
	Age          float64 `yaml:"age"`
	Availability float64 `yaml:"availability"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.SystemFile != "" {
		systemPath := c.SystemFile
		if !filepath.IsAbs(systemPath) {
			// Prefer interpreting relative paths as relative to the
			// config file directory, falling back to cwd-relative.
			cand := filepath.Join(filepath.Dir(path), systemPath)
			if _, err := os.Stat(cand); err == nil {
				systemPath = cand
			}
		}
		loaded, err := LoadSystemFile(systemPath)
		if err != nil {
			return nil, err
		}
		c.System = MergeSystem(loaded, c.System)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// Validate by constructing the model config.
	if _, err := c.System.ToModel(); err != nil {
		return fmt.Errorf("system config invalid: %w", err)
	}
	return nil
}

// ToModel converts the YAML shape into the validated immutable value
// type the engine consumes.
func (s SystemConfig) ToModel() (model.SystemConfig, error) {
	losses := model.DefaultLossParams()
	if s.Losses != nil {
		losses = model.LossParams{
			Soiling:      s.Losses.Soiling,
			Shading:      s.Losses.Shading,
			Snow:         s.Losses.Snow,
			Mismatch:     s.Losses.Mismatch,
			Wiring:       s.Losses.Wiring,
			Connections:  s.Losses.Connections,
			Lid:          s.Losses.Lid,
			Nameplate:    s.Losses.Nameplate,
			Age:          s.Losses.Age,
			Availability: s.Losses.Availability,
		}
	}

	return model.NewSystemConfig(model.SystemConfig{
		Location: model.Location{
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
			Altitude:  s.Location.Altitude,
		},
		Array: model.Array{
			Tilt:    s.Array.Tilt,
			Azimuth: s.Array.Azimuth,
			Stringing: model.Stringing{
				ModulesPerString:   s.Array.Stringing.ModulesPerString,
				StringsPerInverter: s.Array.Stringing.StringsPerInverter,
			},
		},
		Module: model.ModuleParams{
			PowerW:          s.Module.PowerW,
			TempCoefficient: s.Module.TempCoefficient,
		},
		Inverter: model.InverterParams{
			PowerW:        s.Inverter.PowerW,
			EfficiencyPct: s.Inverter.EfficiencyPct,
		},
		Losses: losses,
		Albedo: s.Albedo,
	})
}

type systemFileWrapper struct {
	System SystemConfig `yaml:"system"`
}

// LoadSystemFile reads a standalone system preset YAML.
func LoadSystemFile(path string) (SystemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SystemConfig{}, err
	}
	var w systemFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return SystemConfig{}, err
	}
	return w.System, nil
}

// MergeSystem overlays non-zero fields from override onto base. Used
// when loading a preset and then applying explicit overrides. Zero is
// treated as unset, so an override cannot force tilt 0 (horizontal),
// azimuth 0 (due north) or albedo 0 on top of a preset; put those
// values in the preset itself.
func MergeSystem(base, override SystemConfig) SystemConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Location.Latitude != 0 {
		out.Location.Latitude = override.Location.Latitude
	}
	if override.Location.Longitude != 0 {
		out.Location.Longitude = override.Location.Longitude
	}
	if override.Location.Altitude != 0 {
		out.Location.Altitude = override.Location.Altitude
	}
	if override.Array.Tilt != 0 {
		out.Array.Tilt = override.Array.Tilt
	}
	if override.Array.Azimuth != 0 {
		out.Array.Azimuth = override.Array.Azimuth
	}
	if override.Array.Stringing.ModulesPerString != 0 {
		out.Array.Stringing.ModulesPerString = override.Array.Stringing.ModulesPerString
	}
	if override.Array.Stringing.StringsPerInverter != 0 {
		out.Array.Stringing.StringsPerInverter = override.Array.Stringing.StringsPerInverter
	}
	if override.Module.PowerW != 0 {
		out.Module.PowerW = override.Module.PowerW
	}
	if override.Module.TempCoefficient != 0 {
		out.Module.TempCoefficient = override.Module.TempCoefficient
	}
	if override.Inverter.PowerW != 0 {
		out.Inverter.PowerW = override.Inverter.PowerW
	}
	if override.Inverter.EfficiencyPct != 0 {
		out.Inverter.EfficiencyPct = override.Inverter.EfficiencyPct
	}
	if override.Losses != nil {
		out.Losses = override.Losses
	}
	if override.Albedo != 0 {
		out.Albedo = override.Albedo
	}
	return out
}
