package model

import (
	"errors"
	"fmt"
	"strings"
)

// Location is the geographic position of the array.
// Units: degrees for latitude/longitude, meters for altitude.
type Location struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Stringing defines the electrical layout of the array.
type Stringing struct {
	ModulesPerString   int
	StringsPerInverter int
}

// Array defines the fixed geometry of the installation.
// Tilt is degrees from horizontal [0,90]. Azimuth is degrees clockwise
// from north [0,360) — 180 is due south.
type Array struct {
	Tilt      float64
	Azimuth   float64
	Stringing Stringing
}

// ModuleParams are the module's electrical ratings at STC.
// TempCoefficient is %/°C and is typically negative.
type ModuleParams struct {
	PowerW          float64
	TempCoefficient float64
}

// InverterParams are the inverter's AC-side ratings.
// EfficiencyPct is in (0,100].
type InverterParams struct {
	PowerW        float64
	EfficiencyPct float64
}

// LossParams holds the ten system loss percentages, each in [0,100).
// These are applied as a fixed-order multiplicative cascade; see the
// simulation package for the ordering.
type LossParams struct {
	Soiling      float64
	Shading      float64
	Snow         float64
	Mismatch     float64
	Wiring       float64
	Connections  float64
	Lid          float64
	Nameplate    float64
	Age          float64
	Availability float64
}

// DefaultLossParams are the stock loss assumptions used when a request
// omits loss_params entirely or leaves individual categories unset.
func DefaultLossParams() LossParams {
	return LossParams{
		Soiling:      2.0,
		Shading:      1.0,
		Snow:         0.5,
		Mismatch:     2.0,
		Wiring:       2.0,
		Connections:  0.5,
		Lid:          1.5,
		Nameplate:    1.0,
		Age:          0.0,
		Availability: 3.0,
	}
}

// SystemConfig is the immutable configuration for one simulation run.
// Construct it once, validate it upfront, and treat it as read-only.
type SystemConfig struct {
	Location Location
	Array    Array
	Module   ModuleParams
	Inverter InverterParams
	Losses   LossParams
	// Albedo is the ground reflectance used for the ground-reflected
	// POA component. Zero means "use DefaultAlbedo".
	Albedo float64
}

// DefaultAlbedo is a typical grass/soil ground reflectance.
const DefaultAlbedo = 0.2

func NewSystemConfig(cfg SystemConfig) (SystemConfig, error) {
	if cfg.Albedo == 0 {
		cfg.Albedo = DefaultAlbedo
	}
	if err := cfg.Validate(); err != nil {
		return SystemConfig{}, err
	}
	return cfg, nil
}

// Validate checks every invariant and reports all violations at once,
// naming the offending fields. The pipeline never re-validates
// mid-flight; a config that passes here runs to completion.
func (c SystemConfig) Validate() error {
	var bad []string

	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		bad = append(bad, fmt.Sprintf("location.latitude must be in [-90,90], got %g", c.Location.Latitude))
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		bad = append(bad, fmt.Sprintf("location.longitude must be in [-180,180], got %g", c.Location.Longitude))
	}
	if c.Array.Tilt < 0 || c.Array.Tilt > 90 {
		bad = append(bad, fmt.Sprintf("array.tilt must be in [0,90], got %g", c.Array.Tilt))
	}
	if c.Array.Azimuth < 0 || c.Array.Azimuth >= 360 {
		bad = append(bad, fmt.Sprintf("array.azimuth must be in [0,360), got %g", c.Array.Azimuth))
	}
	if c.Array.Stringing.ModulesPerString < 1 {
		bad = append(bad, fmt.Sprintf("array.stringing.modules_per_string must be >= 1, got %d", c.Array.Stringing.ModulesPerString))
	}
	if c.Array.Stringing.StringsPerInverter < 1 {
		bad = append(bad, fmt.Sprintf("array.stringing.strings_per_inverter must be >= 1, got %d", c.Array.Stringing.StringsPerInverter))
	}
	if c.Module.PowerW <= 0 {
		bad = append(bad, fmt.Sprintf("module_params.power_w must be > 0, got %g", c.Module.PowerW))
	}
	if c.Inverter.PowerW <= 0 {
		bad = append(bad, fmt.Sprintf("inverter_params.power_w must be > 0, got %g", c.Inverter.PowerW))
	}
	if c.Inverter.EfficiencyPct <= 0 || c.Inverter.EfficiencyPct > 100 {
		bad = append(bad, fmt.Sprintf("inverter_params.efficiency_pct must be in (0,100], got %g", c.Inverter.EfficiencyPct))
	}
	if c.Albedo < 0 || c.Albedo > 1 {
		bad = append(bad, fmt.Sprintf("albedo must be in [0,1], got %g", c.Albedo))
	}

	for _, lp := range []struct {
		name string
		pct  float64
	}{
		{"soiling", c.Losses.Soiling},
		{"shading", c.Losses.Shading},
		{"snow", c.Losses.Snow},
		{"mismatch", c.Losses.Mismatch},
		{"wiring", c.Losses.Wiring},
		{"connections", c.Losses.Connections},
		{"lid", c.Losses.Lid},
		{"nameplate", c.Losses.Nameplate},
		{"age", c.Losses.Age},
		{"availability", c.Losses.Availability},
	} {
		if lp.pct < 0 || lp.pct >= 100 {
			bad = append(bad, fmt.Sprintf("loss_params.%s must be in [0,100), got %g", lp.name, lp.pct))
		}
	}

	if len(bad) > 0 {
		return errors.New("invalid system config: " + strings.Join(bad, "; "))
	}
	return nil
}

// NameplateDCW is the array's total rated DC power at STC in watts.
func (c SystemConfig) NameplateDCW() float64 {
	return c.Module.PowerW *
		float64(c.Array.Stringing.ModulesPerString) *
		float64(c.Array.Stringing.StringsPerInverter)
}
