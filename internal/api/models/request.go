package models

import "solar-yield/internal/model"

// PredictRequest is the request body for running a yield prediction.
// The shape mirrors the system configuration exactly.
type PredictRequest struct {
	Location LocationConfig `json:"location" binding:"required"`
	Array    ArrayConfig    `json:"array" binding:"required"`
	Module   ModuleParams   `json:"module_params" binding:"required"`
	Inverter InverterParams `json:"inverter_params" binding:"required"`
	Losses   *LossParams    `json:"loss_params,omitempty"`
	Albedo   float64        `json:"albedo,omitempty"`
	Options  PredictOptions `json:"options,omitempty"`
}

type LocationConfig struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude,omitempty"`
}

type ArrayConfig struct {
	Tilt      float64         `json:"tilt"`
	Azimuth   float64         `json:"azimuth"`
	Stringing StringingConfig `json:"stringing" binding:"required"`
}

type StringingConfig struct {
	ModulesPerString   int `json:"modules_per_string"`
	StringsPerInverter int `json:"strings_per_inverter"`
}

type ModuleParams struct {
	PowerW          float64 `json:"power_w"`
	TempCoefficient float64 `json:"temp_coefficient_pct_per_c"`
}

type InverterParams struct {
	PowerW        float64 `json:"power_w"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// LossParams uses pointer fields so an omitted category falls back to
// its default while an explicit 0 stays 0.
type LossParams struct {
	Soiling      *float64 `json:"soiling,omitempty"`
	Shading      *float64 `json:"shading,omitempty"`
	Snow         *float64 `json:"snow,omitempty"`
	Mismatch     *float64 `json:"mismatch,omitempty"`
	Wiring       *float64 `json:"wiring,omitempty"`
	Connections  *float64 `json:"connections,omitempty"`
	Lid          *float64 `json:"lid,omitempty"`
	Nameplate    *float64 `json:"nameplate,omitempty"`
	Age          *float64 `json:"age,omitempty"`
	Availability *float64 `json:"availability,omitempty"`
}

// PredictOptions contains optional prediction parameters.
type PredictOptions struct {
	// IncludeHourly adds the full 8760-row hourly ledger to the
	// response. Default: false.
	IncludeHourly bool `json:"include_hourly,omitempty"`
}

// ToModel builds the validated immutable system configuration from the
// request, applying loss defaults for any omitted category.
func (r PredictRequest) ToModel() (model.SystemConfig, error) {
	losses := model.DefaultLossParams()
	if r.Losses != nil {
		apply := func(dst *float64, src *float64) {
			if src != nil {
				*dst = *src
			}
		}
		apply(&losses.Soiling, r.Losses.Soiling)
		apply(&losses.Shading, r.Losses.Shading)
		apply(&losses.Snow, r.Losses.Snow)
		apply(&losses.Mismatch, r.Losses.Mismatch)
		apply(&losses.Wiring, r.Losses.Wiring)
		apply(&losses.Connections, r.Losses.Connections)
		apply(&losses.Lid, r.Losses.Lid)
		apply(&losses.Nameplate, r.Losses.Nameplate)
		apply(&losses.Age, r.Losses.Age)
		apply(&losses.Availability, r.Losses.Availability)
	}

	return model.NewSystemConfig(model.SystemConfig{
		Location: model.Location{
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
			Altitude:  r.Location.Altitude,
		},
		Array: model.Array{
			Tilt:    r.Array.Tilt,
			Azimuth: r.Array.Azimuth,
			Stringing: model.Stringing{
				ModulesPerString:   r.Array.Stringing.ModulesPerString,
				StringsPerInverter: r.Array.Stringing.StringsPerInverter,
			},
		},
		Module: model.ModuleParams{
			PowerW:          r.Module.PowerW,
			TempCoefficient: r.Module.TempCoefficient,
		},
		Inverter: model.InverterParams{
			PowerW:        r.Inverter.PowerW,
			EfficiencyPct: r.Inverter.EfficiencyPct,
		},
		Losses: losses,
		Albedo: r.Albedo,
	})
}
