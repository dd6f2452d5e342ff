package models

import (
	"time"

	"solar-yield/internal/simulation"
)

// PredictResponse is the response from a yield prediction run.
type PredictResponse struct {
	AnnualEnergyKWh  float64                  `json:"annual_energy_kwh"`
	MonthlyEnergyKWh []float64                `json:"monthly_energy_kwh"` // 12 values, January first
	PerformanceRatio float64                  `json:"performance_ratio"`
	LossBreakdownKWh simulation.LossBreakdown `json:"loss_breakdown_kwh"`
	ClippingLossKWh  float64                  `json:"clipping_loss_kwh"`
	InverterLossKWh  float64                  `json:"inverter_loss_kwh"`
	Warnings         []string                 `json:"warnings,omitempty"`
	Hourly           []HourlyRow              `json:"hourly,omitempty"`
}

// HourlyRow is one hour of the prediction ledger.
type HourlyRow struct {
	Index       int       `json:"index"`
	Timestamp   time.Time `json:"timestamp_utc"`
	ZenithDeg   float64   `json:"zenith_deg"`
	AzimuthDeg  float64   `json:"azimuth_deg"`
	POAWm2      float64   `json:"poa_w_m2"`
	CellTempC   float64   `json:"cell_temp_c"`
	DCPowerW    float64   `json:"dc_power_w"`
	NetDCPowerW float64   `json:"net_dc_power_w"`
	ACPowerW    float64   `json:"ac_power_w"`
}

// SystemInfo describes one system preset.
type SystemInfo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	File  string      `json:"file"`
	Specs SystemSpecs `json:"specs"`
}

// SystemSpecs are the headline numbers of a preset.
type SystemSpecs struct {
	NameplateDCKW float64 `json:"nameplate_dc_kw"`
	InverterACKW  float64 `json:"inverter_ac_kw"`
	TiltDeg       float64 `json:"tilt_deg"`
	AzimuthDeg    float64 `json:"azimuth_deg"`
}

// LossDefaultsResponse carries the stock loss percentages.
type LossDefaultsResponse struct {
	Soiling      float64 `json:"soiling"`
	Shading      float64 `json:"shading"`
	Snow         float64 `json:"snow"`
	Mismatch     float64 `json:"mismatch"`
	Wiring       float64 `json:"wiring"`
	Connections  float64 `json:"connections"`
	Lid          float64 `json:"lid"`
	Nameplate    float64 `json:"nameplate"`
	Age          float64 `json:"age"`
	Availability float64 `json:"availability"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
