package simulation

import "time"

// HourlyRow is one hour of derived pipeline output. This is the
// primary artifact for "what happened" inside a simulation run.
type HourlyRow struct {
	Index     int
	Timestamp time.Time

	ZenithDeg  float64
	AzimuthDeg float64

	POAWm2    float64
	CellTempC float64

	// DCPowerW is the nameplate DC output before any system losses.
	DCPowerW float64
	// NetDCPowerW is the post-cascade DC power fed to the inverter.
	NetDCPowerW float64
	ACPowerW    float64
}

// Result is the outcome of one simulation run.
type Result struct {
	AnnualEnergyKWh  float64
	MonthlyEnergyKWh [12]float64
	PerformanceRatio float64
	LossBreakdownKWh LossBreakdown

	// ClippingLossKWh is AC energy discarded above the inverter
	// rating. It is reported separately from the ten configured
	// categories, not folded into any of them.
	ClippingLossKWh float64
	// InverterLossKWh is the DC→AC conversion loss.
	InverterLossKWh float64

	// NameplateEnergyKWh is the annual pre-loss DC energy, the
	// reference the cascade derates from.
	NameplateEnergyKWh float64
	// POAAnnualKWhM2 is the annual plane-of-array irradiation.
	POAAnnualKWhM2 float64

	Hourly   []HourlyRow
	Warnings []string
}
