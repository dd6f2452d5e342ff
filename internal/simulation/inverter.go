package simulation

import "solar-yield/internal/model"

// InverterOutput is the AC-side result for one hour, in watts.
type InverterOutput struct {
	ACPowerW float64
	// ConversionLossW is the DC power burned in DC→AC conversion.
	ConversionLossW float64
	// ClippedW is the AC power discarded above the inverter's rating.
	ClippedW float64
}

// Invert converts post-cascade DC power to AC power, capping at the
// inverter's rated AC power. Clipping is tracked separately from the
// ten configured loss categories; see the result's clipping field.
func Invert(dcPowerW float64, inv model.InverterParams) InverterOutput {
	if dcPowerW <= 0 {
		return InverterOutput{}
	}

	ac := dcPowerW * inv.EfficiencyPct / 100
	out := InverterOutput{
		ACPowerW:        ac,
		ConversionLossW: dcPowerW - ac,
	}
	if ac > inv.PowerW {
		out.ClippedW = ac - inv.PowerW
		out.ACPowerW = inv.PowerW
	}
	return out
}
