package simulation

import "solar-yield/internal/model"

// Standard test conditions.
const (
	stcIrradiance = 1000.0 // W/m²
	stcCellTempC  = 25.0
)

// DCPower returns the array's nameplate DC output in watts for one
// hour: rated power scaled by irradiance, corrected for cell
// temperature, multiplied across the stringing. This is the reference
// point the loss cascade derates from; it carries no system losses.
func DCPower(poaWm2, cellTempC float64, module model.ModuleParams, stringing model.Stringing) float64 {
	perModule := module.PowerW *
		(poaWm2 / stcIrradiance) *
		(1 + module.TempCoefficient/100*(cellTempC-stcCellTempC))

	dc := perModule * float64(stringing.ModulesPerString) * float64(stringing.StringsPerInverter)
	if dc < 0 {
		return 0
	}
	return dc
}
