package simulation

import "math"

// SAPM open-rack glass/glass cell temperature coefficients.
const (
	sapmA      = -3.47
	sapmB      = -0.0594
	sapmDeltaT = 3.0
)

// CellTemperature estimates the module cell temperature in °C from
// plane-of-array irradiance, ambient temperature and wind speed using
// the Sandia (SAPM) model. With zero irradiance the cell sits at
// ambient; higher wind pulls it back toward ambient.
func CellTemperature(poaWm2, ambientC, windMS float64) float64 {
	if poaWm2 <= 0 {
		return ambientC
	}
	moduleTemp := poaWm2*math.Exp(sapmA+sapmB*windMS) + ambientC
	return moduleTemp + poaWm2/1000*sapmDeltaT
}
