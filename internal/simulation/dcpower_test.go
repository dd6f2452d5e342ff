package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solar-yield/internal/model"
)

var testModule = model.ModuleParams{PowerW: 400, TempCoefficient: -0.35}
var testStringing = model.Stringing{ModulesPerString: 20, StringsPerInverter: 10}

func TestDCPower_STCGivesNameplate(t *testing.T) {
	// 1000 W/m² at 25 °C is the rating point: 400 W × 200 modules.
	dc := DCPower(1000, 25, testModule, testStringing)
	assert.InDelta(t, 80000, dc, 1e-9)
}

func TestDCPower_ScalesLinearlyWithIrradiance(t *testing.T) {
	half := DCPower(500, 25, testModule, testStringing)
	assert.InDelta(t, 40000, half, 1e-9)
}

func TestDCPower_HotCellDerates(t *testing.T) {
	// +20 °C over STC at −0.35 %/°C costs 7%.
	dc := DCPower(1000, 45, testModule, testStringing)
	assert.InDelta(t, 80000*0.93, dc, 1e-6)
}

func TestDCPower_ColdCellGains(t *testing.T) {
	dc := DCPower(1000, 5, testModule, testStringing)
	assert.Greater(t, dc, 80000.0)
}

func TestDCPower_ZeroIrradiance(t *testing.T) {
	assert.Zero(t, DCPower(0, 10, testModule, testStringing))
}

func TestDCPower_FlooredAtZero(t *testing.T) {
	// An absurd temperature coefficient must not produce negative power.
	module := model.ModuleParams{PowerW: 400, TempCoefficient: -5}
	dc := DCPower(1000, 60, module, testStringing)
	assert.Zero(t, dc)
}
