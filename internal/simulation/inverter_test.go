package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solar-yield/internal/model"
)

var testInverter = model.InverterParams{PowerW: 50000, EfficiencyPct: 96.5}

func TestInvert_ConversionEfficiency(t *testing.T) {
	out := Invert(10000, testInverter)
	assert.InDelta(t, 9650, out.ACPowerW, 1e-9)
	assert.InDelta(t, 350, out.ConversionLossW, 1e-9)
	assert.Zero(t, out.ClippedW)
}

func TestInvert_ClipsAtRatedPower(t *testing.T) {
	// 60 kW DC × 96.5% = 57.9 kW AC, capped at 50 kW.
	out := Invert(60000, testInverter)
	assert.Equal(t, 50000.0, out.ACPowerW)
	assert.InDelta(t, 7900, out.ClippedW, 1e-9)
	assert.InDelta(t, 2100, out.ConversionLossW, 1e-9)
}

func TestInvert_ExactlyAtRatedPowerNoClipping(t *testing.T) {
	dc := 50000 / 0.965
	out := Invert(dc, testInverter)
	assert.InDelta(t, 50000, out.ACPowerW, 1e-6)
	assert.InDelta(t, 0, out.ClippedW, 1e-6)
}

func TestInvert_ZeroAndNegativeInput(t *testing.T) {
	assert.Equal(t, InverterOutput{}, Invert(0, testInverter))
	assert.Equal(t, InverterOutput{}, Invert(-10, testInverter))
}

func TestInvert_PerfectEfficiency(t *testing.T) {
	inv := model.InverterParams{PowerW: 50000, EfficiencyPct: 100}
	out := Invert(20000, inv)
	assert.Equal(t, 20000.0, out.ACPowerW)
	assert.Zero(t, out.ConversionLossW)
}
