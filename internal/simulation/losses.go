package simulation

import "solar-yield/internal/model"

// NumLossStages is the number of configured loss categories.
const NumLossStages = 10

// LossCategories lists the cascade stages in application order. The
// order is a reporting convention: the end-to-end derate is the same
// under any permutation, but each stage's attributed share depends on
// where it sits, so this order must stay fixed for reproducible
// breakdowns.
var LossCategories = [NumLossStages]string{
	"soiling",
	"shading",
	"snow",
	"mismatch",
	"wiring",
	"connections",
	"lid",
	"nameplate",
	"age",
	"availability",
}

// LossBreakdown is annual energy lost per category, in kWh.
// JSON keys are the fixed category names.
type LossBreakdown struct {
	Soiling      float64 `json:"soiling" yaml:"soiling"`
	Shading      float64 `json:"shading" yaml:"shading"`
	Snow         float64 `json:"snow" yaml:"snow"`
	Mismatch     float64 `json:"mismatch" yaml:"mismatch"`
	Wiring       float64 `json:"wiring" yaml:"wiring"`
	Connections  float64 `json:"connections" yaml:"connections"`
	Lid          float64 `json:"lid" yaml:"lid"`
	Nameplate    float64 `json:"nameplate" yaml:"nameplate"`
	Age          float64 `json:"age" yaml:"age"`
	Availability float64 `json:"availability" yaml:"availability"`
}

// Sum returns the total cascade loss in kWh.
func (b LossBreakdown) Sum() float64 {
	return b.Soiling + b.Shading + b.Snow + b.Mismatch + b.Wiring +
		b.Connections + b.Lid + b.Nameplate + b.Age + b.Availability
}

func breakdownFromStages(stagesKWh [NumLossStages]float64) LossBreakdown {
	return LossBreakdown{
		Soiling:      stagesKWh[0],
		Shading:      stagesKWh[1],
		Snow:         stagesKWh[2],
		Mismatch:     stagesKWh[3],
		Wiring:       stagesKWh[4],
		Connections:  stagesKWh[5],
		Lid:          stagesKWh[6],
		Nameplate:    stagesKWh[7],
		Age:          stagesKWh[8],
		Availability: stagesKWh[9],
	}
}

// LossCascade applies the configured percentages as sequential
// multiplicative derates in the fixed category order.
type LossCascade struct {
	retained [NumLossStages]float64 // 1 - pct/100 per stage
}

func NewLossCascade(lp model.LossParams) LossCascade {
	pcts := [NumLossStages]float64{
		lp.Soiling,
		lp.Shading,
		lp.Snow,
		lp.Mismatch,
		lp.Wiring,
		lp.Connections,
		lp.Lid,
		lp.Nameplate,
		lp.Age,
		lp.Availability,
	}
	var c LossCascade
	for i, pct := range pcts {
		c.retained[i] = 1 - pct/100
	}
	return c
}

// Apply derates powerW through every stage, adding each stage's
// consumed power (input − output, in watts) into acc. Returns the
// post-cascade power that feeds the inverter.
func (c LossCascade) Apply(powerW float64, acc *[NumLossStages]float64) float64 {
	for i, retained := range c.retained {
		out := powerW * retained
		acc[i] += powerW - out
		powerW = out
	}
	return powerW
}
