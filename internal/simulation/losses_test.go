package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-yield/internal/model"
)

func TestLossCascade_SequentialAttribution(t *testing.T) {
	// 50% soiling then 50% shading on 100 W: soiling eats 50 W of the
	// input, shading eats 25 W of what is left.
	cascade := NewLossCascade(model.LossParams{Soiling: 50, Shading: 50})

	var acc [NumLossStages]float64
	out := cascade.Apply(100, &acc)

	assert.InDelta(t, 25, out, 1e-9)
	assert.InDelta(t, 50, acc[0], 1e-9)
	assert.InDelta(t, 25, acc[1], 1e-9)
	for s := 2; s < NumLossStages; s++ {
		assert.Zero(t, acc[s])
	}
}

func TestLossCascade_EarlierStageGetsLargerShare(t *testing.T) {
	// Equal percentages: the stage applied first sees more input, so
	// its attributed share is strictly larger.
	cascade := NewLossCascade(model.LossParams{Soiling: 10, Availability: 10})

	var acc [NumLossStages]float64
	cascade.Apply(1000, &acc)

	soiling := acc[0]
	availability := acc[NumLossStages-1]
	assert.Greater(t, soiling, availability)
}

func TestLossCascade_AccountsForEveryWatt(t *testing.T) {
	cascade := NewLossCascade(model.DefaultLossParams())

	var acc [NumLossStages]float64
	in := 12345.6
	out := cascade.Apply(in, &acc)

	var lost float64
	for _, l := range acc {
		lost += l
	}
	assert.InDelta(t, in, out+lost, 1e-6)
}

func TestLossCascade_ZeroPercentagesPassThrough(t *testing.T) {
	cascade := NewLossCascade(model.LossParams{})

	var acc [NumLossStages]float64
	out := cascade.Apply(500, &acc)

	assert.Equal(t, 500.0, out)
	for _, l := range acc {
		assert.Zero(t, l)
	}
}

func TestLossCascade_MatchesProductForm(t *testing.T) {
	lp := model.DefaultLossParams()
	cascade := NewLossCascade(lp)

	var acc [NumLossStages]float64
	out := cascade.Apply(1000, &acc)

	want := 1000.0
	for _, pct := range []float64{lp.Soiling, lp.Shading, lp.Snow, lp.Mismatch, lp.Wiring,
		lp.Connections, lp.Lid, lp.Nameplate, lp.Age, lp.Availability} {
		want *= 1 - pct/100
	}
	assert.InDelta(t, want, out, 1e-9)
}

func TestLossBreakdown_SumAndCategoryOrder(t *testing.T) {
	require.Len(t, LossCategories, NumLossStages)
	assert.Equal(t, "soiling", LossCategories[0])
	assert.Equal(t, "availability", LossCategories[9])

	var stages [NumLossStages]float64
	for i := range stages {
		stages[i] = float64(i + 1)
	}
	b := breakdownFromStages(stages)
	assert.Equal(t, 1.0, b.Soiling)
	assert.Equal(t, 10.0, b.Availability)
	assert.InDelta(t, 55, b.Sum(), 1e-12)
}
