package simulation

import (
	"fmt"
	"log"
	"sync"

	"solar-yield/internal/model"
)

// chunkHours is the fixed chunk size for parallel processing. Hours
// are independent through the inverter stage; only the final reduction
// needs ordering. Fixed chunking keeps the merge order (and therefore
// the floating-point result) identical on every run and every machine.
const chunkHours = 730

type Engine struct{}

func New() *Engine { return &Engine{} }

// partial holds one chunk's accumulators. Power over a 1-hour interval
// integrates to the same number in Wh, so the accumulators are Wh.
type partial struct {
	monthlyWh   [12]float64
	lossWh      [NumLossStages]float64
	clipWh      float64
	invWh       float64
	nameplateWh float64
	poaWhM2     float64
}

// Run executes the full pipeline for one configuration over one annual
// weather series. It is a pure function of its inputs: no I/O, no
// shared state, identical output for identical input.
func (e *Engine) Run(cfg model.SystemConfig, weather []model.WeatherRecord) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateWeatherSeries(weather); err != nil {
		return nil, fmt.Errorf("weather data unavailable: %w", err)
	}

	cascade := NewLossCascade(cfg.Losses)
	hourly := make([]HourlyRow, len(weather))

	numChunks := (len(weather) + chunkHours - 1) / chunkHours
	partials := make([]partial, numChunks)

	var wg sync.WaitGroup
	for ci := 0; ci < numChunks; ci++ {
		wg.Add(1)
		go func(ci int) {
			defer wg.Done()
			start := ci * chunkHours
			end := min(start+chunkHours, len(weather))
			p := &partials[ci]

			for i := start; i < end; i++ {
				rec := weather[i]

				pos := SunPosition(rec.Timestamp, cfg.Location)
				poa := TransposePOA(rec, pos, cfg.Array, cfg.Albedo)
				cell := CellTemperature(poa, rec.AmbientTempC, rec.WindSpeedMS)
				dc := DCPower(poa, cell, cfg.Module, cfg.Array.Stringing)
				net := cascade.Apply(dc, &p.lossWh)
				inv := Invert(net, cfg.Inverter)

				p.monthlyWh[rec.Timestamp.UTC().Month()-1] += inv.ACPowerW
				p.clipWh += inv.ClippedW
				p.invWh += inv.ConversionLossW
				p.nameplateWh += dc
				p.poaWhM2 += poa

				hourly[i] = HourlyRow{
					Index:       i,
					Timestamp:   rec.Timestamp,
					ZenithDeg:   pos.ZenithDeg,
					AzimuthDeg:  pos.AzimuthDeg,
					POAWm2:      poa,
					CellTempC:   cell,
					DCPowerW:    dc,
					NetDCPowerW: net,
					ACPowerW:    inv.ACPowerW,
				}
			}
		}(ci)
	}
	wg.Wait()

	// Merge in chunk order so the summation order is fixed.
	var total partial
	for ci := range partials {
		p := &partials[ci]
		for m := 0; m < 12; m++ {
			total.monthlyWh[m] += p.monthlyWh[m]
		}
		for s := 0; s < NumLossStages; s++ {
			total.lossWh[s] += p.lossWh[s]
		}
		total.clipWh += p.clipWh
		total.invWh += p.invWh
		total.nameplateWh += p.nameplateWh
		total.poaWhM2 += p.poaWhM2
	}

	res := &Result{
		ClippingLossKWh:    total.clipWh / 1000,
		InverterLossKWh:    total.invWh / 1000,
		NameplateEnergyKWh: total.nameplateWh / 1000,
		POAAnnualKWhM2:     total.poaWhM2 / 1000,
		Hourly:             hourly,
	}

	var stagesKWh [NumLossStages]float64
	for s := 0; s < NumLossStages; s++ {
		stagesKWh[s] = total.lossWh[s] / 1000
	}
	res.LossBreakdownKWh = breakdownFromStages(stagesKWh)

	// Annual is defined as the sum of the monthly buckets.
	for m := 0; m < 12; m++ {
		res.MonthlyEnergyKWh[m] = total.monthlyWh[m] / 1000
		res.AnnualEnergyKWh += res.MonthlyEnergyKWh[m]
	}

	// Reference yield: the nameplate array under the measured POA
	// irradiation with no thermal or loss derating.
	nameplateKW := cfg.NameplateDCW() / 1000
	referenceKWh := res.POAAnnualKWhM2 * nameplateKW
	if referenceKWh > 0 {
		res.PerformanceRatio = res.AnnualEnergyKWh / referenceKWh
	}
	if res.PerformanceRatio > 1 {
		warning := fmt.Sprintf("performance ratio %.4f exceeds 1.0; energy model output is inconsistent with the reference yield", res.PerformanceRatio)
		res.Warnings = append(res.Warnings, warning)
		log.Printf("[Engine] WARNING: %s", warning)
	}

	return res, nil
}
