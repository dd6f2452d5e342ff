package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"solar-yield/internal/config"
	"solar-yield/internal/data"
	"solar-yield/internal/model"
	"solar-yield/internal/simulation"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "predict":
		cmdPredict(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli predict --config examples/config.yaml [--weather tmy.csv] [--out results/hourly.csv]")
	fmt.Println("  cli fetch --lat 51.5074 --lon -0.1278 --out tmy.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - predict prints the prediction JSON; --out additionally writes the per-hour ledger CSV")
	fmt.Println("  - fetch downloads a PVGIS typical meteorological year for offline predict runs")
}

func cmdPredict(args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	weatherPath := fs.String("weather", "", "Path to local weather CSV (overrides config weather_file)")
	outPath := fs.String("out", "", "Optional output CSV path for the hourly ledger")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	system, err := cfg.System.ToModel()
	if err != nil {
		fatalf("invalid system config: %v", err)
	}

	path := *weatherPath
	if path == "" {
		path = cfg.WeatherFile
	}

	records, err := loadWeather(path, system.Location.Latitude, system.Location.Longitude)
	if err != nil {
		fatalf("load weather: %v", err)
	}

	engine := simulation.New()
	res, err := engine.Run(system, records)
	if err != nil {
		fatalf("simulation: %v", err)
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatalf("create output dir: %v", err)
		}
		if err := simulation.WriteHourlyCSV(*outPath, res.Hourly); err != nil {
			fatalf("write hourly CSV: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(res.Hourly), *outPath)
	}

	// The ledger is CSV output; the summary is the JSON contract.
	out, err := json.MarshalIndent(predictOutput(res), "", "  ")
	if err != nil {
		fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}

type predictSummary struct {
	AnnualEnergyKWh  float64                  `json:"annual_energy_kwh"`
	MonthlyEnergyKWh []float64                `json:"monthly_energy_kwh"`
	PerformanceRatio float64                  `json:"performance_ratio"`
	LossBreakdownKWh simulation.LossBreakdown `json:"loss_breakdown_kwh"`
	ClippingLossKWh  float64                  `json:"clipping_loss_kwh"`
	InverterLossKWh  float64                  `json:"inverter_loss_kwh"`
	Warnings         []string                 `json:"warnings,omitempty"`
}

func predictOutput(res *simulation.Result) predictSummary {
	return predictSummary{
		AnnualEnergyKWh:  res.AnnualEnergyKWh,
		MonthlyEnergyKWh: res.MonthlyEnergyKWh[:],
		PerformanceRatio: res.PerformanceRatio,
		LossBreakdownKWh: res.LossBreakdownKWh,
		ClippingLossKWh:  res.ClippingLossKWh,
		InverterLossKWh:  res.InverterLossKWh,
		Warnings:         res.Warnings,
	}
}

// loadWeather reads a local weather CSV, or fetches from PVGIS when no
// file is configured.
func loadWeather(path string, lat, lon float64) ([]model.WeatherRecord, error) {
	if path != "" {
		return data.LoadWeatherCSV(path)
	}
	client := data.NewPVGISClient(os.Getenv("PVGIS_BASE_URL"))
	return client.TMY(lat, lon)
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	lat := fs.Float64("lat", 0, "Latitude in degrees")
	lon := fs.Float64("lon", 0, "Longitude in degrees")
	outPath := fs.String("out", "tmy.csv", "Output CSV path")
	baseURL := fs.String("base-url", "", "PVGIS base URL (default: public endpoint)")
	_ = fs.Parse(args)

	client := data.NewPVGISClient(*baseURL)
	records, err := client.TMY(*lat, *lon)
	if err != nil {
		fatalf("fetch TMY: %v", err)
	}

	if dir := filepath.Dir(*outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("create output dir: %v", err)
		}
	}
	if err := data.WriteWeatherCSV(*outPath, records); err != nil {
		fatalf("write weather CSV: %v", err)
	}
	fmt.Printf("Wrote %d hourly records to %s\n", len(records), *outPath)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
