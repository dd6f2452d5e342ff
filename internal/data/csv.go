package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"solar-yield/internal/model"
)

// pvgisHeaderPrefix marks the hourly data header inside a PVGIS TMY
// CSV response. The response carries metadata above it and legend text
// below the data block.
const pvgisHeaderPrefix = "time(UTC),"

// pvgisTimeLayout matches PVGIS timestamps like "20070101:0000".
const pvgisTimeLayout = "20060102:1504"

// tmyYear is the synthetic year all TMY timestamps are coerced to.
// PVGIS stitches each calendar month of a TMY from a different source
// year, so the raw time(UTC) column jumps backwards at month
// boundaries. Only month/day/hour carry information in a TMY; 2015 is
// non-leap, matching the 8760-hour series shape.
const tmyYear = 2015

// weatherHeader is the canonical on-disk weather CSV written by
// WriteWeatherCSV and consumed by the CLI.
var weatherHeader = []string{"timestamp_utc", "ghi_w_m2", "dni_w_m2", "dhi_w_m2", "ambient_temp_c", "wind_speed_m_s"}

// ParsePVGISCSV extracts hourly weather records from a raw PVGIS TMY
// CSV response. Timestamps are coerced onto a single synthetic year so
// the series stays ordered across month boundaries; negative
// irradiance readings are clamped to zero.
func ParsePVGISCSV(body []byte) ([]model.WeatherRecord, error) {
	lines := strings.Split(string(body), "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), pvgisHeaderPrefix) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, fmt.Errorf("could not find data header in PVGIS response")
	}

	// Data runs from the header to the first blank line.
	block := []string{lines[headerIdx]}
	for i := headerIdx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		block = append(block, line)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(block, "\n")))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed PVGIS CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("PVGIS response contains no data rows")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"time(UTC)", "T2m", "G(h)", "Gb(n)", "Gd(h)", "WS10m"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing expected column %q in PVGIS data", required)
		}
	}

	records := make([]model.WeatherRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		ts, err := time.ParseInLocation(pvgisTimeLayout, row[col["time(UTC)"]], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad timestamp %q: %w", i+1, row[col["time(UTC)"]], err)
		}
		// Drop the per-month source year; see tmyYear.
		ts = time.Date(tmyYear, ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), 0, 0, time.UTC)
		rec := model.WeatherRecord{Timestamp: ts}
		if rec.AmbientTempC, err = parseField(row, col, "T2m"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.GHI, err = parseField(row, col, "G(h)"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.DNI, err = parseField(row, col, "Gb(n)"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.DHI, err = parseField(row, col, "Gd(h)"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.WindSpeedMS, err = parseField(row, col, "WS10m"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		rec.GHI = clampNonNegative(rec.GHI)
		rec.DNI = clampNonNegative(rec.DNI)
		rec.DHI = clampNonNegative(rec.DHI)
		rec.WindSpeedMS = clampNonNegative(rec.WindSpeedMS)

		records = append(records, rec)
	}

	return records, nil
}

func parseField(row []string, col map[string]int, name string) (float64, error) {
	idx := col[name]
	if idx >= len(row) {
		return 0, fmt.Errorf("missing value for column %q", name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q for column %q", row[idx], name)
	}
	return v, nil
}

func clampNonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// LoadWeatherCSV reads an annual weather series from disk. Both the
// canonical format written by WriteWeatherCSV and a raw PVGIS TMY
// download are accepted.
func LoadWeatherCSV(path string) ([]model.WeatherRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.Contains(string(raw), pvgisHeaderPrefix) {
		return ParsePVGISCSV(raw)
	}

	r := csv.NewReader(strings.NewReader(string(raw)))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed weather CSV %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("weather CSV %s contains no data rows", path)
	}
	if strings.Join(rows[0], ",") != strings.Join(weatherHeader, ",") {
		return nil, fmt.Errorf("weather CSV %s: unrecognized header %q", path, strings.Join(rows[0], ","))
	}

	records := make([]model.WeatherRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(weatherHeader) {
			return nil, fmt.Errorf("weather CSV %s: row %d has %d fields, want %d", path, i+1, len(row), len(weatherHeader))
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("weather CSV %s: row %d: bad timestamp %q: %w", path, i+1, row[0], err)
		}
		vals := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("weather CSV %s: row %d: bad value %q", path, i+1, row[j+1])
			}
			vals[j] = v
		}
		records = append(records, model.WeatherRecord{
			Timestamp:    ts,
			GHI:          clampNonNegative(vals[0]),
			DNI:          clampNonNegative(vals[1]),
			DHI:          clampNonNegative(vals[2]),
			AmbientTempC: vals[3],
			WindSpeedMS:  clampNonNegative(vals[4]),
		})
	}

	return records, nil
}

// WriteWeatherCSV stores a weather series in the canonical format.
func WriteWeatherCSV(path string, records []model.WeatherRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(weatherHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(rec.GHI, 'f', 2, 64),
			strconv.FormatFloat(rec.DNI, 'f', 2, 64),
			strconv.FormatFloat(rec.DHI, 'f', 2, 64),
			strconv.FormatFloat(rec.AmbientTempC, 'f', 2, 64),
			strconv.FormatFloat(rec.WindSpeedMS, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
