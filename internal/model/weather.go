package model

import (
	"fmt"
	"time"
)

// HoursPerYear is the length of a TMY series. TMY datasets are built
// from non-leap months, so there is never a Feb 29 row.
const HoursPerYear = 8760

// WeatherRecord is one hour of TMY weather. Irradiance values are
// hourly averages in W/m²; temperature is °C at 2m; wind speed is m/s
// at 10m. Timestamps are UTC.
type WeatherRecord struct {
	Timestamp    time.Time
	GHI          float64
	DNI          float64
	DHI          float64
	AmbientTempC float64
	WindSpeedMS  float64
}

// ValidateWeatherSeries checks that a series is a complete ordered
// annual sequence. Short or unordered data is a data error, never
// something the engine silently zero-fills.
func ValidateWeatherSeries(records []WeatherRecord) error {
	if len(records) != HoursPerYear {
		return fmt.Errorf("weather series must contain exactly %d hourly records, got %d", HoursPerYear, len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i].Timestamp.After(records[i-1].Timestamp) {
			return fmt.Errorf("weather series is not strictly ordered at record %d (%s after %s)",
				i, records[i].Timestamp.Format(time.RFC3339), records[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}
