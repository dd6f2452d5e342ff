package simulation

import (
	"math"
	"time"

	"solar-yield/internal/model"
)

// SolarPosition holds the sun's position for one instant.
// ZenithDeg is degrees from vertical; >90 means the sun is below the
// horizon. AzimuthDeg is degrees clockwise from north (180 = south).
type SolarPosition struct {
	ZenithDeg  float64
	AzimuthDeg float64
}

const degToRad = math.Pi / 180

// axialTilt is Earth's obliquity in radians (23.45°).
const axialTilt = 0.40928

// declination returns the solar declination in radians for a day of
// the year.
func declination(dayOfYear int) float64 {
	return math.Asin(math.Sin((float64(dayOfYear)-81)*2*math.Pi/365.25) * math.Sin(axialTilt))
}

// equationOfTime returns the difference between apparent and mean
// solar time in minutes.
func equationOfTime(dayOfYear int) float64 {
	b := 2 * math.Pi * (float64(dayOfYear) - 81) / 364
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// SunPosition computes the solar zenith and azimuth for a UTC
// timestamp at the given location. Longitude east is positive.
func SunPosition(t time.Time, loc model.Location) SolarPosition {
	t = t.UTC()
	n := t.YearDay()

	// Apparent solar time: UTC corrected for longitude and the
	// equation of time.
	clockHours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	solarHours := clockHours + loc.Longitude/15 + equationOfTime(n)/60

	// Hour angle: 15° per hour from solar noon, morning negative.
	omega := (solarHours - 12) * 15 * degToRad

	phi := loc.Latitude * degToRad
	delta := declination(n)

	cosZenith := math.Sin(phi)*math.Sin(delta) + math.Cos(phi)*math.Cos(delta)*math.Cos(omega)
	cosZenith = math.Max(-1, math.Min(1, cosZenith))
	zenith := math.Acos(cosZenith)

	// Azimuth measured clockwise from north. atan2 form is stable
	// through solar noon and at high latitudes.
	azimuth := math.Atan2(math.Sin(omega), math.Cos(omega)*math.Sin(phi)-math.Tan(delta)*math.Cos(phi))/degToRad + 180
	if azimuth >= 360 {
		azimuth -= 360
	}
	if azimuth < 0 {
		azimuth += 360
	}

	return SolarPosition{
		ZenithDeg:  zenith / degToRad,
		AzimuthDeg: azimuth,
	}
}

// Night reports whether the sun is below the horizon. Irradiance for a
// night hour is defined as zero regardless of measured values.
func (p SolarPosition) Night() bool {
	return p.ZenithDeg > 90
}
