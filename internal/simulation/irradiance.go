package simulation

import (
	"math"

	"solar-yield/internal/model"
)

// solarConstant is the extraterrestrial irradiance in W/m², used by the
// Erbs clearness index.
const solarConstant = 1367

// incidenceCos returns cos(AOI) between the sun and the tilted plane.
// Negative means the sun is behind the plane.
func incidenceCos(pos SolarPosition, tiltDeg, surfaceAzimuthDeg float64) float64 {
	zen := pos.ZenithDeg * degToRad
	tilt := tiltDeg * degToRad
	return math.Cos(zen)*math.Cos(tilt) +
		math.Sin(zen)*math.Sin(tilt)*math.Cos((pos.AzimuthDeg-surfaceAzimuthDeg)*degToRad)
}

// decomposeErbs splits GHI into DNI and DHI using the Erbs diffuse
// fraction correlation. Used only when the weather record carries GHI
// alone; providers that supply all three components bypass this.
func decomposeErbs(ghi float64, pos SolarPosition, dayOfYear int) (dni, dhi float64) {
	if ghi <= 0 || pos.Night() {
		return 0, 0
	}
	cosZen := math.Cos(pos.ZenithDeg * degToRad)
	if cosZen <= 0 {
		return 0, 0
	}

	// Clearness index against extraterrestrial horizontal irradiance.
	ext := solarConstant * (1 + 0.033*math.Cos(2*math.Pi*float64(dayOfYear)/365)) * cosZen
	kt := ghi / ext
	if kt > 1 {
		kt = 1
	}

	var diffuseFraction float64
	switch {
	case kt <= 0.22:
		diffuseFraction = 1 - 0.09*kt
	case kt <= 0.8:
		diffuseFraction = 0.9511 - 0.1604*kt + 4.388*kt*kt - 16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	default:
		diffuseFraction = 0.165
	}

	dhi = ghi * diffuseFraction
	dni = (ghi - dhi) / cosZen
	return dni, dhi
}

// TransposePOA computes plane-of-array irradiance in W/m² for one hour:
// beam on the plane + isotropic sky diffuse + ground reflection.
// Night hours are a hard zero, not a derate.
func TransposePOA(rec model.WeatherRecord, pos SolarPosition, array model.Array, albedo float64) float64 {
	if pos.Night() {
		return 0
	}

	ghi, dni, dhi := rec.GHI, rec.DNI, rec.DHI
	if ghi <= 0 {
		return 0
	}
	if dni == 0 && dhi == 0 {
		dni, dhi = decomposeErbs(ghi, pos, rec.Timestamp.UTC().YearDay())
	}

	tilt := array.Tilt * degToRad

	beam := 0.0
	if cosAOI := incidenceCos(pos, array.Tilt, array.Azimuth); cosAOI > 0 {
		beam = dni * cosAOI
	}
	skyDiffuse := dhi * (1 + math.Cos(tilt)) / 2
	groundReflected := albedo * ghi * (1 - math.Cos(tilt)) / 2

	poa := beam + skyDiffuse + groundReflected
	if poa < 0 {
		return 0
	}
	return poa
}
