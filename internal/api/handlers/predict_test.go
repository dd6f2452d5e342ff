package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-yield/internal/api/models"
	"solar-yield/internal/data"
	"solar-yield/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider returns a canned weather series or error and records the
// coordinates it was asked for.
type stubProvider struct {
	records []model.WeatherRecord
	err     error
	lat     float64
	lon     float64
}

func (s *stubProvider) TMY(latitude, longitude float64) ([]model.WeatherRecord, error) {
	s.lat = latitude
	s.lon = longitude
	return s.records, s.err
}

func stubYear() []model.WeatherRecord {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.WeatherRecord, model.HoursPerYear)
	for i := range records {
		ts := start.Add(time.Duration(i) * time.Hour)
		rec := model.WeatherRecord{Timestamp: ts, AmbientTempC: 12, WindSpeedMS: 3}
		if h := ts.Hour(); h >= 9 && h <= 15 {
			seasonal := 0.55 + 0.45*math.Cos(2*math.Pi*(float64(ts.YearDay())-172)/365)
			rec.GHI = 600 * seasonal
			rec.DNI = 450 * seasonal
			rec.DHI = 150 * seasonal
		}
		records[i] = rec
	}
	return records
}

func validRequest() map[string]interface{} {
	return map[string]interface{}{
		"location": map[string]interface{}{
			"latitude":  51.5074,
			"longitude": -0.1278,
			"altitude":  11,
		},
		"array": map[string]interface{}{
			"tilt":    35,
			"azimuth": 180,
			"stringing": map[string]interface{}{
				"modules_per_string":   20,
				"strings_per_inverter": 10,
			},
		},
		"module_params": map[string]interface{}{
			"power_w":                    400,
			"temp_coefficient_pct_per_c": -0.35,
		},
		"inverter_params": map[string]interface{}{
			"power_w":        50000,
			"efficiency_pct": 96.5,
		},
	}
}

func doPredict(t *testing.T, provider WeatherProvider, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/predict", NewPredictHandler(provider).Predict)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPredict_HappyPath(t *testing.T) {
	provider := &stubProvider{records: stubYear()}
	w := doPredict(t, provider, validRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The handler forwards the request coordinates untouched.
	assert.Equal(t, 51.5074, provider.lat)
	assert.Equal(t, -0.1278, provider.lon)

	var resp models.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Greater(t, resp.AnnualEnergyKWh, 0.0)
	require.Len(t, resp.MonthlyEnergyKWh, 12)
	var monthlySum float64
	for _, m := range resp.MonthlyEnergyKWh {
		monthlySum += m
	}
	assert.InEpsilon(t, resp.AnnualEnergyKWh, monthlySum, 1e-6)
	assert.Greater(t, resp.PerformanceRatio, 0.0)
	assert.LessOrEqual(t, resp.PerformanceRatio, 1.0)
	// Defaults were applied: soiling 2% of a year of production is a
	// visible chunk of energy.
	assert.Greater(t, resp.LossBreakdownKWh.Soiling, 0.0)
	// Hourly rows are opt-in and were not requested.
	assert.Nil(t, resp.Hourly)
}

func TestPredict_IncludeHourly(t *testing.T) {
	body := validRequest()
	body["options"] = map[string]interface{}{"include_hourly": true}

	w := doPredict(t, &stubProvider{records: stubYear()}, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Hourly, model.HoursPerYear)
}

func TestPredict_PartialLossOverride(t *testing.T) {
	body := validRequest()
	// Explicit zero soiling; everything else keeps its default.
	body["loss_params"] = map[string]interface{}{"soiling": 0}

	w := doPredict(t, &stubProvider{records: stubYear()}, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.LossBreakdownKWh.Soiling)
	assert.Greater(t, resp.LossBreakdownKWh.Availability, 0.0)
}

func TestPredict_MalformedJSON(t *testing.T) {
	router := gin.New()
	router.POST("/api/v1/predict", NewPredictHandler(&stubProvider{}).Predict)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestPredict_InvalidConfigNamesField(t *testing.T) {
	body := validRequest()
	body["array"].(map[string]interface{})["tilt"] = 120

	w := doPredict(t, &stubProvider{records: stubYear()}, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONFIG", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "array.tilt")
}

func TestPredict_WeatherUnavailable(t *testing.T) {
	provider := &stubProvider{err: &data.PVGISError{
		StatusCode: http.StatusBadRequest,
		Code:       "DATA_UNAVAILABLE",
		Message:    "no TMY dataset covers location (0, -30)",
	}}

	w := doPredict(t, provider, validRequest())
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATA_UNAVAILABLE", resp.Error.Code)
}

func TestPredict_RateLimitMapsTo429(t *testing.T) {
	provider := &stubProvider{err: &data.PVGISError{
		StatusCode: http.StatusTooManyRequests,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "PVGIS rate limit exceeded",
	}}

	w := doPredict(t, provider, validRequest())
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Error.Code)
}

func TestPredict_ShortWeatherSeriesIsSimulationError(t *testing.T) {
	// A provider that hands back a truncated series trips the engine's
	// own weather validation.
	provider := &stubProvider{records: stubYear()[:100]}

	w := doPredict(t, provider, validRequest())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SIMULATION_ERROR", resp.Error.Code)
}
