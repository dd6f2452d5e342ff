package data

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"solar-yield/internal/model"
)

// PVGISClient fetches typical-meteorological-year weather data from
// the PVGIS API (https://re.jrc.ec.europa.eu). PVGIS is free and
// unauthenticated; coverage is Europe, Africa and most of Asia.
type PVGISClient struct {
	BaseURL string
	Client  *http.Client
}

// NewPVGISClient creates a PVGIS client. If baseURL is empty, the
// public endpoint is used.
func NewPVGISClient(baseURL string) *PVGISClient {
	if baseURL == "" {
		baseURL = "https://re.jrc.ec.europa.eu"
	}
	return &PVGISClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PVGISError represents a failure reported by the PVGIS API.
type PVGISError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *PVGISError) Error() string {
	return e.Message
}

// TMY fetches one typical meteorological year (8760 hourly records)
// for a location. Locations outside PVGIS coverage fail with a
// DATA_UNAVAILABLE error; short responses are rejected, never padded.
func (c *PVGISClient) TMY(latitude, longitude float64) ([]model.WeatherRecord, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("invalid coordinates (%g, %g)", latitude, longitude)
	}

	if cache := GetCache(); cache != nil {
		key := CacheKey(latitude, longitude)
		if cached, found := cache.Get(key); found {
			log.Printf("[PVGIS] Cache hit: %d records (lat=%.4f, lon=%.4f)", len(cached), latitude, longitude)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/api/tmy")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", fmt.Sprintf("%.6f", latitude))
	q.Set("lon", fmt.Sprintf("%.6f", longitude))
	q.Set("outputformat", "csv")
	q.Set("usehorizon", "1")
	q.Set("browser", "0")
	u.RawQuery = q.Encode()

	log.Printf("[PVGIS] Request: GET %s (lat=%.4f, lon=%.4f)", u.Path, latitude, longitude)

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[PVGIS] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[PVGIS] Response: %d %s (duration: %v, lat=%.4f, lon=%.4f)",
		resp.StatusCode, resp.Status, duration, latitude, longitude)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusBadRequest:
		// PVGIS answers 400 for locations outside its coverage
		// (open sea, polar regions).
		return nil, &PVGISError{
			StatusCode: resp.StatusCode,
			Code:       "DATA_UNAVAILABLE",
			Message:    fmt.Sprintf("no TMY dataset covers location (%g, %g)", latitude, longitude),
		}
	case http.StatusTooManyRequests:
		return nil, &PVGISError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    "PVGIS rate limit exceeded",
		}
	default:
		return nil, &PVGISError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("PVGIS returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	records, err := ParsePVGISCSV(body)
	if err != nil {
		log.Printf("[PVGIS] Error parsing response: %v (lat=%.4f, lon=%.4f)", err, latitude, longitude)
		return nil, fmt.Errorf("failed to parse PVGIS response: %w", err)
	}

	if len(records) != model.HoursPerYear {
		return nil, &PVGISError{
			StatusCode: resp.StatusCode,
			Code:       "DATA_UNAVAILABLE",
			Message:    fmt.Sprintf("PVGIS returned %d hourly records, need a full year of %d", len(records), model.HoursPerYear),
		}
	}

	log.Printf("[PVGIS] Success: Received %d hourly records (lat=%.4f, lon=%.4f)", len(records), latitude, longitude)

	if cache := GetCache(); cache != nil {
		cache.Set(CacheKey(latitude, longitude), records)
		log.Printf("[PVGIS] Cached response (lat=%.4f, lon=%.4f)", latitude, longitude)
	}

	return records, nil
}
