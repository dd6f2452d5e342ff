package handlers

import (
	"net/http"

	"solar-yield/internal/api/models"
	"solar-yield/internal/data"
	"solar-yield/internal/model"
	"solar-yield/internal/simulation"

	"github.com/gin-gonic/gin"
)

// WeatherProvider fetches one annual hourly weather series for a
// location. The production implementation is the PVGIS client; tests
// inject deterministic series.
type WeatherProvider interface {
	TMY(latitude, longitude float64) ([]model.WeatherRecord, error)
}

// PredictHandler handles yield prediction requests.
type PredictHandler struct {
	weather WeatherProvider
}

// NewPredictHandler creates a prediction handler. A nil provider
// defaults to the public PVGIS endpoint.
func NewPredictHandler(weather WeatherProvider) *PredictHandler {
	if weather == nil {
		weather = data.NewPVGISClient("")
	}
	return &PredictHandler{weather: weather}
}

// Predict handles POST /api/v1/predict.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg, err := req.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	weather, err := h.weather.TMY(cfg.Location.Latitude, cfg.Location.Longitude)
	if err != nil {
		if pvErr, ok := err.(*data.PVGISError); ok {
			statusCode := http.StatusBadRequest
			if pvErr.Code == "RATE_LIMIT_EXCEEDED" {
				statusCode = http.StatusTooManyRequests
			}
			c.JSON(statusCode, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    pvErr.Code,
					Message: pvErr.Message,
					Details: map[string]interface{}{
						"status_code": pvErr.StatusCode,
					},
				},
			})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "WEATHER_FETCH_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	engine := simulation.New()
	result, err := engine.Run(cfg, weather)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, buildResponse(result, req.Options.IncludeHourly))
}

func buildResponse(result *simulation.Result, includeHourly bool) models.PredictResponse {
	resp := models.PredictResponse{
		AnnualEnergyKWh:  result.AnnualEnergyKWh,
		MonthlyEnergyKWh: result.MonthlyEnergyKWh[:],
		PerformanceRatio: result.PerformanceRatio,
		LossBreakdownKWh: result.LossBreakdownKWh,
		ClippingLossKWh:  result.ClippingLossKWh,
		InverterLossKWh:  result.InverterLossKWh,
		Warnings:         result.Warnings,
	}

	if includeHourly {
		resp.Hourly = make([]models.HourlyRow, len(result.Hourly))
		for i, row := range result.Hourly {
			resp.Hourly[i] = models.HourlyRow{
				Index:       row.Index,
				Timestamp:   row.Timestamp,
				ZenithDeg:   row.ZenithDeg,
				AzimuthDeg:  row.AzimuthDeg,
				POAWm2:      row.POAWm2,
				CellTempC:   row.CellTempC,
				DCPowerW:    row.DCPowerW,
				NetDCPowerW: row.NetDCPowerW,
				ACPowerW:    row.ACPowerW,
			}
		}
	}

	return resp
}
