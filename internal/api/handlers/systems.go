package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"solar-yield/internal/api/models"
	"solar-yield/internal/config"
	"solar-yield/internal/model"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the example system presets.
type SystemHandler struct {
	systemDir string
}

// NewSystemHandler creates a preset handler. The directory comes from
// SYSTEM_DIR, defaulting to examples/systems under the working
// directory.
func NewSystemHandler() *SystemHandler {
	dir := os.Getenv("SYSTEM_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "systems")
		} else {
			dir = "./examples/systems"
		}
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	return &SystemHandler{systemDir: dir}
}

// ListSystems handles GET /api/v1/systems.
func (h *SystemHandler) ListSystems(c *gin.Context) {
	systems := []models.SystemInfo{}

	entries, err := os.ReadDir(h.systemDir)
	if err != nil {
		log.Printf("SystemHandler: failed to read system directory %s: %v", h.systemDir, err)
		c.JSON(http.StatusOK, gin.H{"systems": systems})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.systemDir, entry.Name())
		info, err := h.loadSystemInfo(path, entry.Name())
		if err != nil {
			log.Printf("SystemHandler: failed to load system file %s: %v", path, err)
			continue // Skip invalid files
		}
		systems = append(systems, *info)
	}

	c.JSON(http.StatusOK, gin.H{"systems": systems})
}

func (h *SystemHandler) loadSystemInfo(path, filename string) (*models.SystemInfo, error) {
	sys, err := config.LoadSystemFile(path)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := sys.Name
	if name == "" {
		name = id
	}

	nameplateKW := sys.Module.PowerW *
		float64(sys.Array.Stringing.ModulesPerString) *
		float64(sys.Array.Stringing.StringsPerInverter) / 1000

	return &models.SystemInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.SystemSpecs{
			NameplateDCKW: nameplateKW,
			InverterACKW:  sys.Inverter.PowerW / 1000,
			TiltDeg:       sys.Array.Tilt,
			AzimuthDeg:    sys.Array.Azimuth,
		},
	}, nil
}

// LossDefaults handles GET /api/v1/losses/defaults.
func LossDefaults(c *gin.Context) {
	d := model.DefaultLossParams()
	c.JSON(http.StatusOK, models.LossDefaultsResponse{
		Soiling:      d.Soiling,
		Shading:      d.Shading,
		Snow:         d.Snow,
		Mismatch:     d.Mismatch,
		Wiring:       d.Wiring,
		Connections:  d.Connections,
		Lid:          d.Lid,
		Nameplate:    d.Nameplate,
		Age:          d.Age,
		Availability: d.Availability,
	})
}
