package main

import (
	"fmt"
	"log"
	"os"

	"solar-yield/internal/api/handlers"
	"solar-yield/internal/api/middleware"
	"solar-yield/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// Empty PVGIS_BASE_URL means the public endpoint.
	pvgis := data.NewPVGISClient(os.Getenv("PVGIS_BASE_URL"))
	predictHandler := handlers.NewPredictHandler(pvgis)
	systemHandler := handlers.NewSystemHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "solar-yield-api"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/predict", predictHandler.Predict)
		api.GET("/systems", systemHandler.ListSystems)
		api.GET("/losses/defaults", handlers.LossDefaults)
	}

	// Serve the frontend bundle when present.
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
