package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/civic-lens/site/config"
	h "github.com/civic-lens/site/handlers"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize session provider and search fetchers
	if err := h.Init(); err != nil {
		log.Fatalf("error initializing handlers: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		ReadTimeout:  30 * time.Second, // Prevent long-running requests
		WriteTimeout: 30 * time.Second, // Prevent long-running responses
	})

	// Add rate limiter
	app.Use(limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax,
		Expiration: config.ServerRateLimitExp,
	}))

	// Add logger middleware
	app.Use(logger.New())

	// Static files (map script, icons)
	app.Static("/", "./static")

	// Every map route reads the session's map state
	app.Use(h.SessionMiddleware)

	// Map pages
	app.Get("/", h.HandleMapPage)
	app.Get("/map", h.HandleMapPage)

	// Map data and state mutations for htmx
	app.Get("/map/data", h.HandleMapData)
	app.Post("/map/cluster-click", h.HandleClusterClick)
	app.Post("/map/fit-bounds", h.HandleFitBoundsRequest)
	app.Post("/map/flyto-ack", h.HandleFlyToAck)
	app.Post("/map/fitbounds-ack", h.HandleFitBoundsAck)
	app.Post("/map/select/:id", h.HandleSelectVideo)
	app.Post("/map/highlight/:id", h.HandleHighlightVideo)
	app.Delete("/map/highlight", h.HandleClearHighlight)
	app.Post("/map/filters", h.HandleUpdateFilters)
	app.Delete("/map/filters", h.HandleClearFilters)

	// Map state change stream
	app.Get("/map/sse", h.HandleMapSSE)

	// Health check
	app.Get("/health", h.HandleHealth)

	// Cache monitoring
	app.Get("/admin/search-cache", h.HandleSearchCacheStats)
	app.Post("/admin/search-cache/clear", h.HandleClearSearchCaches)

	fmt.Printf("Starting server on port %s...\n", config.ServerPort)
	log.Fatal(app.Listen(":" + config.ServerPort))
}
