package config

import (
	"os"
	"strconv"
	"time"
)

// Map behavior tunables. Changing ClusterZoomThreshold or MaxZoom changes
// which representation the renderer asks for.
const (
	// MinZoom and MaxZoom bound the camera zoom at the rendering layer.
	MinZoom = 2.0
	MaxZoom = 18.0

	// ClusterZoomThreshold is the cutover between clustered aggregates and
	// individual markers. At zoom >= threshold, individual markers render.
	ClusterZoomThreshold = 8.0

	// MobileBreakpoint is the viewport width (px) below which the bottom-sheet
	// mobile layout mounts instead of the desktop side panel.
	MobileBreakpoint = 768

	// SearchPageSize caps results returned for a single map viewport.
	SearchPageSize = 100

	// SearchCacheTTL is the staleness window for cached search responses.
	SearchCacheTTL = 30 * time.Second
)

// Front-end asset URLs.
const (
	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	LeafletCSSURL  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJSURL   = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	HTMXURL        = "https://unpkg.com/htmx.org@1.9.12"
	HTMXSSEURL     = "https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"
)

var (
	// ServerPort is the port the Fiber app listens on.
	ServerPort = getEnv("SERVER_PORT", "8080")

	// SearchAPIBaseURL is the base URL of the backend search service.
	SearchAPIBaseURL = getEnv("SEARCH_API_BASE_URL", "http://localhost:9000")

	// SearchAPITimeout bounds a single search request.
	SearchAPITimeout = getEnvDuration("SEARCH_API_TIMEOUT", 10*time.Second)

	// ServerRateLimitMax is the max requests per rate limiter window.
	ServerRateLimitMax = getEnvInt("SERVER_RATE_LIMIT_MAX", 300)

	// ServerRateLimitExp is the rate limiter window.
	ServerRateLimitExp = getEnvDuration("SERVER_RATE_LIMIT_EXP", 1*time.Minute)
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
