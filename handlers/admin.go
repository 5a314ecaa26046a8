package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleSearchCacheStats reports both fetcher caches for monitoring.
func HandleSearchCacheStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"videos":   videoFetcher.Stats(),
		"clusters": clusterFetcher.Stats(),
	})
}

// HandleClearSearchCaches drops all cached search responses.
func HandleClearSearchCaches(c *fiber.Ctx) error {
	videoFetcher.ClearCache()
	clusterFetcher.ClearCache()
	return c.JSON(fiber.Map{"status": "cleared"})
}
