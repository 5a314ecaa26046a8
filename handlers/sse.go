package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleMapSSE streams map-state change events to mounted subscribers so
// components outside the htmx request cycle (the list panel on another tab,
// an embedded widget) can re-render when the session's state mutates.
func HandleMapSSE(c *fiber.Ctx) error {
	state := getMapState(c)

	// Set SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	changes := state.Subscribe()
	defer state.Unsubscribe(changes)

	// Keep connection alive and send updates
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			c.WriteString(fmt.Sprintf("event: map_change\ndata: %s\n\n", change.Aspect))

		case <-ticker.C:
			c.WriteString("data: {\"type\":\"ping\"}\n\n")

		case <-c.Context().Done():
			// Client disconnected
			return nil
		}
	}
}
