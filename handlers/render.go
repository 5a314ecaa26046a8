package handlers

import (
	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"
)

// render writes a gomponents node as the HTML response body. Full pages and
// htmx partials go through the same path.
func render(c *fiber.Ctx, node g.Node) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return node.Render(c.Response().BodyWriter())
}
