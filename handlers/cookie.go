package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/civic-lens/site/geo"
)

// Bounds persist across visits so a returning user lands on the area they
// last browsed.

func getCookieMapBounds(c *fiber.Ctx) (*geo.BoundingBox, bool) {
	return parseBounds(
		c.Cookies("map_west", ""),
		c.Cookies("map_south", ""),
		c.Cookies("map_east", ""),
		c.Cookies("map_north", ""))
}

func parseBounds(westStr, southStr, eastStr, northStr string) (*geo.BoundingBox, bool) {
	if westStr == "" || southStr == "" || eastStr == "" || northStr == "" {
		return nil, false
	}

	west, err1 := strconv.ParseFloat(westStr, 64)
	south, err2 := strconv.ParseFloat(southStr, 64)
	east, err3 := strconv.ParseFloat(eastStr, 64)
	north, err4 := strconv.ParseFloat(northStr, 64)

	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, false
	}

	// Bound coordinates to valid ranges
	west = geo.ClampLongitude(west)
	east = geo.ClampLongitude(east)
	south = geo.ClampLatitude(south)
	north = geo.ClampLatitude(north)

	// Ensure south < north and west < east
	if south > north {
		south, north = north, south
	}
	if west > east {
		west, east = east, west
	}

	return &geo.BoundingBox{West: west, South: south, East: east, North: north}, true
}

func saveCookieMapBounds(c *fiber.Ctx, b *geo.BoundingBox) {
	setBoundsCookie(c, "map_west", b.West)
	setBoundsCookie(c, "map_south", b.South)
	setBoundsCookie(c, "map_east", b.East)
	setBoundsCookie(c, "map_north", b.North)
}

func setBoundsCookie(c *fiber.Ctx, name string, value float64) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    strconv.FormatFloat(value, 'f', -1, 64),
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: false,
		Path:     "/",
		SameSite: "Strict",
	})
}
