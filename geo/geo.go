package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Viewport is the map camera: center coordinates plus zoom. It is always
// replaced wholesale, never partially patched. The store accepts any float
// values; clamping zoom to [MinZoom, MaxZoom] is the rendering layer's job.
type Viewport struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      float64 `json:"zoom"`
}

// BoundingBox is the geographic rectangle currently visible on-screen,
// in degrees. On the wire it is comma-joined as west,south,east,north.
type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// String renders the bbox query parameter form: west,south,east,north.
func (b BoundingBox) String() string {
	return strings.Join([]string{
		formatCoord(b.West),
		formatCoord(b.South),
		formatCoord(b.East),
		formatCoord(b.North),
	}, ",")
}

// Bound converts to an orb.Bound for geometry math.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() (lng, lat float64) {
	c := b.Bound().Center()
	return c.Lon(), c.Lat()
}

// Contains reports whether the point lies within the box.
func (b BoundingBox) Contains(lng, lat float64) bool {
	return b.Bound().Contains(orb.Point{lng, lat})
}

// ParseBBox parses a comma-joined west,south,east,north string.
func ParseBBox(s string) (*BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must have 4 comma-separated values, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox component %d: %w", i, err)
		}
		vals[i] = v
	}

	return &BoundingBox{West: vals[0], South: vals[1], East: vals[2], North: vals[3]}, nil
}

// ValidCoordinate reports whether a lat/lng pair is renderable: both values
// finite and within valid geographic ranges.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ClampLatitude bounds a latitude to [-90, 90].
func ClampLatitude(lat float64) float64 {
	if lat < -90 {
		return -90
	}
	if lat > 90 {
		return 90
	}
	return lat
}

// ClampLongitude bounds a longitude to [-180, 180].
func ClampLongitude(lng float64) float64 {
	if lng < -180 {
		return -180
	}
	if lng > 180 {
		return 180
	}
	return lng
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
