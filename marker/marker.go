// Package marker holds the pure decision logic for the map's renderable set:
// whether to show clusters or individual pins at a given zoom, which entities
// are renderable at all, and how cluster badges are sized and labeled.
package marker

import (
	"strconv"

	"github.com/civic-lens/site/config"
	"github.com/civic-lens/site/geo"
	"github.com/civic-lens/site/searchapi"
)

// UseClusters decides the representation for a zoom level. Below the
// threshold the map shows server-computed aggregates; at or above it,
// individual markers. Hard cutover, no hysteresis band.
func UseClusters(zoom float64) bool {
	return zoom < config.ClusterZoomThreshold
}

// Size buckets a marker by the count it represents.
type Size int

const (
	SizeSmall  Size = iota // count < 10
	SizeMedium             // 10-99
	SizeLarge              // >= 100
)

// Pixels returns the fixed pixel dimension for the bucket.
func (s Size) Pixels() int {
	switch s {
	case SizeLarge:
		return 56
	case SizeMedium:
		return 44
	default:
		return 32
	}
}

// SizeFor buckets a cluster count.
func SizeFor(count int) Size {
	switch {
	case count >= 100:
		return SizeLarge
	case count >= 10:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// FormatCount renders a cluster count badge: raw below 1000, otherwise
// floor(count/1000) with a "k+" suffix (1000 -> "1k+", 2500 -> "2k+").
func FormatCount(count int) string {
	if count < 1000 {
		return strconv.Itoa(count)
	}
	return strconv.Itoa(count/1000) + "k+"
}

// ExpansionViewport computes the camera target for a cluster click: centered
// on the cluster, zoomed to the server's expansion hint when present or the
// current zoom plus 2 otherwise, capped at MaxZoom.
func ExpansionViewport(c searchapi.Cluster, current geo.Viewport) geo.Viewport {
	zoom := current.Zoom + 2
	if c.ExpansionZoom != nil {
		zoom = *c.ExpansionZoom
	}
	if zoom > config.MaxZoom {
		zoom = config.MaxZoom
	}
	return geo.Viewport{Longitude: c.Longitude, Latitude: c.Latitude, Zoom: zoom}
}

// RenderableVideos drops videos whose coordinates are missing, non-finite, or
// out of range. Bad coordinates are an upstream data-quality issue, not an
// error, so exclusion is silent.
func RenderableVideos(videos []searchapi.Video) []searchapi.Video {
	out := make([]searchapi.Video, 0, len(videos))
	for _, v := range videos {
		if geo.ValidCoordinate(v.Latitude, v.Longitude) {
			out = append(out, v)
		}
	}
	return out
}

// RenderableClusters drops clusters with invalid coordinates.
func RenderableClusters(clusters []searchapi.Cluster) []searchapi.Cluster {
	out := make([]searchapi.Cluster, 0, len(clusters))
	for _, c := range clusters {
		if geo.ValidCoordinate(c.Latitude, c.Longitude) {
			out = append(out, c)
		}
	}
	return out
}
