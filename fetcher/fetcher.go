// Package fetcher re-queries the backend search API whenever viewport bounds,
// zoom bucket, or filters change. Both fetchers are read-through caches: the
// cache key is the composite of bounds and every filter field individually,
// so an equivalent query hits cache while any field change misses. A fetch
// whose preconditions are unmet (nil bounds, disabled, zoom past the cluster
// threshold) is a deliberate no-fetch state, not an error: it returns
// (nil, nil) and issues no network call.
package fetcher

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/civic-lens/site/cache"
	"github.com/civic-lens/site/config"
	"github.com/civic-lens/site/geo"
	"github.com/civic-lens/site/mapstate"
	"github.com/civic-lens/site/searchapi"
)

// VideoSearcher is the slice of the search client the video fetcher needs.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, p searchapi.SearchParams) (*searchapi.VideoPage, error)
}

// ClusterSearcher is the slice of the search client the cluster fetcher needs.
type ClusterSearcher interface {
	SearchClusters(ctx context.Context, p searchapi.ClusterParams) (*searchapi.ClusterPage, error)
}

// Videos fetches individual video pins for the current viewport.
type Videos struct {
	searcher VideoSearcher
	cache    *cache.Cache[*searchapi.VideoPage]
	group    *group[*searchapi.VideoPage]
	ttl      time.Duration
}

// NewVideos creates the video fetcher. Results are capped at
// config.SearchPageSize per viewport.
func NewVideos(searcher VideoSearcher) (*Videos, error) {
	c, err := cache.New(func(p *searchapi.VideoPage) int64 {
		return int64(len(p.Videos) + 1)
	}, "Video Search Cache")
	if err != nil {
		return nil, err
	}

	return &Videos{
		searcher: searcher,
		cache:    c,
		group:    newGroup[*searchapi.VideoPage](),
		ttl:      config.SearchCacheTTL,
	}, nil
}

// Fetch returns the video page for the given bounds and filters. Suppressed
// (nil, nil) when bounds is nil or enabled is false.
func (f *Videos) Fetch(ctx context.Context, bounds *geo.BoundingBox, filters mapstate.Filters, enabled bool) (*searchapi.VideoPage, error) {
	if bounds == nil || !enabled {
		return nil, nil
	}

	key := videoKey(*bounds, filters)
	if page, ok := f.cache.Get(key); ok {
		return page, nil
	}

	return f.group.Do(key, func() (*searchapi.VideoPage, error) {
		page, err := f.searcher.SearchVideos(ctx, searchapi.SearchParams{
			Bounds:       bounds,
			Amendments:   filters.Amendments,
			Participants: filters.Participants,
			DateFrom:     filters.DateFrom,
			DateTo:       filters.DateTo,
			PageSize:     config.SearchPageSize,
		})
		if err != nil {
			return nil, err
		}
		f.cache.SetWithTTL(key, page, 0, f.ttl)
		return page, nil
	})
}

// Stats exposes the underlying cache metrics for admin monitoring.
func (f *Videos) Stats() map[string]interface{} {
	return f.cache.Stats()
}

// Wait flushes buffered cache writes. Tests use it to make a fetch's cached
// result visible before the next fetch.
func (f *Videos) Wait() {
	f.cache.Wait()
}

// ClearCache drops all cached video pages.
func (f *Videos) ClearCache() {
	f.cache.Clear()
}

// Clusters fetches aggregate cluster points for zoomed-out viewports.
type Clusters struct {
	searcher ClusterSearcher
	cache    *cache.Cache[*searchapi.ClusterPage]
	group    *group[*searchapi.ClusterPage]
	ttl      time.Duration
}

// NewClusters creates the cluster fetcher.
func NewClusters(searcher ClusterSearcher) (*Clusters, error) {
	c, err := cache.New(func(p *searchapi.ClusterPage) int64 {
		return int64(len(p.Clusters) + 1)
	}, "Cluster Search Cache")
	if err != nil {
		return nil, err
	}

	return &Clusters{
		searcher: searcher,
		cache:    c,
		group:    newGroup[*searchapi.ClusterPage](),
		ttl:      config.SearchCacheTTL,
	}, nil
}

// Fetch returns clusters for the given bounds, zoom, and filters. Suppressed
// (nil, nil) when bounds is nil, enabled is false, or zoom is at or past the
// cluster threshold (individual markers take over there). Zoom is floored
// before keying and before hitting the backend, so sub-integer zoom changes
// within the same bucket coalesce onto one request.
func (f *Clusters) Fetch(ctx context.Context, bounds *geo.BoundingBox, zoom float64, filters mapstate.Filters, enabled bool) (*searchapi.ClusterPage, error) {
	if bounds == nil || !enabled || zoom >= config.ClusterZoomThreshold {
		return nil, nil
	}

	bucket := int(math.Floor(zoom))
	key := clusterKey(*bounds, bucket, filters)
	if page, ok := f.cache.Get(key); ok {
		return page, nil
	}

	return f.group.Do(key, func() (*searchapi.ClusterPage, error) {
		page, err := f.searcher.SearchClusters(ctx, searchapi.ClusterParams{
			Bounds:       bounds,
			Amendments:   filters.Amendments,
			Participants: filters.Participants,
			DateFrom:     filters.DateFrom,
			DateTo:       filters.DateTo,
			Zoom:         bucket,
		})
		if err != nil {
			return nil, err
		}
		f.cache.SetWithTTL(key, page, 0, f.ttl)
		return page, nil
	})
}

// Stats exposes the underlying cache metrics for admin monitoring.
func (f *Clusters) Stats() map[string]interface{} {
	return f.cache.Stats()
}

// Wait flushes buffered cache writes.
func (f *Clusters) Wait() {
	f.cache.Wait()
}

// ClearCache drops all cached cluster pages.
func (f *Clusters) ClearCache() {
	f.cache.Clear()
}

// videoKey includes bounds and each filter field individually, so two filter
// values that are field-wise equal produce the same key regardless of object
// identity.
func videoKey(b geo.BoundingBox, f mapstate.Filters) string {
	return strings.Join([]string{
		"videos",
		b.String(),
		strings.Join(f.Amendments, ","),
		strings.Join(f.Participants, ","),
		f.DateFrom,
		f.DateTo,
	}, "|")
}

func clusterKey(b geo.BoundingBox, zoomBucket int, f mapstate.Filters) string {
	return strings.Join([]string{
		"clusters",
		b.String(),
		strconv.Itoa(zoomBucket),
		strings.Join(f.Amendments, ","),
		strings.Join(f.Participants, ","),
		f.DateFrom,
		f.DateTo,
	}, "|")
}
