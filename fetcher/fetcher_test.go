package fetcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-lens/site/config"
	"github.com/civic-lens/site/geo"
	"github.com/civic-lens/site/mapstate"
	"github.com/civic-lens/site/searchapi"
)

type fakeSearcher struct {
	videoCalls   atomic.Int64
	clusterCalls atomic.Int64

	lastVideoParams   searchapi.SearchParams
	lastClusterParams searchapi.ClusterParams

	videoErr   error
	clusterErr error
}

func (f *fakeSearcher) SearchVideos(ctx context.Context, p searchapi.SearchParams) (*searchapi.VideoPage, error) {
	f.videoCalls.Add(1)
	f.lastVideoParams = p
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return &searchapi.VideoPage{Videos: []searchapi.Video{{ID: "vid-1", Latitude: 37.8, Longitude: -122.4}}}, nil
}

func (f *fakeSearcher) SearchClusters(ctx context.Context, p searchapi.ClusterParams) (*searchapi.ClusterPage, error) {
	f.clusterCalls.Add(1)
	f.lastClusterParams = p
	if f.clusterErr != nil {
		return nil, f.clusterErr
	}
	return &searchapi.ClusterPage{Clusters: []searchapi.Cluster{{ID: "c-1", Latitude: 37.5, Longitude: -122.5, Count: 10}}, Zoom: p.Zoom}, nil
}

var testBounds = &geo.BoundingBox{West: -123, South: 37, East: -122, North: 38}

func TestVideosFetchSuppressedPreconditions(t *testing.T) {
	searcher := &fakeSearcher{}
	videos, err := NewVideos(searcher)
	require.NoError(t, err)

	// Nil bounds: no fetch regardless of other parameters
	page, err := videos.Fetch(context.Background(), nil, mapstate.EmptyFilters(), true)
	assert.NoError(t, err)
	assert.Nil(t, page)

	// Disabled: no fetch
	page, err = videos.Fetch(context.Background(), testBounds, mapstate.EmptyFilters(), false)
	assert.NoError(t, err)
	assert.Nil(t, page)

	assert.Equal(t, int64(0), searcher.videoCalls.Load())
}

func TestVideosFetchCapsPageSize(t *testing.T) {
	searcher := &fakeSearcher{}
	videos, err := NewVideos(searcher)
	require.NoError(t, err)

	_, err = videos.Fetch(context.Background(), testBounds, mapstate.EmptyFilters(), true)
	require.NoError(t, err)

	assert.Equal(t, config.SearchPageSize, searcher.lastVideoParams.PageSize)
}

func TestVideosFetchCachesByFieldValues(t *testing.T) {
	searcher := &fakeSearcher{}
	videos, err := NewVideos(searcher)
	require.NoError(t, err)

	filters := mapstate.Filters{Amendments: []string{"FIRST"}, Participants: []string{}}
	_, err = videos.Fetch(context.Background(), testBounds, filters, true)
	require.NoError(t, err)
	videos.Wait()

	// A new filters value with identical fields hits the cache
	same := mapstate.Filters{Amendments: []string{"FIRST"}, Participants: []string{}}
	_, err = videos.Fetch(context.Background(), testBounds, same, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), searcher.videoCalls.Load())

	// Any field change misses
	changed := mapstate.Filters{Amendments: []string{"FIRST"}, Participants: []string{"POLICE"}}
	_, err = videos.Fetch(context.Background(), testBounds, changed, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), searcher.videoCalls.Load())

	// A date change misses too
	changed.DateFrom = "2026-01-01"
	_, err = videos.Fetch(context.Background(), testBounds, changed, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), searcher.videoCalls.Load())
}

func TestVideosFetchErrorsNotCached(t *testing.T) {
	searcher := &fakeSearcher{videoErr: errors.New("boom")}
	videos, err := NewVideos(searcher)
	require.NoError(t, err)

	_, err = videos.Fetch(context.Background(), testBounds, mapstate.EmptyFilters(), true)
	assert.Error(t, err)

	// Error cleared: the next fetch goes back to the backend
	searcher.videoErr = nil
	page, err := videos.Fetch(context.Background(), testBounds, mapstate.EmptyFilters(), true)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, int64(2), searcher.videoCalls.Load())
}

func TestClustersFetchSuppressedAtThreshold(t *testing.T) {
	searcher := &fakeSearcher{}
	clusters, err := NewClusters(searcher)
	require.NoError(t, err)

	tests := []struct {
		name        string
		zoom        float64
		shouldFetch bool
	}{
		{"well below threshold", 4, true},
		{"just below threshold", 7.9, true},
		{"exactly at threshold", config.ClusterZoomThreshold, false},
		{"above threshold", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := searcher.clusterCalls.Load()
			page, err := clusters.Fetch(context.Background(), testBounds, tt.zoom, mapstate.EmptyFilters(), true)
			require.NoError(t, err)

			if tt.shouldFetch {
				assert.NotNil(t, page)
				assert.Greater(t, searcher.clusterCalls.Load(), before)
			} else {
				assert.Nil(t, page)
				assert.Equal(t, before, searcher.clusterCalls.Load())
			}
		})
	}
}

func TestClustersFetchNilBounds(t *testing.T) {
	searcher := &fakeSearcher{}
	clusters, err := NewClusters(searcher)
	require.NoError(t, err)

	page, err := clusters.Fetch(context.Background(), nil, 4, mapstate.EmptyFilters(), true)
	assert.NoError(t, err)
	assert.Nil(t, page)
	assert.Equal(t, int64(0), searcher.clusterCalls.Load())
}

func TestClustersZoomFloorBucketing(t *testing.T) {
	searcher := &fakeSearcher{}
	clusters, err := NewClusters(searcher)
	require.NoError(t, err)

	_, err = clusters.Fetch(context.Background(), testBounds, 5.7, mapstate.EmptyFilters(), true)
	require.NoError(t, err)
	clusters.Wait()
	assert.Equal(t, 5, searcher.lastClusterParams.Zoom, "backend sees the floored zoom")

	// Same floor bucket: cache hit, no new request
	_, err = clusters.Fetch(context.Background(), testBounds, 5.3, mapstate.EmptyFilters(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), searcher.clusterCalls.Load())

	// Crossing the integer boundary: new request
	_, err = clusters.Fetch(context.Background(), testBounds, 6.1, mapstate.EmptyFilters(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), searcher.clusterCalls.Load())
	assert.Equal(t, 6, searcher.lastClusterParams.Zoom)
}

func TestClusterFailureDoesNotAffectVideos(t *testing.T) {
	searcher := &fakeSearcher{clusterErr: errors.New("cluster backend down")}
	clusters, err := NewClusters(searcher)
	require.NoError(t, err)
	videos, err := NewVideos(searcher)
	require.NoError(t, err)

	_, err = clusters.Fetch(context.Background(), testBounds, 4, mapstate.EmptyFilters(), true)
	assert.Error(t, err)

	page, err := videos.Fetch(context.Background(), testBounds, mapstate.EmptyFilters(), true)
	require.NoError(t, err)
	assert.NotNil(t, page)
}

func TestInflightGroupCollapsesConcurrentCalls(t *testing.T) {
	g := newGroup[int]()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64

	go g.Do("key", func() (int, error) {
		calls.Add(1)
		close(started)
		<-release
		return 42, nil
	})

	<-started

	results := make(chan int, 3)
	for i := 0; i < 3; i++ {
		go func() {
			v, _ := g.Do("key", func() (int, error) {
				calls.Add(1)
				return 0, nil
			})
			results <- v
		}()
	}

	close(release)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 42, <-results, "waiters share the first call's result")
	}
	assert.Equal(t, int64(1), calls.Load())
}
