package mapstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-lens/site/geo"
)

func newTestState() *State {
	return New(geo.Viewport{Longitude: -98.5, Latitude: 39.8, Zoom: 4})
}

func TestSetViewportReplacesWholesale(t *testing.T) {
	s := newTestState()

	v := geo.Viewport{Longitude: -122.4, Latitude: 37.8, Zoom: 12.5}
	s.SetViewport(v)
	assert.Equal(t, v, s.Viewport())

	// No validation: any float values are accepted by the store
	weird := geo.Viewport{Longitude: 999, Latitude: -999, Zoom: -3}
	s.SetViewport(weird)
	assert.Equal(t, weird, s.Viewport())
}

func TestSetBounds(t *testing.T) {
	s := newTestState()
	assert.Nil(t, s.Bounds(), "bounds start nil until the map reports an extent")

	b := geo.BoundingBox{West: -123, South: 37, East: -122, North: 38}
	s.SetBounds(&b)
	require.NotNil(t, s.Bounds())
	assert.Equal(t, b, *s.Bounds())

	// Returned bounds are a copy; mutating them does not touch the store
	got := s.Bounds()
	got.West = 0
	assert.Equal(t, b, *s.Bounds())

	s.SetBounds(nil)
	assert.Nil(t, s.Bounds())
}

func TestSelectionAndHighlightIndependent(t *testing.T) {
	s := newTestState()

	s.SetSelectedVideoID("vid-1")
	s.SetHighlightedVideoID("vid-2")
	assert.Equal(t, "vid-1", s.SelectedVideoID())
	assert.Equal(t, "vid-2", s.HighlightedVideoID())

	// Clearing highlight leaves selection alone
	s.SetHighlightedVideoID("")
	assert.Equal(t, "vid-1", s.SelectedVideoID())
	assert.Equal(t, "", s.HighlightedVideoID())
}

func TestUpdateFiltersMergesWithoutClobbering(t *testing.T) {
	s := newTestState()

	s.UpdateFilters(FilterPatch{Amendments: []string{"FIRST"}})
	s.UpdateFilters(FilterPatch{Participants: []string{"POLICE"}})

	got := s.Filters()
	assert.Equal(t, []string{"FIRST"}, got.Amendments)
	assert.Equal(t, []string{"POLICE"}, got.Participants)
	assert.Equal(t, "", got.DateFrom)
	assert.Equal(t, "", got.DateTo)
}

func TestUpdateFiltersReplacesArraysWholesale(t *testing.T) {
	s := newTestState()

	s.UpdateFilters(FilterPatch{Amendments: []string{"FIRST", "FOURTH"}})
	s.UpdateFilters(FilterPatch{Amendments: []string{"FIFTH"}})

	assert.Equal(t, []string{"FIFTH"}, s.Filters().Amendments)
}

func TestUpdateFiltersDates(t *testing.T) {
	s := newTestState()

	from := "2026-01-01"
	s.UpdateFilters(FilterPatch{DateFrom: &from})
	assert.Equal(t, "2026-01-01", s.Filters().DateFrom)

	// Nil pointer leaves the date untouched
	s.UpdateFilters(FilterPatch{Amendments: []string{"FIRST"}})
	assert.Equal(t, "2026-01-01", s.Filters().DateFrom)

	// Pointer to empty string clears it
	empty := ""
	s.UpdateFilters(FilterPatch{DateFrom: &empty})
	assert.Equal(t, "", s.Filters().DateFrom)
}

func TestClearFiltersRestoresEmptyValue(t *testing.T) {
	s := newTestState()

	s.SetFilters(Filters{
		Amendments:   []string{"FIRST", "FOURTH"},
		Participants: []string{"POLICE"},
		DateFrom:     "2026-01-01",
		DateTo:       "2026-02-01",
	})
	s.ClearFilters()

	assert.Equal(t, EmptyFilters(), s.Filters())
}

func TestSetFiltersNormalizesNilSlices(t *testing.T) {
	s := newTestState()

	s.SetFilters(Filters{DateFrom: "2026-01-01"})
	got := s.Filters()
	assert.NotNil(t, got.Amendments)
	assert.NotNil(t, got.Participants)
	assert.Empty(t, got.Amendments)
}

func TestFiltersReturnsCopy(t *testing.T) {
	s := newTestState()
	s.SetFilters(Filters{Amendments: []string{"FIRST"}, Participants: []string{}})

	got := s.Filters()
	got.Amendments[0] = "MUTATED"
	assert.Equal(t, []string{"FIRST"}, s.Filters().Amendments)
}

func TestFlyToOneShotSlot(t *testing.T) {
	s := newTestState()
	assert.Nil(t, s.PendingFlyTo())

	zoom := 14.0
	s.FlyTo(-122.4, 37.8, &zoom)

	req := s.PendingFlyTo()
	require.NotNil(t, req)
	assert.Equal(t, -122.4, req.Longitude)
	assert.Equal(t, 37.8, req.Latitude)
	require.NotNil(t, req.Zoom)
	assert.Equal(t, 14.0, *req.Zoom)

	s.ClearPendingFlyTo()
	assert.Nil(t, s.PendingFlyTo())
}

func TestFlyToOverwritesUnconsumedRequest(t *testing.T) {
	s := newTestState()

	s.FlyTo(-122.4, 37.8, nil)
	s.FlyTo(-73.9, 40.7, nil)

	req := s.PendingFlyTo()
	require.NotNil(t, req)
	assert.Equal(t, -73.9, req.Longitude)
	assert.Equal(t, 40.7, req.Latitude)
	assert.Nil(t, req.Zoom)
}

func TestFitBoundsOneShotSlot(t *testing.T) {
	s := newTestState()
	assert.Nil(t, s.PendingFitBounds())

	b := geo.BoundingBox{West: -123, South: 37, East: -122, North: 38}
	s.RequestFitBounds(b)

	req := s.PendingFitBounds()
	require.NotNil(t, req)
	assert.Equal(t, b, req.Bounds)

	s.ClearPendingFitBounds()
	assert.Nil(t, s.PendingFitBounds())
}

func TestFlyToAndFitBoundsIndependent(t *testing.T) {
	s := newTestState()

	s.FlyTo(-122.4, 37.8, nil)
	s.RequestFitBounds(geo.BoundingBox{West: -123, South: 37, East: -122, North: 38})

	s.ClearPendingFlyTo()
	assert.Nil(t, s.PendingFlyTo())
	assert.NotNil(t, s.PendingFitBounds())
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s := newTestState()

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.SetSelectedVideoID("vid-1")

	select {
	case change := <-ch:
		assert.Equal(t, AspectSelection, change.Aspect)
	case <-time.After(time.Second):
		t.Fatal("expected a change event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := newTestState()

	ch := s.Subscribe()
	s.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic
	s.SetSelectedVideoID("vid-1")

	// Double unsubscribe is a no-op
	s.Unsubscribe(ch)
}
