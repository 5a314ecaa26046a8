// Package mapstate holds the shared view state for the map subtree: camera
// viewport, visible bounds, active filters, selection, and one-shot camera
// movement requests. A single State instance is the source of truth for every
// map component in a session; components read and mutate it through the
// explicit methods here and must not cache stale snapshots.
package mapstate

import (
	"sync"

	"github.com/civic-lens/site/geo"
)

// Filters narrows which videos the map shows. The slice fields have set
// semantics and are always replaced wholesale, never merged element-wise.
// Empty date strings mean unset. DateFrom/DateTo ordering is not validated;
// out-of-order ranges are passed through to the backend as-is.
type Filters struct {
	Amendments   []string `json:"amendments"`
	Participants []string `json:"participants"`
	DateFrom     string   `json:"dateFrom,omitempty"`
	DateTo       string   `json:"dateTo,omitempty"`
}

// EmptyFilters returns the canonical empty filter value.
func EmptyFilters() Filters {
	return Filters{Amendments: []string{}, Participants: []string{}}
}

// FilterPatch is a shallow merge-patch for Filters. Nil fields leave the
// current value untouched; non-nil slices replace the current slice wholesale
// (callers pass the full new array). Dates use pointers so a patch can
// distinguish "leave alone" (nil) from "clear" (pointer to empty string).
type FilterPatch struct {
	Amendments   []string
	Participants []string
	DateFrom     *string
	DateTo       *string
}

// FlyToRequest asks the map renderer for an animated camera move. It is a
// one-shot command: a producer sets it, the renderer performs the move and
// calls ClearPendingFlyTo. At most one request is outstanding; a new request
// overwrites an unconsumed one.
type FlyToRequest struct {
	Longitude float64
	Latitude  float64
	Zoom      *float64
}

// FitBoundsRequest is the bounding-box flavor of the same one-shot contract,
// used when zooming into an expanded cluster region.
type FitBoundsRequest struct {
	Bounds geo.BoundingBox
}

// Aspect names which part of the state a Change touched.
type Aspect string

const (
	AspectViewport  Aspect = "viewport"
	AspectBounds    Aspect = "bounds"
	AspectFilters   Aspect = "filters"
	AspectSelection Aspect = "selection"
	AspectHighlight Aspect = "highlight"
	AspectFlyTo     Aspect = "flyto"
	AspectFitBounds Aspect = "fitbounds"
)

// Change is published to subscribers after every mutation.
type Change struct {
	Aspect Aspect
}

// State is the map view-state container. All methods are safe for concurrent
// use. There is no sequencing constraint between operations; last writer wins.
type State struct {
	mu sync.RWMutex

	viewport           geo.Viewport
	bounds             *geo.BoundingBox
	filters            Filters
	selectedVideoID    string
	highlightedVideoID string
	pendingFlyTo       *FlyToRequest
	pendingFitBounds   *FitBoundsRequest

	subMu sync.RWMutex
	subs  map[chan Change]struct{}
}

// New creates a State with the given initial viewport and empty filters.
// Bounds start nil: absent until the map has mounted and reported its first
// extent, and bounds-dependent fetchers must not fetch until then.
func New(initial geo.Viewport) *State {
	return &State{
		viewport: initial,
		filters:  EmptyFilters(),
		subs:     make(map[chan Change]struct{}),
	}
}

// SetViewport replaces the viewport wholesale. No validation: clamping and
// range checks belong to the rendering layer.
func (s *State) SetViewport(v geo.Viewport) {
	s.mu.Lock()
	s.viewport = v
	s.mu.Unlock()
	s.publish(AspectViewport)
}

// Viewport returns the current camera position.
func (s *State) Viewport() geo.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetBounds replaces the visible bounding box. Nil means the map has not
// reported an extent yet.
func (s *State) SetBounds(b *geo.BoundingBox) {
	s.mu.Lock()
	if b == nil {
		s.bounds = nil
	} else {
		copied := *b
		s.bounds = &copied
	}
	s.mu.Unlock()
	s.publish(AspectBounds)
}

// Bounds returns a copy of the current bounding box, or nil.
func (s *State) Bounds() *geo.BoundingBox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bounds == nil {
		return nil
	}
	copied := *s.bounds
	return &copied
}

// SetSelectedVideoID replaces the selection. Empty string clears it. There is
// no existence check against loaded data: selecting a video outside the
// visible set is legal and simply renders nothing until data catches up.
func (s *State) SetSelectedVideoID(id string) {
	s.mu.Lock()
	s.selectedVideoID = id
	s.mu.Unlock()
	s.publish(AspectSelection)
}

// SelectedVideoID returns the current selection, or "" when none.
func (s *State) SelectedVideoID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedVideoID
}

// SetHighlightedVideoID replaces the transient hover highlight.
func (s *State) SetHighlightedVideoID(id string) {
	s.mu.Lock()
	s.highlightedVideoID = id
	s.mu.Unlock()
	s.publish(AspectHighlight)
}

// HighlightedVideoID returns the current highlight, or "" when none.
func (s *State) HighlightedVideoID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlightedVideoID
}

// UpdateFilters shallow-merges the patch into the current filters. Fields
// omitted from the patch are left untouched.
func (s *State) UpdateFilters(patch FilterPatch) {
	s.mu.Lock()
	if patch.Amendments != nil {
		s.filters.Amendments = copyStrings(patch.Amendments)
	}
	if patch.Participants != nil {
		s.filters.Participants = copyStrings(patch.Participants)
	}
	if patch.DateFrom != nil {
		s.filters.DateFrom = *patch.DateFrom
	}
	if patch.DateTo != nil {
		s.filters.DateTo = *patch.DateTo
	}
	s.mu.Unlock()
	s.publish(AspectFilters)
}

// SetFilters replaces the filters wholesale.
func (s *State) SetFilters(f Filters) {
	s.mu.Lock()
	s.filters = Filters{
		Amendments:   copyStrings(f.Amendments),
		Participants: copyStrings(f.Participants),
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
	if s.filters.Amendments == nil {
		s.filters.Amendments = []string{}
	}
	if s.filters.Participants == nil {
		s.filters.Participants = []string{}
	}
	s.mu.Unlock()
	s.publish(AspectFilters)
}

// ClearFilters resets to the empty filter value regardless of prior state.
func (s *State) ClearFilters() {
	s.mu.Lock()
	s.filters = EmptyFilters()
	s.mu.Unlock()
	s.publish(AspectFilters)
}

// Filters returns a copy of the active filters.
func (s *State) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filters{
		Amendments:   copyStrings(s.filters.Amendments),
		Participants: copyStrings(s.filters.Participants),
		DateFrom:     s.filters.DateFrom,
		DateTo:       s.filters.DateTo,
	}
}

// FlyTo records a pending camera move. The store does not move the camera
// itself; the renderer consumes the request and acknowledges with
// ClearPendingFlyTo. An unconsumed request is overwritten, not queued.
func (s *State) FlyTo(lng, lat float64, zoom *float64) {
	s.mu.Lock()
	s.pendingFlyTo = &FlyToRequest{Longitude: lng, Latitude: lat, Zoom: zoom}
	s.mu.Unlock()
	s.publish(AspectFlyTo)
}

// PendingFlyTo returns the outstanding fly-to request, or nil.
func (s *State) PendingFlyTo() *FlyToRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pendingFlyTo == nil {
		return nil
	}
	copied := *s.pendingFlyTo
	return &copied
}

// ClearPendingFlyTo is the renderer's acknowledgment that the move happened.
func (s *State) ClearPendingFlyTo() {
	s.mu.Lock()
	s.pendingFlyTo = nil
	s.mu.Unlock()
	s.publish(AspectFlyTo)
}

// RequestFitBounds records a pending camera fit to the given box.
func (s *State) RequestFitBounds(b geo.BoundingBox) {
	s.mu.Lock()
	s.pendingFitBounds = &FitBoundsRequest{Bounds: b}
	s.mu.Unlock()
	s.publish(AspectFitBounds)
}

// PendingFitBounds returns the outstanding fit-bounds request, or nil.
func (s *State) PendingFitBounds() *FitBoundsRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pendingFitBounds == nil {
		return nil
	}
	copied := *s.pendingFitBounds
	return &copied
}

// ClearPendingFitBounds is the renderer's acknowledgment.
func (s *State) ClearPendingFitBounds() {
	s.mu.Lock()
	s.pendingFitBounds = nil
	s.mu.Unlock()
	s.publish(AspectFitBounds)
}

// Subscribe returns a buffered channel receiving a Change after every
// mutation. Slow subscribers miss events rather than block mutations.
func (s *State) Subscribe() chan Change {
	ch := make(chan Change, 16)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *State) Unsubscribe(ch chan Change) {
	s.subMu.Lock()
	_, ok := s.subs[ch]
	delete(s.subs, ch)
	s.subMu.Unlock()
	if ok {
		close(ch)
	}
}

func (s *State) publish(a Aspect) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- Change{Aspect: a}:
		default:
			// subscriber too slow, skip
		}
	}
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
