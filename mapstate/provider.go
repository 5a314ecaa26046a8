package mapstate

import (
	"context"
	"sync"
)

type contextKey struct{}

// WithContext installs a State on the context, scoping it for FromContext.
func WithContext(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the State installed by WithContext. Calling it outside
// a provider scope is a programming error and panics with a descriptive
// message in every build; it never silently returns a default store.
func FromContext(ctx context.Context) *State {
	s, ok := ctx.Value(contextKey{}).(*State)
	if !ok {
		panic("mapstate: FromContext called outside a provider scope; wrap the request context with mapstate.WithContext")
	}
	return s
}

// Provider hands out one State per session. Sessions that have not been seen
// before get a fresh store initialized with the default viewport.
type Provider struct {
	mu       sync.Mutex
	initial  func() *State
	sessions map[string]*State
}

// NewProvider creates a Provider whose new sessions start from newState.
func NewProvider(newState func() *State) *Provider {
	return &Provider{
		initial:  newState,
		sessions: make(map[string]*State),
	}
}

// Get returns the session's State, creating it on first use.
func (p *Provider) Get(sessionID string) *State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[sessionID]
	if !ok {
		s = p.initial()
		p.sessions[sessionID] = s
	}
	return s
}

// Drop removes a session's State, releasing it for garbage collection.
func (p *Provider) Drop(sessionID string) {
	p.mu.Lock()
	delete(p.sessions, sessionID)
	p.mu.Unlock()
}

// Len reports how many sessions currently hold state.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}
