// Package layout selects between the desktop side-panel and mobile
// bottom-sheet shells based on observed viewport width. Until a client has
// reported a real width the selector keeps its server-side desktop guess and
// reports IsClient false, so the rendered shell is not trusted to match the
// real window until then.
package layout

import (
	"sync"

	"github.com/civic-lens/site/config"
)

// IsMobileWidth applies the breakpoint to a single width report. Handlers
// use it for per-request shell selection from the client's width hint.
func IsMobileWidth(width int) bool {
	return width < config.MobileBreakpoint
}

// WidthFeed fans viewport-width reports out to observers. Browser resize
// events arrive here (one Publish per report).
type WidthFeed struct {
	mu   sync.RWMutex
	subs map[chan int]struct{}
}

// NewWidthFeed creates an empty feed.
func NewWidthFeed() *WidthFeed {
	return &WidthFeed{subs: make(map[chan int]struct{})}
}

// Publish sends a width report to all observers without blocking; a slow
// observer misses the report and catches the next one.
func (f *WidthFeed) Publish(width int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for ch := range f.subs {
		select {
		case ch <- width:
		default:
		}
	}
}

// ListenerCount reports the number of registered observers. Tests use it to
// prove repeated observe/close cycles leak nothing.
func (f *WidthFeed) ListenerCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

func (f *WidthFeed) subscribe() chan int {
	ch := make(chan int, 4)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *WidthFeed) unsubscribe(ch chan int) {
	f.mu.Lock()
	_, ok := f.subs[ch]
	delete(f.subs, ch)
	f.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Observer tracks a WidthFeed for its mounted lifetime and reports which
// layout shell should be active. Exactly one of IsMobile/IsDesktop is true
// at any time; the pre-client default is desktop.
type Observer struct {
	mu       sync.RWMutex
	width    int
	isClient bool

	feed      *WidthFeed
	ch        chan int
	closeOnce sync.Once
	done      chan struct{}
}

// Observe registers on the feed and starts tracking width reports. Callers
// must Close the observer on teardown to deregister its listener.
func Observe(feed *WidthFeed) *Observer {
	o := &Observer{
		width: config.MobileBreakpoint, // desktop guess until a client reports
		feed:  feed,
		ch:    feed.subscribe(),
		done:  make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *Observer) run() {
	for {
		select {
		case w, ok := <-o.ch:
			if !ok {
				return
			}
			o.mu.Lock()
			o.width = w
			o.isClient = true
			o.mu.Unlock()
		case <-o.done:
			return
		}
	}
}

// IsMobile reports whether the bottom-sheet shell should mount.
func (o *Observer) IsMobile() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.width < config.MobileBreakpoint
}

// IsDesktop reports whether the side-panel shell should mount.
func (o *Observer) IsDesktop() bool {
	return !o.IsMobile()
}

// IsClient reports whether a real client width has been observed yet.
func (o *Observer) IsClient() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.isClient
}

// Close deregisters the observer's feed listener. Safe to call more than
// once.
func (o *Observer) Close() {
	o.closeOnce.Do(func() {
		close(o.done)
		o.feed.unsubscribe(o.ch)
	})
}
