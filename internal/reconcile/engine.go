package reconcile

import (
	"context"
	"time"

	"assetsync/internal/zone"
)

// PageSize is the step between successive pull page offsets.
const PageSize = 100

// PageFirst selects the "first" argument of each pull page query.
type PageFirst int

const (
	// FirstLimit sends the overall limit on every page.
	FirstLimit PageFirst = iota
	// FirstPage sends min(PageSize, limit-skip).
	FirstPage
)

type settings struct {
	observer  Observer
	delay     time.Duration
	sleep     func(context.Context, time.Duration) error
	pageFirst PageFirst
}

// Option customizes a Puller, Pusher, or Publisher.
type Option func(*settings)

// WithObserver routes run events to o.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithDelay sets the pacing delay between units of remote work.
func WithDelay(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithSleeper overrides how pacing delays are performed (useful for tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(s *settings) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithPageFirst selects the pull page sizing.
func WithPageFirst(p PageFirst) Option {
	return func(s *settings) {
		s.pageFirst = p
	}
}

func newSettings(defaultDelay time.Duration, opts []Option) settings {
	s := settings{observer: nopObserver{}, delay: defaultDelay, sleep: sleepContext}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) pause(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	return s.sleep(ctx, s.delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Default pacing delays.
const (
	DefaultPullDelay    = 100 * time.Millisecond
	DefaultPushDelay    = 100 * time.Millisecond
	DefaultPublishDelay = 1000 * time.Millisecond
)

// Result tallies one run.
type Result struct {
	Pages        int
	Downloaded   int
	Present      int
	Updated      int
	Uploaded     int
	Published    int
	Ignored      int
	Unmatched    int
	Unclassified int
	Failed       int
	Traversal    int
	IndexSize    int
}

func (r *Result) count(kind EventKind) {
	switch kind {
	case EventPage:
		r.Pages++
	case EventDownloaded:
		r.Downloaded++
	case EventPresent:
		r.Present++
	case EventUpdated:
		r.Updated++
	case EventUploaded:
		r.Uploaded++
	case EventPublished:
		r.Published++
	case EventIgnored:
		r.Ignored++
	case EventNoMatch:
		r.Unmatched++
	case EventUnclassified:
		r.Unclassified++
	case EventFailed:
		r.Failed++
	case EventTraversal:
		r.Traversal++
	}
}

// run carries per-invocation state shared by the three modes.
type run struct {
	settings
	mode   Mode
	layout zone.Layout
	result Result
}

func (r *run) emit(e Event) {
	e.Mode = r.mode
	r.result.count(e.Kind)
	r.observer.Observe(e)
}
