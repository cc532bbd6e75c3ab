package reconcile

import "math"

// Mode names a sync operation.
type Mode string

const (
	ModePull    Mode = "pull"
	ModePush    Mode = "push"
	ModePublish Mode = "publish"
)

// EventKind classifies an Event.
type EventKind int

const (
	// EventPage follows each successful page query during pull.
	EventPage EventKind = iota
	// EventDownloaded reports a binary written into the metadata zone.
	EventDownloaded
	// EventPresent reports a pulled record whose file already exists locally.
	EventPresent
	// EventIndexSaved reports the merged index written at the end of pull.
	EventIndexSaved
	// EventUpdated reports a completed metadata update.
	EventUpdated
	// EventUploaded reports a completed reupload; Detail holds the storage
	// response text.
	EventUploaded
	// EventPublished reports a completed publish.
	EventPublished
	// EventIgnored reports a file in the ignore zone.
	EventIgnored
	// EventNoMatch reports a file whose name carries no indexed id.
	EventNoMatch
	// EventUnclassified reports a matched file outside every action zone.
	EventUnclassified
	// EventFailed reports a per-file failure; Err is set.
	EventFailed
	// EventTraversal reports an unreadable path; Err is set.
	EventTraversal
)

var eventKindNames = [...]string{
	EventPage:         "page",
	EventDownloaded:   "downloaded",
	EventPresent:      "present",
	EventIndexSaved:   "index_saved",
	EventUpdated:      "updated",
	EventUploaded:     "uploaded",
	EventPublished:    "published",
	EventIgnored:      "ignored",
	EventNoMatch:      "no_match",
	EventUnclassified: "unclassified",
	EventFailed:       "failed",
	EventTraversal:    "traversal",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is one observable step of a run.
type Event struct {
	Kind    EventKind
	Mode    Mode
	AssetID string
	// Path is the local file; Name is the remote fileName when known.
	Path string
	Name string
	// Done and Total drive progress. Total is the pull limit for pull and the
	// index size for push and publish.
	Done   int
	Total  int
	Detail string
	Err    error
}

// Percent returns Done/Total as a rounded percentage.
func (e Event) Percent() int {
	if e.Total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(e.Done) / float64(e.Total)))
}

// Progress reports whether the event advanced the run's done counter.
func (e Event) Progress() bool {
	switch e.Kind {
	case EventDownloaded, EventPresent, EventUpdated, EventUploaded, EventPublished:
		return true
	default:
		return false
	}
}

// Observer receives events in the order they happen.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Observe(Event) {}
