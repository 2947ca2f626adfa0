package mdserve

import (
	"sync"
	"time"
)

// Event is one progress update pushed to subscribers.
type Event struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// Tracker lifecycle delays.
const (
	// closeDelay lets in-flight writes flush before subscriber channels
	// close after completion.
	defaultCloseDelay = 250 * time.Millisecond

	// retention keeps a completed job around so a late-connecting
	// subscriber can still observe the final state.
	defaultRetention = 60 * time.Second

	// idleTTL evicts a job that was created but never completed, such as a
	// subscription to an id no conversion ever runs under. Without it the
	// registry would grow with every request for an unknown job id.
	defaultIdleTTL = 5 * time.Minute

	// subscriberBuffer bounds how far a slow subscriber may lag before
	// events are dropped for it.
	subscriberBuffer = 16
)

// subscriber is one open progress channel. closed is guarded by the
// tracker mutex so a channel is never closed twice or written after close.
type subscriber struct {
	ch     chan Event
	closed bool
}

// job is the tracked state of one in-flight conversion.
type job struct {
	progress    int
	message     string
	done        bool
	touched     time.Time
	subscribers map[*subscriber]struct{}
}

// Tracker is a process-wide registry of in-flight conversion jobs.
// Jobs are created on first reference, either by a subscriber connecting or
// by the converter posting an update. All operations are safe for concurrent
// use; an empty job id turns every operation into a silent no-op.
type Tracker struct {
	mu         sync.Mutex
	jobs       map[string]*job
	closeDelay time.Duration
	retention  time.Duration
	idleTTL    time.Duration
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithCloseDelay overrides the post-completion flush delay. Used by tests.
func WithCloseDelay(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.closeDelay = d }
}

// WithRetention overrides how long completed jobs stay in the registry.
func WithRetention(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.retention = d }
}

// WithIdleTTL overrides how long a never-completed job may sit untouched
// before it is evicted.
func WithIdleTTL(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.idleTTL = d }
}

// NewTracker creates an empty job registry.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		jobs:       make(map[string]*job),
		closeDelay: defaultCloseDelay,
		retention:  defaultRetention,
		idleTTL:    defaultIdleTTL,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ensureJobLocked returns the job for id, creating it if absent. Every call
// refreshes the job's idle clock; a newly created job is scheduled for
// eviction in case it never completes. Callers must hold t.mu.
func (t *Tracker) ensureJobLocked(id string) *job {
	j, ok := t.jobs[id]
	if !ok {
		j = &job{subscribers: make(map[*subscriber]struct{})}
		t.jobs[id] = j
		time.AfterFunc(t.idleTTL, func() { t.evictIfIdle(id) })
	}
	j.touched = time.Now()
	return j
}

// evictIfIdle removes a job that never completed and has not been touched for
// a full idle window, closing any subscriber channels so their receive loops
// terminate. A job touched since the timer was armed gets a fresh timer for
// the remaining window; completed jobs are left to the retention eviction.
func (t *Tracker) evictIfIdle(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[id]
	if !ok || j.done {
		return
	}
	if idle := time.Since(j.touched); idle < t.idleTTL {
		time.AfterFunc(t.idleTTL-idle, func() { t.evictIfIdle(id) })
		return
	}
	for sub := range j.subscribers {
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	delete(t.jobs, id)
}

// Update records new progress for a job and pushes it to every current
// subscriber. Progress is clamped into [0,100]; an empty message keeps the
// previous one. Updates after completion are ignored.
func (t *Tracker) Update(id string, progress int, message string) {
	if id == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	j := t.ensureJobLocked(id)
	if j.done {
		return
	}

	j.progress = clampProgress(progress)
	if message != "" {
		j.message = message
	}
	t.broadcastLocked(j)
}

// Subscribe registers a new progress channel for a job. The job's current
// state is delivered immediately as the first event, so a late subscriber is
// never left without context. The returned cancel function deregisters the
// subscriber; calling it more than once is safe. Subscribing to an already
// completed job yields the final event and a closed channel.
//
// An empty id returns a closed channel: the caller's receive loop
// terminates immediately and nothing is registered.
func (t *Tracker) Subscribe(id string) (<-chan Event, func()) {
	if id == "" {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	j := t.ensureJobLocked(id)
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	sub.ch <- Event{Progress: j.progress, Message: j.message}

	if j.done {
		sub.closed = true
		close(sub.ch)
		return sub.ch, func() {}
	}

	j.subscribers[sub] = struct{}{}

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if _, ok := j.subscribers[sub]; ok {
			delete(j.subscribers, sub)
		}
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// Complete marks a job finished, pushes a terminal 100% event carrying
// message, then closes all subscriber channels after a short flush delay and
// evicts the job from the registry after the retention window.
func (t *Tracker) Complete(id string, message string) {
	if id == "" {
		return
	}

	t.mu.Lock()
	j := t.ensureJobLocked(id)
	if j.done {
		t.mu.Unlock()
		return
	}
	j.done = true
	j.progress = 100
	if message != "" {
		j.message = message
	}
	t.broadcastLocked(j)
	t.mu.Unlock()

	time.AfterFunc(t.closeDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for sub := range j.subscribers {
			if !sub.closed {
				sub.closed = true
				close(sub.ch)
			}
		}
		j.subscribers = make(map[*subscriber]struct{})
	})

	time.AfterFunc(t.retention, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.jobs, id)
	})
}

// broadcastLocked pushes the job's current state to every subscriber.
// A subscriber whose buffer is full simply misses the event; one slow or
// disconnected consumer must never block delivery to the others.
// Callers must hold t.mu.
func (t *Tracker) broadcastLocked(j *job) {
	evt := Event{Progress: j.progress, Message: j.message}
	for sub := range j.subscribers {
		if sub.closed {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
		}
	}
}

// clampProgress bounds a progress value into [0,100].
func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
