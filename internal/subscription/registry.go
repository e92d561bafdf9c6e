// Package subscription implements the client-side registry of
// subscription callbacks invoked when a state machine delivers a
// notification matching a previously subscribed pattern.
//
// A subscription is keyed by (state machine id, service id, pattern
// hash) exactly as the Raft client's own subscribe call constructs it:
// the service id appears twice because the pattern is scoped to the
// calling client's own service rather than to the destination state
// machine a second time.
package subscription

import (
	"sync"

	"github.com/yndnr/raftclient-go/pkg/cmap"
)

// Key identifies a distinct subscription pattern.
type Key struct {
	SMID      uint64
	ServiceID uint64
	PatternID uint64
}

// Callback is invoked with the raw, still-encoded notification payload;
// the caller is responsible for decoding it the way its own
// raftclient.Msg implementation would.
type Callback func(data []byte)

type entry struct {
	mu  sync.RWMutex
	fns []Callback
}

// Registry is the process-wide table of registered subscription
// callbacks, kept in a sharded concurrent map (pkg/cmap), since a busy
// client may register and dispatch subscriptions from many goroutines
// at once.
type Registry struct {
	entries *cmap.Map[Key, *entry]
}

// New creates an empty subscription registry.
func New() *Registry {
	return &Registry{entries: cmap.New[Key, *entry]()}
}

// Register adds f to the callbacks invoked for key, preserving
// registration order. Multiple callbacks may share a key; all are
// invoked on Dispatch.
func (r *Registry) Register(key Key, f Callback) {
	e, _ := r.entries.GetOrSet(key, &entry{})
	e.mu.Lock()
	e.fns = append(e.fns, f)
	e.mu.Unlock()
}

// Dispatch invokes every callback registered for key with data, in
// registration order. It is a no-op if no callback is registered.
func (r *Registry) Dispatch(key Key, data []byte) {
	e, ok := r.entries.Get(key)
	if !ok {
		return
	}
	e.mu.RLock()
	fns := make([]Callback, len(e.fns))
	copy(fns, e.fns)
	e.mu.RUnlock()

	for _, f := range fns {
		f(data)
	}
}

// Count returns the number of callbacks registered for key.
func (r *Registry) Count(key Key) int {
	e, ok := r.entries.Get(key)
	if !ok {
		return 0
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.fns)
}
