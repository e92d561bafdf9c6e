package vectorclock

import "sync"

// StandardVectorClock is the concrete clock type used throughout the
// client: sources are the uint64 server identifiers produced by hashing
// server addresses (see pkg/hashid).
type StandardVectorClock = VectorClock[uint64]

// ServerVectorClock is a thread-safe, server-scoped wrapper around
// StandardVectorClock. Reads acquire shared access; writes acquire
// exclusive access. No method exposes the inner map directly — ToClock
// always returns a detached clone.
type ServerVectorClock struct {
	server uint64
	mu     sync.RWMutex
	clock  StandardVectorClock
}

// NewServerVectorClock creates a clock scoped to the given server id.
func NewServerVectorClock(serverID uint64) *ServerVectorClock {
	return &ServerVectorClock{
		server: serverID,
		clock:  New[uint64](),
	}
}

// Inc increments this server's own counter and returns the snapshot taken
// after the bump.
func (s *ServerVectorClock) Inc() StandardVectorClock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Inc(s.server)
}

// HappenedBefore evaluates the predicate against the current clock state.
func (s *ServerVectorClock) HappenedBefore(other StandardVectorClock) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.HappenedBefore(other)
}

// Equals evaluates the predicate against the current clock state.
func (s *ServerVectorClock) Equals(other StandardVectorClock) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Equals(other)
}

// Relation evaluates the predicate against the current clock state.
func (s *ServerVectorClock) Relation(other StandardVectorClock) Relation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Relation(other)
}

// MergeWith merges other into the clock under exclusive access.
func (s *ServerVectorClock) MergeWith(other StandardVectorClock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.MergeWith(other)
}

// LearnFrom learns other into the clock under exclusive access.
func (s *ServerVectorClock) LearnFrom(other StandardVectorClock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.LearnFrom(other)
}

// ToClock returns a detached clone of the current clock state.
func (s *ServerVectorClock) ToClock() StandardVectorClock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Clone()
}

// ServerID returns the server identifier this clock is scoped to.
func (s *ServerVectorClock) ServerID() uint64 {
	return s.server
}
