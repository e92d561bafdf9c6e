// Package vectorclock implements a vector-clock primitive used to reason
// about causality between events produced by independent Raft servers.
//
// VectorClock[S] is a pure value type: a finite mapping from a source
// identifier to a monotonically increasing counter. ServerVectorClock
// wraps it with interior mutability for concurrent callers that share a
// single clock per server.
package vectorclock
