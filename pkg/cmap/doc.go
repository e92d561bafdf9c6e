// Package cmap provides a concurrent map implementation for the Raft smart client.
//
// This package implements a sharded concurrent map used for
// high-throughput callback registries with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Atomic get-or-insert: GetOrSet resolves racing inserts to one value
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.New[string, *Entry]()
//	m.Set("key", entry)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete) use Lock.
package cmap
