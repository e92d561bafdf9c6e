// Package raftclient implements the Raft smart client: the top-level
// facade that dispatches queries and commands against a cluster of Raft
// servers, tracks the presumed leader, refreshes cluster membership on
// demand, registers subscription callbacks, and maintains per-client
// monotonic log coordinates used to bound read staleness.
//
// Callers never see the failure modes intrinsic to consensus directly:
// leader churn, stale followers, and in-flight elections are recovered
// locally through leader re-caching and membership refresh. Only a
// small, stable error taxonomy (see errors.go) crosses the package
// boundary.
package raftclient
