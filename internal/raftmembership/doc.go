// Package raftmembership owns the cluster-membership view the Raft smart
// client routes queries and commands through: a map of server id to RPC
// stub kept idempotently in sync with the cluster's authoritative member
// list, plus the wire-visible types and external-collaborator interfaces
// (RPC stub, connection pool) the view is built from.
//
// The RPC transport itself, the connection pool, and the Raft server are
// external collaborators; this package only defines the interfaces they
// must satisfy and ships one concrete HTTP+JSON implementation.
package raftmembership
