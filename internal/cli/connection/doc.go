// Package connection provides connection management for raftclient-cli.
//
// This package owns the CLI's single "current session" bookkeeping: the
// seed address list and service id the user connected with, and the
// *raftclient.RaftClient built from them. It is independent of the
// client's own internal connection pool (internal/raftmembership.Pool),
// which is process-wide and shared by every RaftClient a process
// constructs; the CLI only ever constructs one.
//
//   - manager.go: Session lifecycle (connect/disconnect/current)
//
// Features:
//
//   - A single active session at a time, matching a CLI process's
//     single-user, single-cluster usage pattern
//   - An optional caller-supplied internal/infra/tlsroots pool, passed
//     through to the HTTP transport
package connection
