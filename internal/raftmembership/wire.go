package raftmembership

import "fmt"

// LogEntry is the wire-visible record every outgoing query or command
// carries, stamped with the client's current log coordinates so servers
// can detect whether a replica has the freshness the client has already
// observed.
type LogEntry struct {
	ID   uint64
	Term uint64
	SMID uint64
	FnID uint64
	Data []byte
}

// ClientClusterInfo is the response to a cluster-info call: the
// authoritative membership and the responder's view of the current
// leader. LeaderID == 0 means "no known leader".
type ClientClusterInfo struct {
	Members  map[uint64]string
	LeaderID uint64
}

// ClientQryResponse is the result of a query RPC.
type ClientQryResponse struct {
	// LeftBehind is true when the replica's log is older than the log
	// coordinate the query carried.
	LeftBehind bool

	// The following fields are only meaningful when LeftBehind is false.
	Data        []byte
	LastLogTerm uint64
	LastLogID   uint64
}

// CmdOutcome classifies a command RPC's application-level result.
type CmdOutcome int

const (
	// CmdSuccess means the command was applied and committed.
	CmdSuccess CmdOutcome = iota
	// CmdNotLeader means the responder is not the leader; LeaderHint
	// names the leader it believes is current (0 if it has none).
	CmdNotLeader
	// CmdNotCommitted means the leader accepted the command but it did
	// not commit within the server's bound.
	CmdNotCommitted
)

// ClientCmdResponse is the result of a command RPC.
type ClientCmdResponse struct {
	Outcome CmdOutcome

	// Meaningful only when Outcome == CmdSuccess.
	Data        []byte
	LastLogTerm uint64
	LastLogID   uint64

	// Meaningful only when Outcome == CmdNotLeader.
	LeaderHint uint64
}

// Stub is the per-server RPC surface the client dispatches against. Each
// call returns a nested two-level result in spirit: a transport-level
// error (the Go error return) wrapping an application-level outcome (the
// response value's own fields).
type Stub interface {
	ClusterInfo() (ClientClusterInfo, error)
	Query(entry LogEntry) (ClientQryResponse, error)
	Command(entry LogEntry) (ClientCmdResponse, error)
}

// Pool resolves a server address to a Stub. It is process-wide and
// shared by all clients that target the same cluster.
type Pool interface {
	Get(address string) (Stub, error)
}

// ErrTransport wraps a lower-level transport failure so callers can tell
// "the server said no" apart from "we couldn't reach the server".
type ErrTransport struct {
	Address string
	Err     error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("raftmembership: transport error dialing %s: %v", e.Address, e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }
