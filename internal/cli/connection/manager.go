// Package connection provides connection management for raftclient-cli.
package connection

import (
	"fmt"
	"time"

	"github.com/yndnr/raftclient-go/internal/infra/tlsroots"
	"github.com/yndnr/raftclient-go/internal/raftclient"
	"github.com/yndnr/raftclient-go/internal/raftmembership"
	"github.com/yndnr/raftclient-go/internal/subscription"
	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
)

// DefaultTimeout bounds a single RPC round-trip when the CLI dials a
// cluster; it has no bearing on RaftClient's own retry budget.
const DefaultTimeout = 5 * time.Second

// Session is the CLI's view of a connected cluster: the seed addresses
// and service id the user supplied, and the RaftClient built from them.
type Session struct {
	Servers   []string
	ServiceID uint64

	Client *raftclient.RaftClient
	pool   *raftmembership.HTTPPool
	subs   *subscription.Registry
}

// Manager tracks the CLI's single active session.
type Manager struct {
	current *Session
}

// NewManager creates an empty connection manager.
func NewManager() *Manager {
	return &Manager{}
}

// Connect builds a RaftClient seeded with servers and replaces the
// current session. Construction fails the same way raftclient.New does:
// ErrServerUnreachable if no seed server responds with usable cluster
// info.
func (m *Manager) Connect(servers []string, serviceID uint64, roots *tlsroots.Pool, log logger.Logger) error {
	if len(servers) == 0 {
		return fmt.Errorf("connection: at least one seed server is required")
	}

	pool := raftmembership.NewHTTPPool(DefaultTimeout, roots)
	subs := subscription.New()

	client, err := raftclient.New(servers, serviceID, pool, subs, raftclient.Config{Logger: log})
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}

	m.current = &Session{
		Servers:   servers,
		ServiceID: serviceID,
		Client:    client,
		pool:      pool,
		subs:      subs,
	}
	return nil
}

// Disconnect drops the current session. RaftClient holds no resources
// that need an explicit close (no persistent connections beyond the
// pool's cached *http.Client, which is left to the garbage collector).
func (m *Manager) Disconnect() {
	m.current = nil
}

// Current returns the active session, or nil if not connected.
func (m *Manager) Current() *Session {
	return m.current
}

// IsConnected reports whether a session is active.
func (m *Manager) IsConnected() bool {
	return m.current != nil
}
