package raftclient

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/raftclient-go/internal/raftmembership"
	"github.com/yndnr/raftclient-go/internal/subscription"
	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
	"github.com/yndnr/raftclient-go/internal/telemetry/metric"
)

// DefaultMaxRefreshFailures is the count of consecutive membership
// refresh failures at which the client surfaces ErrServerUnreachable to
// the caller instead of retrying forever; earlier failures are ignored.
const DefaultMaxRefreshFailures = 3

// Config configures a RaftClient beyond its mandatory constructor
// arguments.
type Config struct {
	// MaxRefreshFailures bounds consecutive membership refresh failures
	// before ErrServerUnreachable surfaces to a command caller. Zero
	// selects DefaultMaxRefreshFailures.
	MaxRefreshFailures int

	Logger  logger.Logger
	Metrics *metric.Registry
}

func (c Config) withDefaults() Config {
	if c.MaxRefreshFailures <= 0 {
		c.MaxRefreshFailures = DefaultMaxRefreshFailures
	}
	if c.Logger == nil {
		c.Logger = logger.Default()
	}
	if c.Metrics == nil {
		c.Metrics = metric.NewRegistry()
	}
	return c
}

// RaftClient is the top-level facade described in the package doc.
// Its mutable fields are either atomics or guarded by the membership
// view's own reader/writer lock; no field requires a client-wide mutex.
type RaftClient struct {
	qryPos      atomic.Uint64
	leaderID    atomic.Uint64
	lastLogID   atomic.Uint64
	lastLogTerm atomic.Uint64

	refreshFailures atomic.Int32
	maxRefreshFails int32

	serviceID uint64

	membership *raftmembership.View
	pool       raftmembership.Pool
	subs       *subscription.Registry

	log     logger.Logger
	metrics *metric.Registry

	ulidMu      sync.Mutex
	ulidEntropy *ulid.MonotonicEntropy
}

// New constructs a RaftClient seeded with servers, performing an
// initial membership refresh. Construction fails with
// ErrServerUnreachable if no seed server responds.
func New(servers []string, serviceID uint64, pool raftmembership.Pool, subs *subscription.Registry, cfg Config) (*RaftClient, error) {
	cfg = cfg.withDefaults()

	var seed [8]byte
	_, _ = rand.Read(seed[:])

	c := &RaftClient{
		serviceID:       serviceID,
		pool:            pool,
		subs:            subs,
		log:             cfg.Logger,
		metrics:         cfg.Metrics,
		maxRefreshFails: int32(cfg.MaxRefreshFailures),
		ulidEntropy:     ulid.Monotonic(rand.Reader, 0),
	}
	c.qryPos.Store(binary.BigEndian.Uint64(seed[:]))

	c.membership = raftmembership.New(pool, cfg.Logger, func(id uint64) {
		if c.leaderID.Swap(id) != id {
			c.metrics.LeaderChanges.Inc()
		}
	})

	if err := c.membership.Refresh(servers); err != nil {
		return nil, ErrServerUnreachable
	}
	c.metrics.MembershipSize.Set(float64(c.membership.Size()))

	return c, nil
}

// CurrentLeaderID returns the cached leader id; 0 means unknown.
func (c *RaftClient) CurrentLeaderID() uint64 {
	return c.leaderID.Load()
}

// newCallID returns a per-call correlation id for structured logging.
func (c *RaftClient) newCallID() string {
	c.ulidMu.Lock()
	defer c.ulidMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), c.ulidEntropy)
	if err != nil {
		return ""
	}
	return id.String()
}

// genLogEntry stamps an outgoing RPC with the client's current log
// coordinates so a replica can tell whether it has caught up.
func (c *RaftClient) genLogEntry(smID, fnID uint64, data []byte) raftmembership.LogEntry {
	return raftmembership.LogEntry{
		ID:   c.lastLogID.Load(),
		Term: c.lastLogTerm.Load(),
		SMID: smID,
		FnID: fnID,
		Data: data,
	}
}

// swapWhenGreater is the monotonic-advance primitive: read current,
// return if the proposal doesn't exceed it, else CAS and retry on a
// lost race. The atomic never observes a value lower than any value it
// has already observed.
func swapWhenGreater(a *atomic.Uint64, value uint64) {
	for {
		current := a.Load()
		if current >= value {
			return
		}
		if a.CompareAndSwap(current, value) {
			return
		}
	}
}

func (c *RaftClient) advanceLogCoordinates(logID, logTerm uint64) {
	swapWhenGreater(&c.lastLogID, logID)
	swapWhenGreater(&c.lastLogTerm, logTerm)
}
