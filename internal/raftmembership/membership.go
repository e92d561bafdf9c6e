package raftmembership

import (
	"errors"
	"sort"
	"sync"

	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
	"github.com/yndnr/raftclient-go/pkg/hashid"
)

// ErrServerUnreachable is returned by Refresh when no candidate address
// responded with usable cluster info.
var ErrServerUnreachable = errors.New("raftmembership: no server reachable")

// View maps server ids to addresses and owns a pool of per-server RPC
// stubs. keys(clients) is always a subset of keys(idMap) after any
// successful Refresh; entries present only in clients but absent from
// the latest idMap are evicted.
type View struct {
	pool Pool
	log  logger.Logger

	mu      sync.RWMutex
	clients map[uint64]Stub
	idMap   map[uint64]string

	// onLeader is invoked with the leader id learned from an
	// authoritative refresh. RaftClient wires this to cache leaderID.
	onLeader func(uint64)
}

// New creates an empty membership view backed by the given connection
// pool. onLeader, if non-nil, is called with the authoritative leader id
// every time Refresh succeeds.
func New(pool Pool, log logger.Logger, onLeader func(uint64)) *View {
	if log == nil {
		log = logger.Default()
	}
	return &View{
		pool:     pool,
		log:      log,
		clients:  make(map[uint64]Stub),
		idMap:    make(map[uint64]string),
		onLeader: onLeader,
	}
}

// Size returns the number of currently connected replicas.
func (v *View) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.clients)
}

// SortedIDs returns the connected server ids in ascending order, giving
// query/command routing a deterministic positional index.
func (v *View) SortedIDs() []uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sortedIDsLocked()
}

func (v *View) sortedIDsLocked() []uint64 {
	ids := make([]uint64, 0, len(v.clients))
	for id := range v.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// StubAt returns the id and stub at the given position modulo the
// current membership size. The second return is false if the view has
// no connected replicas.
func (v *View) StubAt(pos uint64) (uint64, Stub, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := v.sortedIDsLocked()
	if len(ids) == 0 {
		return 0, nil, false
	}
	id := ids[pos%uint64(len(ids))]
	return id, v.clients[id], true
}

// Has reports whether the given server id is currently connected, and
// returns its stub if so.
func (v *View) Has(id uint64) (Stub, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.clients[id]
	return s, ok
}

// Snapshot returns a copy of the latest authoritative id-to-address
// membership, regardless of which entries are currently connected.
func (v *View) Snapshot() map[uint64]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[uint64]string, len(v.idMap))
	for id, addr := range v.idMap {
		out[id] = addr
	}
	return out
}

// KnownAddresses returns the addresses of every server the view has
// learned about from the latest authoritative membership, regardless of
// whether a stub is currently connected to it.
func (v *View) KnownAddresses() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, 0, len(v.idMap))
	for _, addr := range v.idMap {
		out = append(out, addr)
	}
	return out
}

// Refresh idempotently converges the view's clients map to match the
// latest authoritative membership.
//
// For every candidate address not yet connected, it obtains a stub from
// the pool, silently skipping unreachable candidates. It then queries
// each connected candidate for cluster info until one responds with a
// non-zero leader id; that response becomes authoritative (first
// responder wins, no further tie-breaking). idMap is replaced with the
// authoritative membership, clients absent from it are evicted, and
// newly learned ids are connected (failures skipped silently). On
// success the observed leader id is published via onLeader.
//
// On total failure (no candidate yielded usable cluster info), Refresh
// returns ErrServerUnreachable; idMap is left unchanged and no client is
// evicted, though stubs obtained for new candidates stay connected.
func (v *View) Refresh(addrs []string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, addr := range addrs {
		id := hashid.Address(addr)
		if _, ok := v.clients[id]; ok {
			continue
		}
		stub, err := v.pool.Get(addr)
		if err != nil {
			v.log.Debug("raftmembership: candidate unreachable", "address", addr, "error", err)
			continue
		}
		v.clients[id] = stub
	}

	var info ClientClusterInfo
	found := false
	for id := range v.clients {
		stub := v.clients[id]
		ci, err := stub.ClusterInfo()
		if err != nil {
			continue
		}
		if ci.LeaderID != 0 {
			info = ci
			found = true
			break
		}
	}
	if !found {
		return ErrServerUnreachable
	}

	newIDMap := make(map[uint64]string, len(info.Members))
	for id, addr := range info.Members {
		newIDMap[id] = addr
	}

	for id := range v.clients {
		if _, ok := newIDMap[id]; !ok {
			delete(v.clients, id)
		}
	}
	for id, addr := range newIDMap {
		if _, ok := v.clients[id]; ok {
			continue
		}
		stub, err := v.pool.Get(addr)
		if err != nil {
			v.log.Debug("raftmembership: newly learned member unreachable", "address", addr, "error", err)
			continue
		}
		v.clients[id] = stub
	}
	v.idMap = newIDMap

	if v.onLeader != nil {
		v.onLeader(info.LeaderID)
	}
	v.log.Info("raftmembership: refreshed",
		"members", len(v.idMap),
		"connected", len(v.clients),
		"leader_id", info.LeaderID,
	)
	return nil
}
