package benchmark

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/raftclient-go/internal/raftclient"
	"github.com/yndnr/raftclient-go/internal/raftmembership"
	"github.com/yndnr/raftclient-go/internal/subscription"
	"github.com/yndnr/raftclient-go/pkg/hashid"
)

// ClusterSizes defines the membership sizes benchmarked for routing
// overhead.
var ClusterSizes = []int{1, 3, 5, 10}

// alwaysLeaderStub answers every query and command instantly and
// successfully, isolating client-side dispatch overhead from any
// simulated network or server cost.
type alwaysLeaderStub struct {
	address string
	info    raftmembership.ClientClusterInfo
}

func (s *alwaysLeaderStub) ClusterInfo() (raftmembership.ClientClusterInfo, error) {
	return s.info, nil
}

func (s *alwaysLeaderStub) Query(raftmembership.LogEntry) (raftmembership.ClientQryResponse, error) {
	return raftmembership.ClientQryResponse{Data: []byte("q"), LastLogID: 1, LastLogTerm: 1}, nil
}

func (s *alwaysLeaderStub) Command(raftmembership.LogEntry) (raftmembership.ClientCmdResponse, error) {
	return raftmembership.ClientCmdResponse{Outcome: raftmembership.CmdSuccess, Data: []byte("c"), LastLogID: 1, LastLogTerm: 1}, nil
}

type benchPool struct {
	stubs map[string]*alwaysLeaderStub
}

func (p *benchPool) Get(address string) (raftmembership.Stub, error) {
	s, ok := p.stubs[address]
	if !ok {
		return nil, errors.New("benchPool: unknown address")
	}
	return s, nil
}

// echoMsg is the Msg[string] used across every benchmark: it round-trips
// its payload unchanged, so the benchmark measures dispatch overhead
// rather than encode/decode cost.
type echoMsg struct {
	fnID uint64
	op   raftclient.OpType
}

func (m echoMsg) Encode() (uint64, raftclient.OpType, []byte) { return m.fnID, m.op, []byte("payload") }
func (m echoMsg) DecodeReturn(data []byte) string             { return string(data) }

// newBenchClient builds a RaftClient whose membership has exactly size
// replicas, every one of them an alwaysLeaderStub, with replica 0 cached
// as leader.
func newBenchClient(b *testing.B, size int) *raftclient.RaftClient {
	b.Helper()
	pool := &benchPool{stubs: make(map[string]*alwaysLeaderStub, size)}
	members := make(map[uint64]string, size)
	addrs := make([]string, size)

	for i := 0; i < size; i++ {
		addr := fmt.Sprintf("node-%d:1", i)
		addrs[i] = addr
		members[hashid.Address(addr)] = addr
	}
	info := raftmembership.ClientClusterInfo{Members: members, LeaderID: hashid.Address(addrs[0])}
	for _, addr := range addrs {
		pool.stubs[addr] = &alwaysLeaderStub{address: addr, info: info}
	}

	c, err := raftclient.New(addrs, 99, pool, subscription.New(), raftclient.Config{})
	if err != nil {
		b.Fatalf("raftclient.New failed: %v", err)
	}
	return c
}

// reportMemory reports heap usage after a benchmark's steady-state work
// loop, matching the pattern used across this package's benchmarks.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithClusterSizes runs a benchmark function once per membership size
// in sizes, each as its own sub-benchmark.
func runWithClusterSizes(b *testing.B, sizes []int, benchFn func(b *testing.B, size int)) {
	for _, size := range sizes {
		b.Run(fmt.Sprintf("replicas_%d", size), func(b *testing.B) {
			benchFn(b, size)
		})
	}
}
