package raftmembership

import (
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/hashicorp/memberlist"

	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
)

// Discovery supplements the static seed-address list with gossip-learned
// replica addresses, joining the cluster's memberlist ring in client
// mode (it never advertises a Raft address of its own). Every join/leave
// it observes is reported through onChange so the owner can trigger a
// MembershipView.Refresh with the newly learned candidate set.
type Discovery struct {
	memberList *memberlist.Memberlist
	log        logger.Logger
	shutdown   atomic.Bool

	clusterID string
	onChange  func()
}

// DiscoveryConfig configures the gossip discovery helper.
type DiscoveryConfig struct {
	// NodeID uniquely identifies this client within the gossip ring.
	NodeID string

	// ClusterID, if set, excludes nodes advertising a different cluster
	// id: their join and update events are not reported through OnChange
	// and Addresses omits them. They still remain in the gossip ring.
	ClusterID string

	BindAddr string
	BindPort int

	// SeedNodes are the initial gossip peers to join.
	SeedNodes []string

	Logger logger.Logger

	// OnChange is invoked (from the memberlist event goroutine) whenever
	// a replica's Raft address is learned, updated, or removed.
	OnChange func()
}

// NewDiscovery joins the gossip ring described by cfg.
func NewDiscovery(cfg DiscoveryConfig) (*Discovery, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	mlConfig := memberlist.DefaultLANConfig()
	mlConfig.Name = cfg.NodeID
	if cfg.BindAddr != "" {
		mlConfig.BindAddr = cfg.BindAddr
	}
	if cfg.BindPort != 0 {
		mlConfig.BindPort = cfg.BindPort
	}
	mlConfig.LogOutput = &logWriter{log: cfg.Logger}

	d := &Discovery{log: cfg.Logger, clusterID: cfg.ClusterID, onChange: cfg.OnChange}
	mlConfig.Events = &eventDelegate{discovery: d}

	ml, err := memberlist.Create(mlConfig)
	if err != nil {
		return nil, fmt.Errorf("raftmembership: create memberlist: %w", err)
	}
	d.memberList = ml

	if len(cfg.SeedNodes) > 0 {
		n, err := ml.Join(cfg.SeedNodes)
		if err != nil {
			ml.Shutdown()
			return nil, fmt.Errorf("raftmembership: join gossip seeds: %w", err)
		}
		cfg.Logger.Info("raftmembership: joined gossip ring", "seed_nodes", cfg.SeedNodes, "joined_count", n)
	}

	return d, nil
}

// Addresses returns the Raft addresses advertised by every currently
// known gossip member, suitable as a Refresh candidate set. Members
// advertising a cluster id other than the configured one are skipped.
func (d *Discovery) Addresses() []string {
	if d.memberList == nil {
		return nil
	}
	out := make([]string, 0, len(d.memberList.Members()))
	for _, n := range d.memberList.Members() {
		var meta nodeMetadata
		if len(n.Meta) > 0 {
			if err := json.Unmarshal(n.Meta, &meta); err == nil {
				if d.clusterID != "" && meta.ClusterID != "" && meta.ClusterID != d.clusterID {
					continue
				}
				if meta.RaftAddr != "" {
					out = append(out, meta.RaftAddr)
					continue
				}
			}
		}
		out = append(out, net.JoinHostPort(n.Addr.String(), fmt.Sprintf("%d", n.Port)))
	}
	return out
}

// Shutdown leaves the gossip ring and releases its resources.
func (d *Discovery) Shutdown() error {
	if !d.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	if d.memberList == nil {
		return nil
	}
	if err := d.memberList.Leave(0); err != nil {
		d.log.Warn("raftmembership: leave gossip ring failed", "error", err)
	}
	return d.memberList.Shutdown()
}

type nodeMetadata struct {
	RaftAddr  string `json:"raft_addr"`
	ClusterID string `json:"cluster_id"`
}

type eventDelegate struct {
	discovery *Discovery
}

func (e *eventDelegate) NotifyJoin(node *memberlist.Node) {
	if !e.acceptClusterID(node) {
		return
	}
	e.discovery.log.Info("raftmembership: gossip peer joined", "node_id", node.Name)
	e.notify()
}

func (e *eventDelegate) NotifyLeave(node *memberlist.Node) {
	e.discovery.log.Info("raftmembership: gossip peer left", "node_id", node.Name)
	e.notify()
}

func (e *eventDelegate) NotifyUpdate(node *memberlist.Node) {
	if !e.acceptClusterID(node) {
		return
	}
	e.discovery.log.Debug("raftmembership: gossip peer updated", "node_id", node.Name)
	e.notify()
}

func (e *eventDelegate) acceptClusterID(node *memberlist.Node) bool {
	if e.discovery.clusterID == "" || len(node.Meta) == 0 {
		return true
	}
	var meta nodeMetadata
	if err := json.Unmarshal(node.Meta, &meta); err != nil {
		return true
	}
	if meta.ClusterID != "" && meta.ClusterID != e.discovery.clusterID {
		e.discovery.log.Warn("raftmembership: rejecting gossip peer with mismatched cluster id",
			"node_id", node.Name, "cluster_id", meta.ClusterID)
		return false
	}
	return true
}

func (e *eventDelegate) notify() {
	if e.discovery.onChange != nil {
		e.discovery.onChange()
	}
}

// logWriter adapts the project Logger to the io.Writer memberlist wants
// for its own internal diagnostics.
type logWriter struct {
	log logger.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.log.Debug(string(p))
	return len(p), nil
}
