package raftclient

import "github.com/yndnr/raftclient-go/internal/telemetry/metric"

// Members returns a snapshot of the known cluster membership as learned
// from the latest successful refresh: server id to address. The
// returned map is a copy; mutating it has no effect on the client.
func (c *RaftClient) Members() map[uint64]string {
	return c.membership.Snapshot()
}

// MembershipSize returns the number of replicas currently connected.
func (c *RaftClient) MembershipSize() int {
	return c.membership.Size()
}

// Metrics returns the registry this client emits its Prometheus metrics
// against, so callers can mount it behind an HTTP handler or a CLI
// "metrics" command.
func (c *RaftClient) Metrics() *metric.Registry {
	return c.metrics
}

// RefreshMembership refreshes the membership view from the given
// candidate addresses, falling back to the addresses already known when
// none are supplied. Long-running callers use this to feed externally
// learned candidates (a changed seed file, gossip discovery) into the
// view; transient callers never need it, since command dispatch
// refreshes on its own whenever the leader is unknown.
func (c *RaftClient) RefreshMembership(addrs []string) error {
	if len(addrs) == 0 {
		addrs = c.membership.KnownAddresses()
	}
	if err := c.membership.Refresh(addrs); err != nil {
		return err
	}
	c.metrics.MembershipSize.Set(float64(c.membership.Size()))
	return nil
}
