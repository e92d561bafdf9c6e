package raftclient

import (
	"time"

	"github.com/yndnr/raftclient-go/internal/raftmembership"
)

// Execute encodes msg, dispatches it against the given state machine id
// according to its OpType, and decodes the response into R. RaftClient
// itself has no generic methods (Go forbids them); Execute is a
// package-level generic function taking the client explicitly instead.
func Execute[R any](c *RaftClient, smID uint64, msg Msg[R]) (R, error) {
	var zero R

	fnID, op, payload := msg.Encode()
	callID := c.newCallID()

	start := time.Now()
	var data []byte
	var err error
	switch op {
	case OpQuery:
		data, err = c.query(smID, fnID, payload)
		c.metrics.RequestDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())
	case OpCommand, OpSubscribe:
		data, err = c.command(smID, fnID, payload)
		c.metrics.RequestDuration.WithLabelValues("command").Observe(time.Since(start).Seconds())
	default:
		return zero, ErrUnknown
	}

	if err != nil {
		c.log.Debug("raftclient: execute failed", "call_id", callID, "sm_id", smID, "fn_id", fnID, "error", err)
		return zero, err
	}
	return msg.DecodeReturn(data), nil
}

// query implements the read routing policy: round-robin replica
// selection tolerant of stale followers, bounded retry on LeftBehind.
func (c *RaftClient) query(smID, fnID uint64, data []byte) ([]byte, error) {
	n := c.membership.Size()
	if n == 0 {
		c.metrics.RequestsTotal.WithLabelValues("query", "too_many_retry").Inc()
		return nil, ErrTooManyRetry
	}

	for depth := 0; depth < n; depth++ {
		pos := c.qryPos.Add(1) - 1
		_, stub, ok := c.membership.StubAt(pos)
		if !ok {
			c.metrics.RequestsTotal.WithLabelValues("query", "unknown").Inc()
			return nil, ErrUnknown
		}

		entry := c.genLogEntry(smID, fnID, data)
		resp, err := stub.Query(entry)
		if err != nil {
			c.metrics.RequestsTotal.WithLabelValues("query", "unknown").Inc()
			return nil, ErrUnknown
		}

		if resp.LeftBehind {
			c.metrics.RetriesTotal.WithLabelValues("query", "left_behind").Inc()
			continue
		}

		c.advanceLogCoordinates(resp.LastLogID, resp.LastLogTerm)
		c.metrics.RequestsTotal.WithLabelValues("query", "success").Inc()
		return resp.Data, nil
	}

	c.metrics.RequestsTotal.WithLabelValues("query", "too_many_retry").Inc()
	return nil, ErrTooManyRetry
}

// command implements the write routing policy: leader-cached
// dispatch with NotLeader re-caching, best-effort leader rotation on
// transport failure, membership refresh when no leader is known, and
// NotCommitted treated as terminal.
func (c *RaftClient) command(smID, fnID uint64, data []byte) ([]byte, error) {
	n := c.membership.Size()
	if n == 0 {
		c.metrics.RequestsTotal.WithLabelValues("command", "too_many_retry").Inc()
		return nil, ErrTooManyRetry
	}

	for depth := 0; depth < n; depth++ {
		action := actionNone
		var leaderHint uint64

		leaderID := c.leaderID.Load()
		stub, connected := c.membership.Has(leaderID)

		if leaderID == 0 || !connected {
			action = actionUpdateInfo
		} else {
			entry := c.genLogEntry(smID, fnID, data)
			resp, err := stub.Command(entry)
			switch {
			case err != nil:
				action = actionSwitchLeader
			case resp.Outcome == raftmembership.CmdSuccess:
				c.advanceLogCoordinates(resp.LastLogID, resp.LastLogTerm)
				c.metrics.RequestsTotal.WithLabelValues("command", "success").Inc()
				return resp.Data, nil
			case resp.Outcome == raftmembership.CmdNotLeader:
				action = actionNotLeader
				leaderHint = resp.LeaderHint
			case resp.Outcome == raftmembership.CmdNotCommitted:
				action = actionNotCommitted
			default:
				action = actionSwitchLeader
			}
		}

		switch action {
		case actionUpdateInfo:
			if err := c.refreshMembership(); err != nil {
				return nil, err
			}
			c.metrics.RetriesTotal.WithLabelValues("command", "update_info").Inc()
		case actionSwitchLeader:
			c.switchLeader()
			c.metrics.RetriesTotal.WithLabelValues("command", "switch_leader").Inc()
		case actionNotLeader:
			c.leaderID.Store(leaderHint)
			c.metrics.RetriesTotal.WithLabelValues("command", "not_leader").Inc()
		case actionNotCommitted:
			c.metrics.RequestsTotal.WithLabelValues("command", "not_committed").Inc()
			return nil, ErrNotCommitted
		}
	}

	c.metrics.RequestsTotal.WithLabelValues("command", "too_many_retry").Inc()
	return nil, ErrTooManyRetry
}

// switchLeader rotates the cached leader to the (qry_pos mod N)-th
// connected replica, compare-and-swapping from the previously cached
// id. Lost races are acceptable: another goroutine's successful
// NotLeader re-cache is at least as good a guess.
func (c *RaftClient) switchLeader() {
	ids := c.membership.SortedIDs()
	if len(ids) == 0 {
		return
	}
	pos := c.qryPos.Load()
	candidate := ids[pos%uint64(len(ids))]
	prior := c.leaderID.Load()
	c.leaderID.CompareAndSwap(prior, candidate)
}

// refreshMembership re-derives the candidate address set from the
// members known so far and refreshes the membership view. A failure is
// ignored unless it is the maxRefreshFails-th in a row, which surfaces
// ErrServerUnreachable rather than retrying forever.
func (c *RaftClient) refreshMembership() error {
	candidates := c.membership.KnownAddresses()
	if err := c.membership.Refresh(candidates); err != nil {
		c.metrics.RefreshFailures.Inc()
		if c.refreshFailures.Add(1) >= c.maxRefreshFails {
			return ErrServerUnreachable
		}
		return nil
	}
	c.refreshFailures.Store(0)
	c.metrics.MembershipSize.Set(float64(c.membership.Size()))
	return nil
}
