package raftclient

import (
	"github.com/yndnr/raftclient-go/internal/subscription"
	"github.com/yndnr/raftclient-go/pkg/hashid"
)

// Subscribe sends msg through command routing so the server can bind
// the subscription — a real round-trip rather than a purely local side
// effect — then registers f under the key (service_id, service_id,
// hash(payload)): the first two components are both the caller's own
// service id, not sm_id.
func Subscribe[R any](c *RaftClient, smID uint64, msg Msg[R], f func(R)) error {
	fnID, _, payload := msg.Encode()

	if _, err := c.command(smID, fnID, payload); err != nil {
		return err
	}

	patternID := hashid.Payload(payload)
	key := subscription.Key{SMID: c.serviceID, ServiceID: c.serviceID, PatternID: patternID}
	c.subs.Register(key, func(data []byte) {
		f(msg.DecodeReturn(data))
	})
	c.metrics.SubscriptionSend.Inc()
	return nil
}
