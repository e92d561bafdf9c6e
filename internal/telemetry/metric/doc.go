// Package metric provides Prometheus metrics for the Raft smart client.
//
// Metrics include:
//
//   - Dispatched request counts and latency histograms by op type
//   - Retry counts by reason (LeftBehind, NotLeader, SwitchLeader, UpdateInfo)
//   - Leader-change counts and current membership size
//
// Metrics are exposed through Registry.Handler, suitable for mounting
// at /metrics in Prometheus format.
package metric
