// Package config defines the agent configuration structure.
//
// The agent is the long-running form of the smart client: it keeps a
// RaftClient connected to a cluster, republishes its metrics, and
// re-refreshes membership when the seed list or gossip ring changes.
// This package holds the koanf-tagged configuration tree the agent
// loads through internal/infra/confloader.
package config
