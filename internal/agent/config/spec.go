// Package config defines the agent configuration structure.
package config

import "time"

// AgentConfig is the root configuration for raftclient-agent.
type AgentConfig struct {
	Cluster ClusterSection `koanf:"cluster"`
	Gossip  GossipSection  `koanf:"gossip"`
	Metrics MetricsSection `koanf:"metrics"`
	TLS     TLSSection     `koanf:"tls"`
	Log     LogSection     `koanf:"log"`
}

// ClusterSection configures the target Raft cluster.
type ClusterSection struct {
	// Seeds are the initial server addresses used for the first
	// membership refresh. At least one must be reachable at startup.
	Seeds []string `koanf:"seeds"`

	// ServiceID is the target Raft service identifier carried in every
	// subscription key this agent registers.
	ServiceID uint64 `koanf:"service_id"`

	// DialTimeout bounds a single RPC round-trip.
	DialTimeout time.Duration `koanf:"dial_timeout"`

	// MaxRefreshFailures bounds consecutive failed membership refreshes
	// before command dispatch surfaces an unreachable-cluster error.
	MaxRefreshFailures int `koanf:"max_refresh_failures"`
}

// GossipSection configures optional memberlist-based seed discovery.
type GossipSection struct {
	Enabled   bool     `koanf:"enabled"`
	NodeID    string   `koanf:"node_id"`
	ClusterID string   `koanf:"cluster_id"`
	BindAddr  string   `koanf:"bind_addr"`
	BindPort  int      `koanf:"bind_port"`
	Seeds     []string `koanf:"seeds"`
}

// MetricsSection configures the Prometheus exposition endpoint.
type MetricsSection struct {
	Addr string `koanf:"addr"`
}

// TLSSection configures trust roots for HTTPS replicas.
type TLSSection struct {
	// CAFile adds a PEM bundle to the system roots.
	CAFile string `koanf:"ca_file"`

	// CADir adds every .pem/.crt/.cer file in a directory.
	CADir string `koanf:"ca_dir"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
