// Package config defines the agent configuration structure.
package config

import (
	"errors"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *AgentConfig) error {
	if len(cfg.Cluster.Seeds) == 0 {
		return errors.New("cluster.seeds requires at least one address")
	}
	if cfg.Cluster.ServiceID == 0 {
		return errors.New("cluster.service_id must be non-zero")
	}
	if cfg.Cluster.DialTimeout <= 0 {
		return errors.New("cluster.dial_timeout must be positive")
	}
	if cfg.Gossip.Enabled && cfg.Gossip.NodeID == "" {
		return errors.New("gossip.node_id is required when gossip is enabled")
	}
	if cfg.TLS.CAFile != "" {
		if _, err := os.Stat(cfg.TLS.CAFile); err != nil {
			return errors.New("tls.ca_file not readable: " + err.Error())
		}
	}
	return nil
}
