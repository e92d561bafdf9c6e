// Package config defines the agent configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultServiceID   = 1
	DefaultDialTimeout = 5 * time.Second

	DefaultMetricsAddr = "127.0.0.1:9464"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default agent configuration.
func Default() *AgentConfig {
	return &AgentConfig{
		Cluster: ClusterSection{
			ServiceID:   DefaultServiceID,
			DialTimeout: DefaultDialTimeout,
		},
		Metrics: MetricsSection{
			Addr: DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
