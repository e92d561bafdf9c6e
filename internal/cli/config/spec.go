// Package config defines the CLI-local configuration structure.
package config

// CLIConfig is the local configuration for raftclient-cli. The
// connect/exec/status commands take their values from flags and do not
// read these fields.
type CLIConfig struct {
	// DefaultServers lists seed server addresses.
	DefaultServers []string `koanf:"default_servers" yaml:"default_servers"`

	// DefaultServiceID is the target service id.
	DefaultServiceID uint64 `koanf:"default_service_id" yaml:"default_service_id"`

	// DefaultOutput names an output format: table, json, or yaml.
	DefaultOutput string `koanf:"default_output" yaml:"default_output"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServiceID: 1,
		DefaultOutput:    "table",
	}
}
