// Package config defines the CLI-local configuration structure for
// raftclient-cli.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.raftclient-cli/cli.yaml)
//   - loader.go: Configuration loading
//
// Configuration includes:
//
//   - Default seed servers and service id
//   - Output format preference
//
// The command tree reads its settings from flags; this file is read by
// "config show" and "config validate".
package config
