// Package command provides CLI command definitions for raftclient-cli, a
// demonstration command-line front end over internal/raftclient.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, connection-manager access
//   - connect.go: Session connect/disconnect commands
//   - status.go: Leader and membership inspection commands
//   - exec.go: Raw query/command dispatch and subscription registration
//   - config.go: Local CLI configuration subcommand group
//
// Commands follow a consistent pattern of parsing flags, calling the
// appropriate RaftClient method, and formatting output.
package command
