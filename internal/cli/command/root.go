// Package command provides CLI command definitions for raftclient-cli.
package command

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/raftclient-go/internal/cli/connection"
	"github.com/yndnr/raftclient-go/internal/infra/buildinfo"
	"github.com/yndnr/raftclient-go/internal/raftclient"
	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "raftclient-cli",
		Usage:   "inspect and drive a Raft cluster through the smart client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ConnectCommand(),
			DisconnectCommand(),
			StatusCommand(),
			ExecCommand(),
			SubscribeCommand(),
			ConfigCommand(),
		},
		Before: func(c *cli.Context) error {
			if _, ok := c.App.Metadata["connMgr"]; !ok {
				c.App.Metadata["connMgr"] = connection.NewManager()
			}
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "servers",
			Aliases: []string{"s"},
			Usage:   "seed Raft server addresses (repeatable, e.g. -s host1:8080 -s host2:8080)",
			EnvVars: []string{"RAFTCLIENT_SERVERS"},
		},
		&cli.StringFlag{
			Name:    "service-id",
			Usage:   "target state machine service id",
			EnvVars: []string{"RAFTCLIENT_SERVICE_ID"},
			Value:   "1",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable verbose logging",
		},
	}
}

// GlobalFlags holds the parsed global flag values.
type GlobalFlags struct {
	Servers   []string
	ServiceID uint64

	Output string
	Wide   bool

	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	serviceID, _ := strconv.ParseUint(c.String("service-id"), 10, 64)
	return &GlobalFlags{
		Servers:   splitServers(c.StringSlice("servers")),
		ServiceID: serviceID,
		Output:    c.String("output"),
		Wide:      c.Bool("wide"),
		Verbose:   c.Bool("verbose"),
	}
}

// splitServers allows a single --servers flag value to carry a
// comma-separated list, in addition to the flag's native repeatability.
func splitServers(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata["connMgr"].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// EnsureConnected returns the active session's RaftClient, connecting
// on demand from the global --servers/--service-id flags if no
// "connect" has happened yet in this process.
func EnsureConnected(c *cli.Context) (*raftclient.RaftClient, error) {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		return nil, fmt.Errorf("connection manager not initialized")
	}

	if mgr.IsConnected() {
		return mgr.Current().Client, nil
	}

	flags := ParseGlobalFlags(c)
	if len(flags.Servers) == 0 {
		return nil, fmt.Errorf("not connected: pass --servers or run the connect command first")
	}

	log := logger.Default()
	if err := mgr.Connect(flags.Servers, flags.ServiceID, nil, log); err != nil {
		return nil, err
	}
	return mgr.Current().Client, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
