package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
)

// ConnectCommand returns the connect command.
func ConnectCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "connect to a Raft cluster from one or more seed addresses",
		ArgsUsage: "[SERVER...]",
		Action:    connectAction,
	}
}

func connectAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	servers := flags.Servers
	if c.Args().Len() > 0 {
		servers = c.Args().Slice()
	}
	if len(servers) == 0 {
		return fmt.Errorf("at least one seed server is required (pass arguments or --servers)")
	}

	mgr := GetConnectionManager(c)
	if mgr == nil {
		return fmt.Errorf("connection manager not initialized")
	}

	if err := mgr.Connect(servers, flags.ServiceID, nil, logger.Default()); err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}

	fmt.Printf("Connected to %s (service id %d)\n", strings.Join(servers, ", "), flags.ServiceID)
	fmt.Printf("Leader: %s\n", formatServerID(mgr.Current().Client.CurrentLeaderID()))
	return nil
}

// DisconnectCommand returns the disconnect command.
func DisconnectCommand() *cli.Command {
	return &cli.Command{
		Name:   "disconnect",
		Usage:  "disconnect from the current cluster",
		Action: disconnectAction,
	}
}

func disconnectAction(c *cli.Context) error {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		return fmt.Errorf("connection manager not initialized")
	}

	if !mgr.IsConnected() {
		fmt.Println("not connected")
		return nil
	}

	mgr.Disconnect()
	fmt.Println("disconnected")
	return nil
}

// formatServerID renders a server id as decimal, or "unknown" for 0,
// which the client reserves to mean "no known leader".
func formatServerID(id uint64) string {
	if id == 0 {
		return "unknown"
	}
	return strconv.FormatUint(id, 10)
}
