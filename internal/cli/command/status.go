package command

import (
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/raftclient-go/internal/cli/output"
)

// StatusCommand returns the status subcommand group: read-only
// inspection of the client's current view of the cluster.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "inspect the client's cached view of the cluster",
		Subcommands: []*cli.Command{
			{
				Name:   "leader",
				Usage:  "show the currently cached leader id",
				Action: statusLeader,
			},
			{
				Name:   "members",
				Usage:  "list the known cluster membership",
				Action: statusMembers,
			},
			{
				Name:  "metrics",
				Usage: "print client metrics in Prometheus text format, or serve them over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "serve /metrics on this address instead of printing once (e.g. :9090)",
					},
				},
				Action: statusMetrics,
			},
		},
	}
}

func statusLeader(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	result := map[string]any{"leader_id": client.CurrentLeaderID()}

	switch output.Format(flags.Output) {
	case output.FormatJSON, output.FormatYAML:
		formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
		return formatter.Format(os.Stdout, result)
	default:
		fmt.Printf("Leader: %s\n", formatServerID(client.CurrentLeaderID()))
		return nil
	}
}

type memberRow struct {
	ID      uint64 `json:"id"`
	Address string `json:"address"`
}

func statusMembers(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	members := client.Members()
	ids := make([]uint64, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]memberRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, memberRow{ID: id, Address: members[id]})
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
	return formatter.Format(os.Stdout, rows)
}

func statusMetrics(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	if addr := c.String("listen"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", client.Metrics().Handler())
		fmt.Printf("serving metrics on %s/metrics\n", addr)
		return http.ListenAndServe(addr, mux)
	}

	return client.Metrics().Dump(os.Stdout)
}
