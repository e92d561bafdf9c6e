package command

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/raftclient-go/internal/raftclient"
)

// rawMsg is the CLI's own Msg[[]byte] implementation: it carries the
// payload the user typed verbatim, letting the CLI dispatch arbitrary
// bytes against a state machine without knowing its real request/
// response schema. Real callers implement Msg themselves instead.
type rawMsg struct {
	fnID    uint64
	op      raftclient.OpType
	payload []byte
}

func (m rawMsg) Encode() (uint64, raftclient.OpType, []byte) { return m.fnID, m.op, m.payload }
func (m rawMsg) DecodeReturn(data []byte) []byte             { return data }

// ExecCommand returns the exec command: a direct, low-level way to send
// a query or command through RaftClient.Execute.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "dispatch a raw query or command against a state machine",
		ArgsUsage: "FN_ID PAYLOAD",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "sm-id",
				Usage: "target state machine id",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "query",
				Usage: "dispatch as a query instead of a command (reads tolerate stale replicas)",
			},
		},
		Action: execAction,
	}
}

func execAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: exec [--sm-id N] [--query] FN_ID PAYLOAD")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	fnID, err := strconv.ParseUint(c.Args().Get(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid FN_ID: %w", err)
	}
	payload := []byte(c.Args().Get(1))

	op := raftclient.OpCommand
	if c.Bool("query") {
		op = raftclient.OpQuery
	}

	smID := c.Uint64("sm-id")
	data, err := raftclient.Execute[[]byte](client, smID, rawMsg{fnID: fnID, op: op, payload: payload})
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", data)
	return nil
}

// SubscribeCommand returns the subscribe command: registers a callback
// for a pattern and prints notifications as they arrive for the --for
// duration (30s by default), or until interrupted when --for is 0.
func SubscribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "subscribe",
		Usage:     "subscribe to a state machine pattern and print notifications",
		ArgsUsage: "FN_ID PATTERN",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "sm-id",
				Usage: "target state machine id",
				Value: 1,
			},
			&cli.DurationFlag{
				Name:  "for",
				Usage: "how long to listen before returning (0 = until interrupted)",
				Value: 30 * time.Second,
			},
		},
		Action: subscribeAction,
	}
}

func subscribeAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: subscribe [--sm-id N] FN_ID PATTERN")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	fnID, err := strconv.ParseUint(c.Args().Get(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid FN_ID: %w", err)
	}
	pattern := []byte(c.Args().Get(1))
	smID := c.Uint64("sm-id")

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	msg := rawMsg{fnID: fnID, op: raftclient.OpSubscribe, payload: pattern}
	err = raftclient.Subscribe[[]byte](client, smID, msg, func(data []byte) {
		fmt.Fprintf(w, "notification: %s\n", data)
		w.Flush()
	})
	if err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	fmt.Fprintf(w, "subscribed; listening for %s\n", c.Duration("for"))
	w.Flush()

	if d := c.Duration("for"); d > 0 {
		time.Sleep(d)
	} else {
		select {}
	}
	return nil
}
