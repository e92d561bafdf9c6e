// Package repl provides the interactive REPL mode for raftclient-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/raftclient-go/internal/cli/command"
)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
	app       *cli.App
}

// New creates a new REPL instance. The underlying cli.App is built once
// and reused for every line, so a "connect" in one line keeps its
// session alive for lines that follow.
func New() *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(),
		app:       command.App(),
	}
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "raftclient> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

// execute dispatches a REPL line through the same command.App used for
// one-shot invocations, so command wiring is defined in exactly one
// place.
func (r *REPL) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := append([]string{r.app.Name}, fields...)
	// Return exit-coded errors (e.g. an unknown command) to the loop
	// instead of letting urfave/cli call os.Exit.
	r.app.ExitErrHandler = func(*cli.Context, error) {}
	return r.app.Run(args)
}
