// Package main provides the entry point for raftclient-cli.
//
// raftclient-cli is the command-line front end over the Raft smart
// client, supporting both single-command mode and an interactive REPL
// mode (run with no arguments, or "repl" explicitly).
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/raftclient-go/internal/cli/command"
	"github.com/yndnr/raftclient-go/internal/cli/repl"
)

func main() {
	if len(os.Args) == 1 || (len(os.Args) == 2 && os.Args[1] == "repl") {
		if err := repl.New().Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := command.App()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
