// Package repl provides interactive mode for raftclient-cli.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop and command dispatch
//   - completer.go: Prefix completion of command names (not arguments)
//   - history.go: Command history persistence
//
// Features:
//
//   - A command-name completer (Run reads plain lines and does not
//     call it)
//   - In-memory history with indexed lookup (no search)
//   - Commands dispatch through the same cli.App used by one-shot
//     invocations, so a connect in the REPL persists across subsequent
//     lines in the same process
package repl
