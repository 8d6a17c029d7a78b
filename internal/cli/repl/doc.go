// Package repl provides interactive mode for rudis-cli.
//
// This package implements the Read-Eval-Print Loop for interactive
// RESP debug sessions:
//
//   - repl.go: Main REPL loop, line-to-RESP encoding, reply formatting
//   - completer.go: Prefix completion for command names (the line
//     reader in repl.go does not call it)
//   - history.go: Command history persistence
package repl
