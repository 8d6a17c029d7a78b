package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer populated with the command names
// internal/command knows how to parse.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"PING", "ECHO",
			"GET", "SET", "DEL", "EXISTS", "EXPIRE",
			"INCR", "DECR",
			"KEYS", "DBSIZE", "FLUSHDB",
			"help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix. Matching
// is case-insensitive since commands are case-insensitive on the wire.
func (c *Completer) Complete(prefix string) []string {
	upper := strings.ToUpper(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToUpper(cmd), upper) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
