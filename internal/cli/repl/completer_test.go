package repl

import "testing"

func TestNewCompleter(t *testing.T) {
	c := NewCompleter()
	if c == nil {
		t.Fatal("NewCompleter returned nil")
	}
	if len(c.commands) == 0 {
		t.Error("commands should be initialized")
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "GET prefix", prefix: "GE", want: []string{"GET"}},
		{name: "case insensitive", prefix: "get", want: []string{"GET"}},
		{name: "D prefix matches DEL DECR DBSIZE", prefix: "D", want: []string{"DEL", "DECR", "DBSIZE"}},
		{name: "help prefix", prefix: "help", want: []string{"help"}},
		{name: "ex prefix matches EXISTS EXPIRE exit", prefix: "ex", want: []string{"EXISTS", "EXPIRE", "exit"}},
		{name: "no match", prefix: "nonexistent", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(tt.prefix)
			if tt.want == nil {
				if len(got) != 0 {
					t.Errorf("Complete(%q) = %v, want nil/empty", tt.prefix, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Errorf("Complete(%q) returned %d items, want %d", tt.prefix, len(got), len(tt.want))
				return
			}
			for i, g := range got {
				if g != tt.want[i] {
					t.Errorf("Complete(%q)[%d] = %q, want %q", tt.prefix, i, g, tt.want[i])
				}
			}
		})
	}
}

func TestCompleter_Commands(t *testing.T) {
	c := NewCompleter()

	essential := []string{"PING", "GET", "SET", "DEL", "EXISTS", "EXPIRE", "INCR", "DECR", "KEYS", "DBSIZE", "FLUSHDB", "help", "exit", "quit"}

	for _, cmd := range essential {
		found := false
		for _, c := range c.commands {
			if c == cmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("essential command %q not found in commands", cmd)
		}
	}
}
