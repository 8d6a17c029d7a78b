// Package repl provides the interactive REPL mode for rudis-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/kvlabs/rudis/internal/resp"
)

// REPL reads lines from input, encodes each as a RESP command, sends it
// over conn, and prints the decoded reply to output.
type REPL struct {
	conn      net.Conn
	br        *bufio.Reader
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// New creates a REPL instance that issues commands over conn.
func New(conn net.Conn) *REPL {
	return &REPL{
		conn:      conn,
		br:        bufio.NewReader(conn),
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// Run starts the REPL loop. It returns nil on EOF (e.g. Ctrl-D).
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: could not load history: %v\n", err)
	}
	defer r.history.Save()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "rudis> ")

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

// execute tokenizes line, sends it as a RESP array of bulk strings, and
// prints the decoded reply.
func (r *REPL) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	items := make([]resp.Value, len(fields))
	for i, f := range fields {
		items[i] = resp.BulkStringValue(f)
	}

	bw := bufio.NewWriter(r.conn)
	if err := resp.Encode(bw, resp.ArrayValue(items)); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	reply, err := resp.Decode(r.br)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, formatReply(reply))
	return nil
}

// formatReply renders a decoded RESP value the way redis-cli does.
func formatReply(v resp.Value) string {
	switch v.Kind {
	case resp.SimpleString:
		return v.Str
	case resp.Error:
		return "(error) " + v.Str
	case resp.Integer:
		return fmt.Sprintf("(integer) %d", v.Int)
	case resp.BulkString:
		if v.IsNull {
			return "(nil)"
		}
		return fmt.Sprintf("%q", string(v.Bulk))
	case resp.Array:
		if v.IsNull {
			return "(nil)"
		}
		if len(v.Items) == 0 {
			return "(empty array)"
		}
		var b strings.Builder
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%d) %s", i+1, formatReply(item))
		}
		return b.String()
	default:
		return "(unknown reply)"
	}
}
