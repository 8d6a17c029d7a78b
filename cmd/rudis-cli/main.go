// Package main provides the entry point for rudis-cli.
//
// rudis-cli is a thin interactive RESP debug client: it dials a rudis
// server, reads lines from stdin, encodes each as a RESP command, and
// prints the decoded reply. It implements no server-side behavior of
// its own.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kvlabs/rudis/internal/buildinfo"
	"github.com/kvlabs/rudis/internal/cli/repl"
)

func main() {
	app := &cli.App{
		Name:    "rudis-cli",
		Usage:   "interactive RESP debug client for rudis",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "rudis server address",
				EnvVars: []string{"RUDIS_CLI_SERVER"},
				Value:   "127.0.0.1:6379",
			},
			&cli.DurationFlag{
				Name:  "dial-timeout",
				Usage: "timeout for the initial connection",
				Value: 5 * time.Second,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	addr := c.String("server")

	conn, err := net.DialTimeout("tcp", addr, c.Duration("dial-timeout"))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s\n", addr)
	return repl.New(conn).Run()
}
