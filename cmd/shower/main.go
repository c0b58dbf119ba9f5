package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/babyduj/shower-api/internal/session"
)

func main() {
	path, err := session.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		store:   session.NewStore(path),
		readPIN: readPINFromTerminal,
	}

	if err := c.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
