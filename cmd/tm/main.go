package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"task-manager/internal/cli"
)

func main() {
	// Ctrl+C or SIGTERM cancels the running command, which then exits cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}
