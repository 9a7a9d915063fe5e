package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"warranty/cmd/warrantyctl/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRoot().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
