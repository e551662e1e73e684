package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/pkgsweep/pkgsweep/pkg/cli/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewCliRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
