package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/certgen/pkg/certgen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := &cli{}
	err := c.rootCmd().ExecuteContext(ctx)
	stop()

	// app is nil when cobra rejected the command line before setup ran
	if c.app == nil {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err != nil {
		c.app.Logger.Errorw("Command failed", "error", err)
	}
	c.app.Logger.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, certgen.StatusMessage(err))
		os.Exit(1)
	}
}
