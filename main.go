package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"playstore-dashboard/cli"
	"playstore-dashboard/services"
	"playstore-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(logger, services.SystemClock{})
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
