// Package main is the entrypoint for the qgit CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/qlinetech/qgit/cmd"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/iocache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd.SetCacheManager(iocache.Manager)
	err := cmd.ExecuteContext(ctx)

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseCaching()
	stop()

	if err != nil {
		contract.LogFatal("qgit failed", err)
	}
}
