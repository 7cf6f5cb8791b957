package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/documinds/internal/adapters/cli"
	"github.com/kirillkom/documinds/internal/config"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, cfg, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
