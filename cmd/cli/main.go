package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heva-credit/heva/internal/buildinfo"
	"github.com/heva-credit/heva/internal/client/cli"
	"github.com/heva-credit/heva/internal/client/config"
	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/metrics"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	m := metrics.NewAuth(prometheus.DefaultRegisterer)

	app, err := cli.NewApp(ctx, cfg, logger, m)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
