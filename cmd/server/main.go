package main

import (
	"context"
	"log"
	"os"

	"github.com/heva-credit/heva/internal/buildinfo"
	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/server"
	"github.com/heva-credit/heva/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stdout)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
