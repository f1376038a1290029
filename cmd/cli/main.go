package main

import (
	"context"
	"log"
	"os"

	"chatlite/internal/buildinfo"
	"chatlite/internal/cli"
	"chatlite/internal/config"
	"chatlite/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.SlogLevel())

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
