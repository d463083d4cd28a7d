package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/nestify/internal/buildinfo"
	"github.com/dmitrijs2005/nestify/internal/client/cli"
	"github.com/dmitrijs2005/nestify/internal/client/config"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
