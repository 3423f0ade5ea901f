package main

import (
	"flag"
	"log/slog"
	"os"

	"fbmetrics/internal/app"
	"fbmetrics/internal/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Run(); err != nil {
		application.Logger.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
