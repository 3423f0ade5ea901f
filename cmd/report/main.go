package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fbmetrics/internal/config"
	"fbmetrics/internal/services"
	"fbmetrics/internal/validation"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML configuration file")
	dataDir := flag.String("data", "", "analytics data directory (overrides config)")
	outDir := flag.String("out", "", "report output directory (overrides config)")
	project := flag.String("project", "", "project folder to report on (defaults to all)")
	textOnly := flag.Bool("text", false, "write only the text report, skip the workbook")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}

	logger := config.NewLogger(cfg.Logging, os.Stderr)

	dirs := validation.NewDirValidator(logger)
	if err := dirs.ValidateDataDir(cfg.Paths.DataDir); err != nil {
		logger.Error("invalid data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !*textOnly {
		if err := dirs.ValidateOutputDir(cfg.Paths.ReportsDir); err != nil {
			logger.Error("invalid output directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	service := services.NewDashboardService(cfg, logger)
	ctx := context.Background()

	projects := []string{*project}
	if *project == "" {
		projects, err = service.ListProjects(ctx)
		if err != nil {
			logger.Error("failed to list projects", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if len(projects) == 0 {
			logger.Error("no complete datasets found", slog.String("data_dir", cfg.Paths.DataDir))
			os.Exit(1)
		}
	}

	failed := 0
	for _, p := range projects {
		if err := writeProject(ctx, service, logger, p, *textOnly); err != nil {
			logger.Error("report failed",
				slog.String("project", p),
				slog.String("error", err.Error()))
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func writeProject(ctx context.Context, service *services.DashboardService,
	logger *slog.Logger, project string, textOnly bool) error {

	if textOnly {
		text, err := service.ReportText(ctx, project)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	}

	textPath, workbookPath, err := service.WriteReports(ctx, project)
	if err != nil {
		return err
	}

	logger.Info("reports written",
		slog.String("project", project),
		slog.String("text", textPath),
		slog.String("workbook", workbookPath))

	return nil
}
