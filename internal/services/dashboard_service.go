package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fbmetrics/internal/analytics"
	"fbmetrics/internal/config"
	"fbmetrics/internal/errors"
	"fbmetrics/internal/files"
	"fbmetrics/internal/report"
)

// DashboardService orchestrates the ingestion pipeline for one request:
// locate the project's CSV exports, load them into typed records, and
// aggregate them into a DashboardSummary. Every call reads the files fresh;
// the service holds no cross-request state.
type DashboardService struct {
	cfg     *config.Config
	locator *files.Locator
	loader  *analytics.Loader
	writer  *report.Writer
	logger  *slog.Logger
}

// NewDashboardService creates the dashboard service
func NewDashboardService(cfg *config.Config, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:     cfg,
		locator: files.NewLocator(cfg.Paths.DataDir),
		loader:  analytics.NewLoader(logger),
		writer:  report.NewWriter(cfg.Paths.ReportsDir, logger),
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

// ListProjects returns the project folders holding a complete dataset
func (s *DashboardService) ListProjects(ctx context.Context) ([]string, error) {
	folders, err := s.locator.ListDatasets()
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	if folders == nil {
		folders = []string{}
	}

	s.logger.InfoContext(ctx, "listed project datasets",
		slog.Int("project_count", len(folders)))

	return folders, nil
}

// Summary builds a fresh dashboard summary for one project. The three
// required files are located up front so a missing dataset fails before any
// parsing work; the loads themselves run concurrently.
func (s *DashboardService) Summary(ctx context.Context, project string) (*analytics.DashboardSummary, error) {
	overviewPath, err := s.locator.Locate(project, files.OverviewPattern)
	if err != nil {
		return nil, fmt.Errorf("locate overview: %w", err)
	}
	eventsPath, err := s.locator.LocateNumbered(project, files.EventsPattern)
	if err != nil {
		return nil, fmt.Errorf("locate events: %w", err)
	}
	screensPath, err := s.locator.LocateNumbered(project, files.ScreensPattern)
	if err != nil {
		return nil, fmt.Errorf("locate screens: %w", err)
	}

	var (
		daily   []analytics.DailyActiveUsers
		rng     analytics.DateRange
		events  []analytics.AnalyticsEvent
		screens []analytics.ScreenView
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, rng, err = s.loader.LoadOverview(overviewPath)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.loader.LoadEvents(eventsPath)
		return err
	})
	g.Go(func() error {
		var err error
		screens, err = s.loader.LoadScreens(screensPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", project, err)
	}

	summary := analytics.BuildSummary(project, rng, daily, events, screens)

	s.logger.InfoContext(ctx, "built dashboard summary",
		slog.String("project", project),
		slog.Int("event_count", len(events)),
		slog.Int("screen_count", len(screens)),
		slog.Int("feature_count", len(summary.Features)))

	return summary, nil
}

// DateRange returns the project's reporting period without loading the full
// dataset, substituting a default window when the metadata is absent.
func (s *DashboardService) DateRange(ctx context.Context, project string) analytics.DateRange {
	path, err := s.locator.Locate(project, files.OverviewPattern)
	if err != nil {
		return s.loader.DateRangeOf("")
	}
	return s.loader.DateRangeOf(path)
}

// ReportText builds the flat text report for one project
func (s *DashboardService) ReportText(ctx context.Context, project string) (string, error) {
	summary, err := s.Summary(ctx, project)
	if err != nil {
		return "", err
	}
	return report.BuildText(summary), nil
}

// ExportWorkbook builds the Excel workbook for one project and returns its
// serialized bytes for download.
func (s *DashboardService) ExportWorkbook(ctx context.Context, project string) ([]byte, error) {
	summary, err := s.Summary(ctx, project)
	if err != nil {
		return nil, err
	}

	f, err := report.BuildWorkbook(summary)
	if err != nil {
		return nil, errors.NewStorageError("failed to build workbook", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.NewStorageError("failed to serialize workbook", err)
	}

	return buf.Bytes(), nil
}

// WriteReports builds a project's summary once and persists both report
// artifacts, returning their paths. Used by the batch CLI.
func (s *DashboardService) WriteReports(ctx context.Context, project string) (textPath, workbookPath string, err error) {
	summary, err := s.Summary(ctx, project)
	if err != nil {
		return "", "", err
	}

	textPath, err = s.writer.WriteText(summary)
	if err != nil {
		return "", "", err
	}
	workbookPath, err = s.writer.WriteWorkbook(summary)
	if err != nil {
		return "", "", err
	}

	return textPath, workbookPath, nil
}
