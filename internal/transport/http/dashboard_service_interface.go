package http

import (
	"context"

	"fbmetrics/internal/analytics"
)

// DashboardServiceInterface is what the handlers need from the service
// layer; the concrete implementation lives in internal/services.
type DashboardServiceInterface interface {
	ListProjects(ctx context.Context) ([]string, error)
	Summary(ctx context.Context, project string) (*analytics.DashboardSummary, error)
	ReportText(ctx context.Context, project string) (string, error)
	ExportWorkbook(ctx context.Context, project string) ([]byte, error)
}
