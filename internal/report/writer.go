package report

import (
	"log/slog"
	"os"
	"path/filepath"

	"fbmetrics/internal/analytics"
	"fbmetrics/internal/errors"
)

// Writer persists report artifacts to the reports directory
type Writer struct {
	reportsDir string
	logger     *slog.Logger
}

// NewWriter creates a report writer
func NewWriter(reportsDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		reportsDir: reportsDir,
		logger:     logger.With(slog.String("component", "report_writer")),
	}
}

// WriteText writes the text report for a summary and returns its path
func (w *Writer) WriteText(summary *analytics.DashboardSummary) (string, error) {
	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create reports directory", err)
	}

	path := filepath.Join(w.reportsDir, summary.Project+"_usage_report.txt")
	if err := os.WriteFile(path, []byte(BuildText(summary)), 0644); err != nil {
		return "", errors.NewStorageError("failed to write text report", err)
	}

	w.logger.Info("wrote text report",
		slog.String("path", path),
		slog.String("project", summary.Project))

	return path, nil
}

// WriteWorkbook writes the Excel workbook for a summary and returns its path
func (w *Writer) WriteWorkbook(summary *analytics.DashboardSummary) (string, error) {
	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create reports directory", err)
	}

	f, err := BuildWorkbook(summary)
	if err != nil {
		return "", errors.NewStorageError("failed to build workbook", err)
	}
	defer f.Close()

	path := filepath.Join(w.reportsDir, summary.Project+"_usage_report.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", errors.NewStorageError("failed to save workbook", err)
	}

	w.logger.Info("wrote workbook",
		slog.String("path", path),
		slog.String("project", summary.Project))

	return path, nil
}
