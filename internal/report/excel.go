package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fbmetrics/internal/analytics"
)

// Sheet names of the exported workbook, in tab order
var workbookSheets = []string{
	"Summary",
	"Daily Active Users",
	"Screens",
	"Events",
	"Features",
	"Top Features",
}

// BuildWorkbook serializes a dashboard summary into an Excel workbook, one
// sheet per report section. The workbook carries the same values as the
// text report without its truncation limits.
func BuildWorkbook(summary *analytics.DashboardSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, name := range workbookSheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("failed to rename default sheet: %w", err)
			}
			continue
		}
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeSummarySheet(f, summary); err != nil {
		return nil, err
	}
	if err := writeDailySheet(f, summary.Daily); err != nil {
		return nil, err
	}
	if err := writeScreensSheet(f, summary.Screens); err != nil {
		return nil, err
	}
	if err := writeEventsSheet(f, summary.Events); err != nil {
		return nil, err
	}
	if err := writeFeaturesSheet(f, summary.Features); err != nil {
		return nil, err
	}
	if err := writeTopFeaturesSheet(f, summary.TopFeatures); err != nil {
		return nil, err
	}

	return f, nil
}

// setRows writes a header row followed by data rows starting at A1
func setRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on sheet %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on sheet %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary *analytics.DashboardSummary) error {
	rows := [][]interface{}{
		{"Project", summary.Project},
		{"Period start", summary.Range.Start.Format(dateFormat)},
		{"Period end", summary.Range.End.Format(dateFormat)},
		{"Total events", summary.Headline.TotalEvents},
		{"Total screen views", summary.Headline.TotalScreenViews},
		{"Avg daily active users", summary.Headline.AvgDailyActiveUsers},
		{"Peak active users", summary.Headline.PeakActiveUsers},
		{"Peak day", summary.Headline.PeakDay},
	}
	return setRows(f, "Summary", []interface{}{"Metric", "Value"}, rows)
}

func writeDailySheet(f *excelize.File, daily []analytics.DailyActiveUsers) error {
	rows := make([][]interface{}, 0, len(daily))
	for _, day := range daily {
		rows = append(rows, []interface{}{
			day.Date.Format(dateFormat),
			day.Active1Day,
			day.Active7Days,
			day.Active30Days,
		})
	}
	return setRows(f, "Daily Active Users",
		[]interface{}{"Date", "1 day", "7 days", "30 days"}, rows)
}

func writeScreensSheet(f *excelize.File, screens []analytics.ScreenView) error {
	rows := make([][]interface{}, 0, len(screens))
	for _, screen := range screens {
		rows = append(rows, []interface{}{
			screen.Class,
			screen.Views,
			screen.ActiveUsers,
			screen.ViewsPerActiveUser,
			screen.AvgEngagementTime,
			screen.EventCount,
			screen.KeyEvents,
			screen.TotalRevenue,
		})
	}
	return setRows(f, "Screens", []interface{}{
		"Screen", "Views", "Active users", "Views per user",
		"Avg engagement (s)", "Event count", "Key events", "Revenue",
	}, rows)
}

func writeEventsSheet(f *excelize.File, events []analytics.AnalyticsEvent) error {
	rows := make([][]interface{}, 0, len(events))
	for _, event := range events {
		rows = append(rows, []interface{}{
			event.Name,
			event.Count,
			event.TotalUsers,
			event.CountPerUser,
			event.TotalRevenue,
		})
	}
	return setRows(f, "Events", []interface{}{
		"Event", "Count", "Total users", "Count per user", "Revenue",
	}, rows)
}

func writeFeaturesSheet(f *excelize.File, features []analytics.FeatureUsageDetail) error {
	rows := make([][]interface{}, 0, len(features))
	for _, feature := range features {
		engagement := interface{}(nil)
		if feature.EngagementTime != nil {
			engagement = *feature.EngagementTime
		}
		related := ""
		if len(feature.RelatedScreens) > 0 {
			related = feature.RelatedScreens[0]
			for _, s := range feature.RelatedScreens[1:] {
				related += "; " + s
			}
		}
		rows = append(rows, []interface{}{
			feature.Name,
			string(feature.Type),
			feature.UsageCount,
			feature.UniqueUsers,
			feature.AvgUsagePerUser,
			engagement,
			related,
		})
	}
	return setRows(f, "Features", []interface{}{
		"Feature", "Type", "Usage", "Unique users", "Avg per user",
		"Engagement (s)", "Related screens",
	}, rows)
}

func writeTopFeaturesSheet(f *excelize.File, features []analytics.TopFeature) error {
	rows := make([][]interface{}, 0, len(features))
	for _, feature := range features {
		rows = append(rows, []interface{}{
			feature.Name,
			feature.Category,
			feature.UsageCount,
			feature.UniqueUsers,
			feature.AvgUsagePerUser,
		})
	}
	return setRows(f, "Top Features", []interface{}{
		"Feature", "Category", "Usage", "Unique users", "Avg per user",
	}, rows)
}
