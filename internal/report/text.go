package report

import (
	"sort"
	"strings"
	"time"

	"fbmetrics/internal/analytics"
)

// Per-section truncation limits of the text report. Fixed for
// output-compatibility: downstream tooling splits these sections on commas.
const (
	screenViewLimit = 30
	engagementLimit = 30
	featureLimit    = 50
	topFeatureLimit = 30
)

const dateFormat = "2006-01-02"

// BuildText serializes a dashboard summary into the flat tabular text
// report: labeled sections, one header row each, comma-joined fields,
// sections separated by a blank line.
func BuildText(summary *analytics.DashboardSummary) string {
	var b strings.Builder

	writeSection(&b, "USAGE REPORT",
		[]string{"Field", "Value"},
		[][]string{
			{"Project", summary.Project},
			{"Period start", summary.Range.Start.Format(dateFormat)},
			{"Period end", summary.Range.End.Format(dateFormat)},
			{"Generated", summary.GeneratedAt.Format(time.RFC3339)},
		})

	writeSection(&b, "SUMMARY",
		[]string{"Metric", "Value"},
		[][]string{
			{"Total events", formatInt(summary.Headline.TotalEvents)},
			{"Total screen views", formatInt(summary.Headline.TotalScreenViews)},
			{"Avg daily active users", formatFloat(summary.Headline.AvgDailyActiveUsers)},
			{"Peak active users", formatInt(summary.Headline.PeakActiveUsers)},
			{"Peak day", summary.Headline.PeakDay},
		})

	writeSection(&b, "SCREEN VIEWS",
		[]string{"Screen", "Views", "Active users", "Views per user", "Avg engagement (s)"},
		screenRows(summary.Screens, screenViewLimit))

	writeSection(&b, "ENGAGEMENT",
		[]string{"Screen", "Avg engagement (s)", "Event count", "Key events"},
		engagementRows(summary.Screens, engagementLimit))

	writeSection(&b, "EVENTS",
		[]string{"Event", "Count", "Total users", "Count per user", "Revenue"},
		eventRows(summary.Events))

	writeSection(&b, "TOP SCREENS",
		[]string{"Screen", "Views", "Active users"},
		topScreenRows(summary.Screens))

	writeSection(&b, "FEATURES",
		[]string{"Feature", "Type", "Usage", "Unique users", "Avg per user", "Engagement (s)", "Related screens"},
		featureRows(summary.Features, featureLimit))

	writeSection(&b, "TOP FEATURES",
		[]string{"Feature", "Category", "Usage", "Unique users", "Avg per user"},
		topFeatureRows(summary.TopFeatures, topFeatureLimit))

	return b.String()
}

// writeSection renders one labeled section: label line, header row, data
// rows, trailing blank line.
func writeSection(b *strings.Builder, label string, header []string, rows [][]string) {
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func screenRows(screens []analytics.ScreenView, limit int) [][]string {
	rows := make([][]string, 0, min(len(screens), limit))
	for i, screen := range screens {
		if i >= limit {
			break
		}
		rows = append(rows, []string{
			screen.Class,
			formatInt(screen.Views),
			formatInt(screen.ActiveUsers),
			formatFloat(screen.ViewsPerActiveUser),
			formatSeconds(screen.AvgEngagementTime),
		})
	}
	return rows
}

func engagementRows(screens []analytics.ScreenView, limit int) [][]string {
	sorted := make([]analytics.ScreenView, len(screens))
	copy(sorted, screens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgEngagementTime > sorted[j].AvgEngagementTime
	})

	rows := make([][]string, 0, min(len(sorted), limit))
	for i, screen := range sorted {
		if i >= limit {
			break
		}
		rows = append(rows, []string{
			screen.Class,
			formatSeconds(screen.AvgEngagementTime),
			formatInt(screen.EventCount),
			formatInt(screen.KeyEvents),
		})
	}
	return rows
}

func eventRows(events []analytics.AnalyticsEvent) [][]string {
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, []string{
			event.Name,
			formatInt(event.Count),
			formatInt(event.TotalUsers),
			formatFloat(event.CountPerUser),
			formatFloat(event.TotalRevenue),
		})
	}
	return rows
}

func topScreenRows(screens []analytics.ScreenView) [][]string {
	sorted := make([]analytics.ScreenView, len(screens))
	copy(sorted, screens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Views > sorted[j].Views
	})

	rows := make([][]string, 0, len(sorted))
	for _, screen := range sorted {
		rows = append(rows, []string{
			screen.Class,
			formatInt(screen.Views),
			formatInt(screen.ActiveUsers),
		})
	}
	return rows
}

func featureRows(features []analytics.FeatureUsageDetail, limit int) [][]string {
	rows := make([][]string, 0, min(len(features), limit))
	for i, f := range features {
		if i >= limit {
			break
		}
		engagement := ""
		if f.EngagementTime != nil {
			engagement = formatSeconds(*f.EngagementTime)
		}
		rows = append(rows, []string{
			f.Name,
			string(f.Type),
			formatInt(f.UsageCount),
			formatInt(f.UniqueUsers),
			formatFloat(f.AvgUsagePerUser),
			engagement,
			strings.Join(f.RelatedScreens, ";"),
		})
	}
	return rows
}

func topFeatureRows(features []analytics.TopFeature, limit int) [][]string {
	rows := make([][]string, 0, min(len(features), limit))
	for i, f := range features {
		if i >= limit {
			break
		}
		rows = append(rows, []string{
			f.Name,
			f.Category,
			formatInt(f.UsageCount),
			formatInt(f.UniqueUsers),
			formatFloat(f.AvgUsagePerUser),
		})
	}
	return rows
}
