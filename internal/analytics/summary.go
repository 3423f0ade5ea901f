package analytics

import "time"

// BuildSummary assembles the dashboard aggregate root from loaded record
// sets. Pure computation: all I/O has already happened in the loaders, and
// the result owns everything by value.
func BuildSummary(project string, rng DateRange, daily []DailyActiveUsers,
	events []AnalyticsEvent, screens []ScreenView) *DashboardSummary {

	return &DashboardSummary{
		Project:     project,
		Range:       rng,
		Headline:    headline(daily, events, screens),
		Daily:       daily,
		Events:      events,
		Screens:     screens,
		Features:    AggregateFeatures(events, screens),
		TopFeatures: TopFeatures(events, screens),
		GeneratedAt: time.Now().UTC(),
	}
}

// headline derives the dashboard card totals
func headline(daily []DailyActiveUsers, events []AnalyticsEvent, screens []ScreenView) HeadlineMetrics {
	var m HeadlineMetrics

	for _, event := range events {
		m.TotalEvents += event.Count
	}
	for _, screen := range screens {
		m.TotalScreenViews += screen.Views
	}

	if len(daily) > 0 {
		var sum int
		peak := daily[0]
		for _, day := range daily {
			sum += day.Active1Day
			if day.Active1Day > peak.Active1Day {
				peak = day
			}
		}
		m.AvgDailyActiveUsers = float64(sum) / float64(len(daily))
		m.PeakActiveUsers = peak.Active1Day
		m.PeakDay = peak.Date.Format("2006-01-02")
	}

	return m
}
