package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbmetrics/internal/analytics"
)

func sampleSummary() *analytics.DashboardSummary {
	rng := analytics.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	daily := []analytics.DailyActiveUsers{
		{Date: rng.Start, Active1Day: 2, Active7Days: 5, Active30Days: 10},
		{Date: rng.Start.AddDate(0, 0, 1), Active1Day: 3, Active7Days: 6, Active30Days: 12},
	}
	events := []analytics.AnalyticsEvent{
		{Name: "screen_view", Count: 500, TotalUsers: 300, CountPerUser: 1.67},
		{Name: "menu_settings", Count: 20, TotalUsers: 15, CountPerUser: 1.33},
	}
	screens := []analytics.ScreenView{
		{Class: "HomeScreen", Views: 500, ActiveUsers: 300, ViewsPerActiveUser: 1.67,
			AvgEngagementTime: 45.2, EventCount: 500},
		{Class: "SettingsScreen", Views: 120, ActiveUsers: 80, ViewsPerActiveUser: 1.5,
			AvgEngagementTime: 61.8, EventCount: 200, KeyEvents: 3},
	}
	return analytics.BuildSummary("myapp", rng, daily, events, screens)
}

// section extracts the lines of one labeled section from the report
func section(t *testing.T, text, label string) []string {
	t.Helper()
	for _, block := range strings.Split(text, "\n\n") {
		lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
		if len(lines) > 0 && lines[0] == label {
			return lines
		}
	}
	t.Fatalf("section %q not found", label)
	return nil
}

func TestBuildText_SectionLayout(t *testing.T) {
	text := BuildText(sampleSummary())

	labels := []string{
		"USAGE REPORT", "SUMMARY", "SCREEN VIEWS", "ENGAGEMENT",
		"EVENTS", "TOP SCREENS", "FEATURES", "TOP FEATURES",
	}

	lastIdx := -1
	for _, label := range labels {
		idx := strings.Index(text, label+"\n")
		require.GreaterOrEqual(t, idx, 0, "missing section %s", label)
		assert.Greater(t, idx, lastIdx, "section %s out of order", label)
		lastIdx = idx
	}
}

func TestBuildText_HeaderSection(t *testing.T) {
	lines := section(t, BuildText(sampleSummary()), "USAGE REPORT")

	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "Field,Value", lines[1])
	assert.Equal(t, "Project,myapp", lines[2])
	assert.Equal(t, "Period start,2024-01-01", lines[3])
	assert.Equal(t, "Period end,2024-01-03", lines[4])
}

func TestBuildText_SummaryValues(t *testing.T) {
	lines := section(t, BuildText(sampleSummary()), "SUMMARY")

	assert.Contains(t, lines, "Total events,520")
	assert.Contains(t, lines, "Total screen views,620")
	assert.Contains(t, lines, "Avg daily active users,2.50")
	assert.Contains(t, lines, "Peak active users,3")
	assert.Contains(t, lines, "Peak day,2024-01-02")
}

func TestBuildText_DecimalPrecision(t *testing.T) {
	text := BuildText(sampleSummary())

	screenLines := section(t, text, "SCREEN VIEWS")
	assert.Contains(t, screenLines, "HomeScreen,500,300,1.67,45.2")
	assert.Contains(t, screenLines, "SettingsScreen,120,80,1.50,61.8")

	engagementLines := section(t, text, "ENGAGEMENT")
	// Engagement sorts by time descending.
	assert.Equal(t, "SettingsScreen,61.8,200,3", engagementLines[2])
	assert.Equal(t, "HomeScreen,45.2,500,0", engagementLines[3])
}

func TestBuildText_RoundTrip(t *testing.T) {
	summary := sampleSummary()
	text := BuildText(summary)

	// Re-splitting the events section on commas reproduces the numeric
	// values up to the stated precision.
	lines := section(t, text, "EVENTS")
	require.Len(t, lines, 2+len(summary.Events))
	for i, event := range summary.Events {
		fields := strings.Split(lines[2+i], ",")
		require.Len(t, fields, 5)
		assert.Equal(t, event.Name, fields[0])
		assert.Equal(t, formatInt(event.Count), fields[1])
		assert.Equal(t, formatInt(event.TotalUsers), fields[2])
		assert.Equal(t, fmt.Sprintf("%.2f", event.CountPerUser), fields[3])
		assert.Equal(t, fmt.Sprintf("%.2f", event.TotalRevenue), fields[4])
	}
}

func TestBuildText_TruncationLimits(t *testing.T) {
	screens := make([]analytics.ScreenView, 0, 40)
	for i := 0; i < 40; i++ {
		screens = append(screens, analytics.ScreenView{
			Class: fmt.Sprintf("Screen%02d", i), Views: 40 - i, ActiveUsers: 1,
		})
	}
	events := make([]analytics.AnalyticsEvent, 0, 60)
	for i := 0; i < 60; i++ {
		events = append(events, analytics.AnalyticsEvent{
			Name: fmt.Sprintf("event_%02d", i), Count: 60 - i, TotalUsers: 1,
		})
	}

	summary := analytics.BuildSummary("big", analytics.DateRange{}, nil, events, screens)
	text := BuildText(summary)

	assert.Len(t, section(t, text, "SCREEN VIEWS"), 2+30)
	assert.Len(t, section(t, text, "ENGAGEMENT"), 2+30)
	// Full lists carry no limit.
	assert.Len(t, section(t, text, "EVENTS"), 2+60)
	assert.Len(t, section(t, text, "TOP SCREENS"), 2+40)
	// 40 screens + 60 events merge to 100 features, capped at 50.
	assert.Len(t, section(t, text, "FEATURES"), 2+50)
	// TopFeatures itself caps at 50; the report shows at most 30.
	assert.Len(t, section(t, text, "TOP FEATURES"), 2+30)
}

func TestBuildText_TopScreensSorted(t *testing.T) {
	screens := []analytics.ScreenView{
		{Class: "Low", Views: 10, ActiveUsers: 1},
		{Class: "High", Views: 900, ActiveUsers: 2},
		{Class: "Mid", Views: 50, ActiveUsers: 3},
	}
	summary := analytics.BuildSummary("p", analytics.DateRange{}, nil, nil, screens)

	lines := section(t, BuildText(summary), "TOP SCREENS")

	assert.Equal(t, "High,900,2", lines[2])
	assert.Equal(t, "Mid,50,3", lines[3])
	assert.Equal(t, "Low,10,1", lines[4])
}

func TestBuildText_FeatureOptionalFields(t *testing.T) {
	screens := []analytics.ScreenView{
		{Class: "DocumentListScreen", Views: 100, ActiveUsers: 40, AvgEngagementTime: 30.5},
	}
	events := []analytics.AnalyticsEvent{
		{Name: "menu_documents", Count: 10, TotalUsers: 4, CountPerUser: 2.5},
	}
	summary := analytics.BuildSummary("p", analytics.DateRange{}, nil, events, screens)

	lines := section(t, BuildText(summary), "FEATURES")

	assert.Contains(t, lines, "DocumentListScreen,screen,100,40,0.00,30.5,")
	assert.Contains(t, lines, "menu_documents,menu,10,4,2.50,,DocumentListScreen")
}
