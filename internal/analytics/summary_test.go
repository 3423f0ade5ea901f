package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummary(t *testing.T) {
	rng := DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	daily := []DailyActiveUsers{
		{Date: rng.Start, Active1Day: 10},
		{Date: rng.Start.AddDate(0, 0, 1), Active1Day: 30},
		{Date: rng.Start.AddDate(0, 0, 2), Active1Day: 20},
	}
	events := []AnalyticsEvent{
		{Name: "menu_settings", Count: 20, TotalUsers: 15},
		{Name: "user_login", Count: 40, TotalUsers: 30},
	}
	screens := []ScreenView{
		{Class: "HomeScreen", Views: 500, ActiveUsers: 300},
		{Class: "(not set)", Views: 50, ActiveUsers: 20},
	}

	summary := BuildSummary("myapp", rng, daily, events, screens)

	assert.Equal(t, "myapp", summary.Project)
	assert.Equal(t, rng, summary.Range)
	assert.Equal(t, daily, summary.Daily)
	assert.Equal(t, events, summary.Events)
	assert.Equal(t, screens, summary.Screens)
	assert.False(t, summary.GeneratedAt.IsZero())

	assert.Equal(t, 60, summary.Headline.TotalEvents)
	assert.Equal(t, 550, summary.Headline.TotalScreenViews)
	assert.InDelta(t, 20.0, summary.Headline.AvgDailyActiveUsers, 1e-9)
	assert.Equal(t, 30, summary.Headline.PeakActiveUsers)
	assert.Equal(t, "2024-01-02", summary.Headline.PeakDay)

	// Sentinel screens are visible in the raw screen list but never appear
	// as features.
	require.Len(t, summary.Features, 3)
	for _, f := range summary.Features {
		assert.NotEqual(t, "(not set)", f.Name)
	}
	assert.NotEmpty(t, summary.TopFeatures)
}

func TestBuildSummary_Empty(t *testing.T) {
	summary := BuildSummary("empty", DateRange{}, nil, nil, nil)

	assert.Zero(t, summary.Headline.TotalEvents)
	assert.Zero(t, summary.Headline.AvgDailyActiveUsers)
	assert.Empty(t, summary.Headline.PeakDay)
	assert.Empty(t, summary.Features)
	assert.Empty(t, summary.TopFeatures)
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single day",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "three days",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "inverted range",
			start: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateRange{Start: tt.start, End: tt.end}.Days())
		})
	}
}
