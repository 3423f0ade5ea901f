package analytics

import "time"

// DailyActiveUsers holds the rolling active-user counts for one calendar day
// of the export's date range.
type DailyActiveUsers struct {
	Date         time.Time `json:"date"`
	Active1Day   int       `json:"active_users_1_day"`
	Active7Days  int       `json:"active_users_7_days"`
	Active30Days int       `json:"active_users_30_days"`
}

// AnalyticsEvent is one tracked event row from the events export
type AnalyticsEvent struct {
	Name         string  `json:"event_name"`
	Count        int     `json:"event_count"`
	TotalUsers   int     `json:"total_users"`
	CountPerUser float64 `json:"event_count_per_user"`
	TotalRevenue float64 `json:"total_revenue"`
}

// ScreenView is one screen/page class row from the screens export
type ScreenView struct {
	Class              string  `json:"screen_class"`
	Views              int     `json:"views"`
	ActiveUsers        int     `json:"active_users"`
	ViewsPerActiveUser float64 `json:"views_per_active_user"`
	AvgEngagementTime  float64 `json:"avg_engagement_time"`
	EventCount         int     `json:"event_count"`
	KeyEvents          int     `json:"key_events"`
	TotalRevenue       float64 `json:"total_revenue"`
}

// FeatureType classifies a merged feature entry
type FeatureType string

const (
	FeatureScreen FeatureType = "screen"
	FeatureEvent  FeatureType = "event"
	FeatureMenu   FeatureType = "menu"
	FeatureAction FeatureType = "action"
	FeatureSystem FeatureType = "system"
)

// FeatureUsageDetail is the unified usage view of one feature, merged from
// screen and event records. EngagementTime is only known for screen-derived
// entries; RelatedScreens is only populated for menu and action features
// that matched at least one screen.
type FeatureUsageDetail struct {
	Name            string      `json:"feature_name"`
	Type            FeatureType `json:"feature_type"`
	UsageCount      int         `json:"usage_count"`
	UniqueUsers     int         `json:"unique_users"`
	AvgUsagePerUser float64     `json:"avg_usage_per_user"`
	EngagementTime  *float64    `json:"engagement_time,omitempty"`
	RelatedScreens  []string    `json:"related_screens,omitempty"`
}

// TopFeature is the compact feature entry used by the summary view
type TopFeature struct {
	Name            string  `json:"feature_name"`
	Category        string  `json:"category"`
	UsageCount      int     `json:"usage_count"`
	UniqueUsers     int     `json:"unique_users"`
	AvgUsagePerUser float64 `json:"avg_usage_per_user"`
}

// DateRange is the export's reporting period
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Days returns the number of calendar days in the range, inclusive
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// HeadlineMetrics are the aggregate totals shown on the dashboard cards
type HeadlineMetrics struct {
	TotalEvents         int     `json:"total_events"`
	TotalScreenViews    int     `json:"total_screen_views"`
	AvgDailyActiveUsers float64 `json:"avg_daily_active_users"`
	PeakActiveUsers     int     `json:"peak_active_users"`
	PeakDay             string  `json:"peak_day,omitempty"`
}

// DashboardSummary is the aggregate root handed to the rendering and export
// layers. It is rebuilt fresh from the CSV files on every request and owns
// all contained records by value.
type DashboardSummary struct {
	Project     string               `json:"project"`
	Range       DateRange            `json:"date_range"`
	Headline    HeadlineMetrics      `json:"headline"`
	Daily       []DailyActiveUsers   `json:"daily_active_users"`
	Events      []AnalyticsEvent     `json:"events"`
	Screens     []ScreenView         `json:"screens"`
	Features    []FeatureUsageDetail `json:"features"`
	TopFeatures []TopFeature         `json:"top_features"`
	GeneratedAt time.Time            `json:"generated_at"`
}
