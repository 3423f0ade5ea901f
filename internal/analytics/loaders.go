package analytics

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fbmetrics/internal/errors"
)

// Section markers identifying the table of interest inside each export
const (
	overviewMarker = "30 days"
	screensMarker  = "Page title and screen class"
	eventsMarker   = "Event name"
)

var (
	startDatePattern = regexp.MustCompile(`Start date:\s*(\d{8})`)
	endDatePattern   = regexp.MustCompile(`End date:\s*(\d{8})`)
)

// defaultRangeDays is the fallback window when the overview metadata is
// absent on the lenient path.
const defaultRangeDays = 30

// Loader converts located export files into typed record sets
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// LoadOverview reads the overview export and maps its rows onto the calendar
// days of the declared date range. Row i corresponds to day i; surplus rows
// or days are silently truncated.
func (l *Loader) LoadOverview(path string) ([]DailyActiveUsers, DateRange, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, DateRange{}, errors.NewStorageError("failed to read overview file", err).
			WithContext("path", path)
	}

	rng, ok := extractDateRange(content)
	if !ok {
		return nil, DateRange{}, errors.NewParsingError(
			"overview file is missing Start date/End date metadata", nil).
			WithContext("path", path)
	}

	rows := ParseSection(content, overviewMarker)

	days := make([]time.Time, 0, rng.Days())
	for d := rng.Start; !d.After(rng.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	var daily []DailyActiveUsers
	for _, row := range rows {
		if field(row, "Nth day") == "" || field(row, "30 days") == "" {
			continue
		}
		if len(daily) >= len(days) {
			break
		}
		daily = append(daily, DailyActiveUsers{
			Date:         days[len(daily)],
			Active30Days: toInt(field(row, "30 days")),
			Active7Days:  toInt(field(row, "7 days")),
			Active1Day:   toInt(field(row, "1 day")),
		})
	}

	l.logger.Debug("loaded overview",
		slog.String("path", path),
		slog.Int("day_count", len(daily)))

	return daily, rng, nil
}

// LoadScreens reads the screens export into typed screen-view records
func (l *Loader) LoadScreens(path string) ([]ScreenView, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read screens file", err).
			WithContext("path", path)
	}

	rows := ParseSection(content, screensMarker)

	var screens []ScreenView
	for _, row := range rows {
		class := field(row, screensMarker)
		if class == "" || field(row, "Views") == "" {
			continue
		}
		screens = append(screens, ScreenView{
			Class:              class,
			Views:              toInt(field(row, "Views")),
			ActiveUsers:        toInt(field(row, "Active users")),
			ViewsPerActiveUser: toFloat(field(row, "Views per active user")),
			AvgEngagementTime:  toFloat(field(row, "Average engagement time per active user")),
			EventCount:         toInt(field(row, "Event count")),
			KeyEvents:          toInt(field(row, "Key events")),
			TotalRevenue:       toFloat(field(row, "Total revenue")),
		})
	}

	l.logger.Debug("loaded screens",
		slog.String("path", path),
		slog.Int("screen_count", len(screens)))

	return screens, nil
}

// LoadEvents reads the events export into typed event records
func (l *Loader) LoadEvents(path string) ([]AnalyticsEvent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read events file", err).
			WithContext("path", path)
	}

	rows := ParseSection(content, eventsMarker)

	var events []AnalyticsEvent
	for _, row := range rows {
		name := field(row, eventsMarker)
		if name == "" || field(row, "Event count") == "" {
			continue
		}
		events = append(events, AnalyticsEvent{
			Name:         name,
			Count:        toInt(field(row, "Event count")),
			TotalUsers:   toInt(field(row, "Total users")),
			CountPerUser: toFloat(field(row, "Event count per active user")),
			TotalRevenue: toFloat(field(row, "Total revenue")),
		})
	}

	l.logger.Debug("loaded events",
		slog.String("path", path),
		slog.Int("event_count", len(events)))

	return events, nil
}

// DateRangeOf reads only the overview file's date metadata. Unlike
// LoadOverview it never fails: any problem yields a default window ending
// today, since the range only frames the display.
func (l *Loader) DateRangeOf(path string) DateRange {
	content, err := os.ReadFile(path)
	if err == nil {
		if rng, ok := extractDateRange(content); ok {
			return rng
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	return DateRange{Start: today.AddDate(0, 0, -defaultRangeDays), End: today}
}

// extractDateRange pulls the 8-digit Start date/End date comment values
func extractDateRange(content []byte) (DateRange, bool) {
	start := startDatePattern.FindSubmatch(content)
	end := endDatePattern.FindSubmatch(content)
	if start == nil || end == nil {
		return DateRange{}, false
	}

	startDate, err := time.Parse("20060102", string(start[1]))
	if err != nil {
		return DateRange{}, false
	}
	endDate, err := time.Parse("20060102", string(end[1]))
	if err != nil {
		return DateRange{}, false
	}

	return DateRange{Start: startDate, End: endDate}, true
}

// toInt coerces a raw field to an integer, defaulting to zero. Firebase
// formats counts with thousands separators.
func toInt(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// toFloat coerces a raw field to a float, defaulting to zero
func toFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
