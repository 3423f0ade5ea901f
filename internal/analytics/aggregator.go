package analytics

import (
	"sort"
	"strings"
)

// Screen classes that are Firebase placeholders, never real features
var sentinelScreens = map[string]struct{}{
	"(not set)": {},
	"(other)":   {},
}

// Events emitted by the SDK lifecycle rather than by user-facing features
var systemEvents = map[string]struct{}{
	"screen_view":     {},
	"user_engagement": {},
	"session_start":   {},
	"app_update":      {},
	"os_update":       {},
	"first_open":      {},
}

// Bootstrap events excluded outright from the top-features summary
var bootstrapEvents = map[string]struct{}{
	"screen_view":   {},
	"session_start": {},
	"app_update":    {},
	"os_update":     {},
}

// relatedKeywords drives the related-screen heuristic: a feature and a
// screen are linked when both names contain the same keyword. Data, not
// code — extend the list to widen the matching.
var relatedKeywords = []string{
	"document",
	"course",
	"dashboard",
	"audit",
	"communication",
}

// featureIndex is an insertion-ordered map from feature name to entry,
// preserving discovery order for stable tie-breaking.
type featureIndex struct {
	order []string
	byKey map[string]*FeatureUsageDetail
}

func newFeatureIndex() *featureIndex {
	return &featureIndex{byKey: make(map[string]*FeatureUsageDetail)}
}

func (x *featureIndex) get(name string) (*FeatureUsageDetail, bool) {
	f, ok := x.byKey[name]
	return f, ok
}

func (x *featureIndex) add(f FeatureUsageDetail) {
	x.order = append(x.order, f.Name)
	x.byKey[f.Name] = &f
}

func (x *featureIndex) list() []FeatureUsageDetail {
	out := make([]FeatureUsageDetail, 0, len(x.order))
	for _, name := range x.order {
		out = append(out, *x.byKey[name])
	}
	return out
}

// AggregateFeatures merges screen and event records into the unified
// feature-usage view.
//
// Screens are seeded first as type screen; events are then merged in,
// summing counts on a name collision. Unique users are taken as the max of
// the two sources since their audience overlap is unknown and summing would
// double count. A collision keeps the existing screen type.
func AggregateFeatures(events []AnalyticsEvent, screens []ScreenView) []FeatureUsageDetail {
	idx := newFeatureIndex()

	for _, screen := range screens {
		if _, sentinel := sentinelScreens[screen.Class]; sentinel {
			continue
		}
		engagement := screen.AvgEngagementTime
		idx.add(FeatureUsageDetail{
			Name:            screen.Class,
			Type:            FeatureScreen,
			UsageCount:      screen.Views,
			UniqueUsers:     screen.ActiveUsers,
			AvgUsagePerUser: screen.ViewsPerActiveUser,
			EngagementTime:  &engagement,
		})
	}

	for _, event := range events {
		if existing, ok := idx.get(event.Name); ok {
			existing.UsageCount += event.Count
			if event.TotalUsers > existing.UniqueUsers {
				existing.UniqueUsers = event.TotalUsers
			}
			existing.AvgUsagePerUser = float64(existing.UsageCount) / float64(max(existing.UniqueUsers, 1))
			continue
		}
		idx.add(FeatureUsageDetail{
			Name:            event.Name,
			Type:            classifyEvent(event.Name),
			UsageCount:      event.Count,
			UniqueUsers:     event.TotalUsers,
			AvgUsagePerUser: event.CountPerUser,
		})
	}

	features := idx.list()
	for i := range features {
		if features[i].Type != FeatureMenu && features[i].Type != FeatureAction {
			continue
		}
		if related := relatedScreens(features[i].Name, screens); len(related) > 0 {
			features[i].RelatedScreens = related
		}
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].UsageCount > features[j].UsageCount
	})

	return features
}

// classifyEvent assigns a feature type from the event name. Precedence:
// menu prefix, action verbs, the SDK lifecycle set, then plain event.
func classifyEvent(name string) FeatureType {
	if strings.HasPrefix(name, "menu_") {
		return FeatureMenu
	}
	if strings.Contains(name, "login") || strings.Contains(name, "logout") ||
		strings.Contains(name, "select_") {
		return FeatureAction
	}
	if _, ok := systemEvents[name]; ok {
		return FeatureSystem
	}
	return FeatureEvent
}

// relatedScreens returns the deduplicated screen classes sharing a keyword
// with the feature name. Substring matching is a heuristic: it links
// "menu_documents" to "DocumentListScreen", not a guarantee of correctness.
func relatedScreens(featureName string, screens []ScreenView) []string {
	lowerName := strings.ToLower(featureName)

	var related []string
	seen := make(map[string]struct{})
	for _, keyword := range relatedKeywords {
		if !strings.Contains(lowerName, keyword) {
			continue
		}
		for _, screen := range screens {
			if !strings.Contains(strings.ToLower(screen.Class), keyword) {
				continue
			}
			if _, dup := seen[screen.Class]; dup {
				continue
			}
			seen[screen.Class] = struct{}{}
			related = append(related, screen.Class)
		}
	}

	return related
}

// topFeatureLimit bounds the summary view's feature list
const topFeatureLimit = 50

// TopFeatures is the summary-view variant of the merge: the same two-step
// aggregation with a 3-way category instead of the 5-way type, bootstrap
// events dropped outright, no related-screen discovery, truncated to the
// top 50 by usage.
func TopFeatures(events []AnalyticsEvent, screens []ScreenView) []TopFeature {
	order := make([]string, 0, len(screens)+len(events))
	byKey := make(map[string]*TopFeature)

	for _, screen := range screens {
		if _, sentinel := sentinelScreens[screen.Class]; sentinel {
			continue
		}
		order = append(order, screen.Class)
		byKey[screen.Class] = &TopFeature{
			Name:            screen.Class,
			Category:        "screen",
			UsageCount:      screen.Views,
			UniqueUsers:     screen.ActiveUsers,
			AvgUsagePerUser: screen.ViewsPerActiveUser,
		}
	}

	for _, event := range events {
		if _, skip := bootstrapEvents[event.Name]; skip {
			continue
		}
		if existing, ok := byKey[event.Name]; ok {
			existing.UsageCount += event.Count
			if event.TotalUsers > existing.UniqueUsers {
				existing.UniqueUsers = event.TotalUsers
			}
			existing.AvgUsagePerUser = float64(existing.UsageCount) / float64(max(existing.UniqueUsers, 1))
			continue
		}
		category := "event"
		if event.Name == "user_engagement" {
			category = "engagement"
		}
		order = append(order, event.Name)
		byKey[event.Name] = &TopFeature{
			Name:            event.Name,
			Category:        category,
			UsageCount:      event.Count,
			UniqueUsers:     event.TotalUsers,
			AvgUsagePerUser: event.CountPerUser,
		}
	}

	top := make([]TopFeature, 0, len(order))
	for _, name := range order {
		top = append(top, *byKey[name])
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].UsageCount > top[j].UsageCount
	})

	if len(top) > topFeatureLimit {
		top = top[:topFeatureLimit]
	}

	return top
}
