package trends

import (
	"sort"
	"strings"
	"time"

	"trendlens/internal/model"
)

// dateLayouts are tried in order when parsing item dates. Sources emit
// ISO-8601 when they emit anything machine-readable; the rest is mirror-page
// display text.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
	"Jan 2, 2006 · 3:04 PM UTC",
}

// sortItems orders items in place. Relevance keeps the upstream order; the
// other modes sort stably so equal keys preserve original order.
func sortItems(items []model.TrendItem, by model.SortOption) {
	switch by {
	case model.SortDate:
		sort.SliceStable(items, func(i, j int) bool {
			ti, iok := parseDate(items[i].Date)
			tj, jok := parseDate(items[j].Date)
			if iok && jok {
				return ti.After(tj)
			}
			// Items without a usable date sort after all dated items.
			return iok && !jok
		})
	case model.SortEngagement:
		sort.SliceStable(items, func(i, j int) bool {
			return compositeEngagement(items[i]) > compositeEngagement(items[j])
		})
	}
}

// compositeEngagement is likes+comments+shares; views are deliberately
// excluded so view-heavy video items do not swamp discussion posts.
func compositeEngagement(it model.TrendItem) int {
	return it.Engagement.Likes + it.Engagement.Comments + it.Engagement.Shares
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
