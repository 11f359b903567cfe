// Package summary derives the human-readable view over a classified result
// set. Summarize is pure and deterministic; it never classifies items itself.
package summary

import (
	"fmt"
	"strings"

	"trendlens/internal/model"
)

const emptyTakeaway = "No trends found to summarize."

// Summarize computes the sentiment breakdown, top-engagement picks, and key
// takeaways for an already-classified item list.
func Summarize(items []model.TrendItem) model.TrendSummary {
	if len(items) == 0 {
		return model.TrendSummary{KeyTakeaways: []string{emptyTakeaway}}
	}

	var breakdown model.SentimentBreakdown
	for _, it := range items {
		switch it.Sentiment {
		case model.SentimentPositive:
			breakdown.Positive++
		case model.SentimentNegative:
			breakdown.Negative++
		case model.SentimentNeutral:
			breakdown.Neutral++
		}
	}

	top := topEngagement(items)

	// Platforms in first-appearance order, with per-platform counts.
	var platforms []model.Platform
	counts := map[model.Platform]int{}
	for _, it := range items {
		if counts[it.Platform] == 0 {
			platforms = append(platforms, it.Platform)
		}
		counts[it.Platform]++
	}
	busiest := platforms[0]
	for _, p := range platforms[1:] {
		if counts[p] > counts[busiest] {
			busiest = p
		}
	}

	takeaways := []string{
		fmt.Sprintf("Found %d discussions across %d platforms: %s.", len(items), len(platforms), joinPlatforms(platforms)),
		fmt.Sprintf("Most content comes from %s.", busiest),
		fmt.Sprintf("The overall sentiment is predominantly %s.", dominantSentiment(breakdown)),
		engagementTakeaway("Most liked", top.MostLiked),
		engagementTakeaway("Most commented", top.MostCommented),
	}
	kept := make([]string, 0, len(takeaways))
	for _, s := range takeaways {
		if s != "" {
			kept = append(kept, s)
		}
	}

	return model.TrendSummary{
		KeyTakeaways:       kept,
		SentimentBreakdown: breakdown,
		TopEngagement:      top,
	}
}

// topEngagement scans once, tracking per metric the item with the highest
// value seen so far. The first item becomes the initial holder for every
// metric, and a replacement requires both the candidate and the current
// holder to report the metric; a candidate missing it is skipped even when
// it is numerically the true maximum. Ties keep the first-seen item.
// Downstream consumers depend on this exact behavior.
func topEngagement(items []model.TrendItem) model.TopEngagement {
	var top model.TopEngagement
	for i := range items {
		it := &items[i]
		if top.MostLiked == nil ||
			(it.Engagement.Likes > 0 && top.MostLiked.Engagement.Likes > 0 && it.Engagement.Likes > top.MostLiked.Engagement.Likes) {
			top.MostLiked = it
		}
		if top.MostCommented == nil ||
			(it.Engagement.Comments > 0 && top.MostCommented.Engagement.Comments > 0 && it.Engagement.Comments > top.MostCommented.Engagement.Comments) {
			top.MostCommented = it
		}
		if top.MostShared == nil ||
			(it.Engagement.Shares > 0 && top.MostShared.Engagement.Shares > 0 && it.Engagement.Shares > top.MostShared.Engagement.Shares) {
			top.MostShared = it
		}
	}
	return top
}

// dominantSentiment picks the label with the highest tally; ties resolve to
// the first label in positive, negative, neutral order.
func dominantSentiment(b model.SentimentBreakdown) model.Sentiment {
	label, best := model.SentimentPositive, b.Positive
	if b.Negative > best {
		label, best = model.SentimentNegative, b.Negative
	}
	if b.Neutral > best {
		label = model.SentimentNeutral
	}
	return label
}

func engagementTakeaway(prefix string, it *model.TrendItem) string {
	if it == nil {
		return ""
	}
	text := it.Title
	if text == "" {
		text = truncate(it.Content, 50)
	}
	return fmt.Sprintf("%s content: \"%s...\"", prefix, text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func joinPlatforms(ps []model.Platform) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
