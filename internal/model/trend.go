package model

import "strings"

// Platform identifies one of the supported content sources.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformReddit  Platform = "reddit"
	PlatformTwitter Platform = "twitter"
)

// AllPlatforms returns the supported platforms in canonical order.
func AllPlatforms() []Platform {
	return []Platform{PlatformYouTube, PlatformReddit, PlatformTwitter}
}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformYouTube, PlatformReddit, PlatformTwitter:
		return true
	}
	return false
}

// Sentiment is a classification label. SentimentAll is only meaningful as a
// filter value, never as an item label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentAll      Sentiment = "all"
)

// SortOption selects the ordering of aggregated items.
type SortOption string

const (
	SortRelevance  SortOption = "relevance"
	SortDate       SortOption = "date"
	SortEngagement SortOption = "engagement"
)

// Engagement holds per-item interaction counts. Each metric is independently
// optional; zero means the source did not report it.
type Engagement struct {
	Likes    int `json:"likes,omitempty"`
	Comments int `json:"comments,omitempty"`
	Shares   int `json:"shares,omitempty"`
	Views    int `json:"views,omitempty"`
}

// TrendItem is a single discovered post, video, or comment. Any string field
// may be empty when the source page omits it. IDs are source-local and are
// synthesized (timestamp+index) when the page exposes no stable identifier.
type TrendItem struct {
	ID           string     `json:"id"`
	Platform     Platform   `json:"platform"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	URL          string     `json:"url"`
	Author       string     `json:"author"`
	Date         string     `json:"date"`
	Engagement   Engagement `json:"engagement"`
	Sentiment    Sentiment  `json:"sentiment,omitempty"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
}

// SentimentBreakdown counts items per sentiment label.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// TopEngagement points at the best-engaged item per metric. Each pick is
// optional.
type TopEngagement struct {
	MostLiked     *TrendItem `json:"mostLiked,omitempty"`
	MostCommented *TrendItem `json:"mostCommented,omitempty"`
	MostShared    *TrendItem `json:"mostShared,omitempty"`
}

// TrendSummary is the derived human-readable view over a result set.
type TrendSummary struct {
	KeyTakeaways       []string           `json:"keyTakeaways"`
	SentimentBreakdown SentimentBreakdown `json:"sentimentBreakdown"`
	TopEngagement      TopEngagement      `json:"topEngagement"`
}

// AggregatedTrends is the top-level response. Platforms is a derived view over
// Items; both hold the same records.
type AggregatedTrends struct {
	Query     string                   `json:"query"`
	Timestamp string                   `json:"timestamp"`
	Items     []TrendItem              `json:"items"`
	Summary   *TrendSummary            `json:"summary,omitempty"`
	Platforms map[Platform][]TrendItem `json:"platforms"`
}

// SearchRequest is a validated aggregation request.
type SearchRequest struct {
	Query     string     `json:"query"`
	Platforms []Platform `json:"platforms"`
	Limit     int        `json:"limit,omitempty"`
	Sentiment Sentiment  `json:"sentiment,omitempty"`
	SortBy    SortOption `json:"sortBy,omitempty"`
}

// FillDefaults applies default values to optional request fields.
func (r *SearchRequest) FillDefaults() {
	r.Query = strings.TrimSpace(r.Query)
	if r.Limit <= 0 {
		r.Limit = 10
	}
	if r.Sentiment == "" {
		r.Sentiment = SentimentAll
	}
	if r.SortBy == "" {
		r.SortBy = SortRelevance
	}
}
