// Package trends is the composition root of the aggregation pipeline:
// validate, check the cache, scrape, classify, filter, sort, group,
// summarize, write through.
package trends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"trendlens/internal/cache"
	"trendlens/internal/model"
	"trendlens/internal/sentiment"
	"trendlens/internal/summary"
)

// ErrBadRequest marks client input errors, rejected before any scraping.
var ErrBadRequest = errors.New("bad request")

// Scraper produces items for a query across platforms. Failures inside a
// source are already degraded to empty contributions.
type Scraper interface {
	Scrape(ctx context.Context, query string, platforms []model.Platform, limit int) []model.TrendItem
}

// Store is the cache surface the service needs.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
}

type Service struct {
	scraper    Scraper
	classifier *sentiment.Classifier
	store      Store
	searchTTL  time.Duration
	summaryTTL time.Duration
}

func NewService(scraper Scraper, classifier *sentiment.Classifier, store Store, searchTTL, summaryTTL time.Duration) *Service {
	return &Service{
		scraper:    scraper,
		classifier: classifier,
		store:      store,
		searchTTL:  searchTTL,
		summaryTTL: summaryTTL,
	}
}

// Aggregate answers a search request, serving from cache when possible. A
// cache hit returns the stored aggregate unchanged, original timestamp
// included.
func (s *Service) Aggregate(ctx context.Context, req model.SearchRequest) (*model.AggregatedTrends, error) {
	req.FillDefaults()
	if req.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrBadRequest)
	}
	if len(req.Platforms) == 0 {
		return nil, fmt.Errorf("%w: at least one platform must be selected", ErrBadRequest)
	}
	for _, p := range req.Platforms {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown platform %q", ErrBadRequest, p)
		}
	}

	key := CacheKey(req)
	var cached model.AggregatedTrends
	if s.store.Get(ctx, key, &cached) {
		slog.Info("trends: cache hit", "key", key)
		return &cached, nil
	}

	items := s.scraper.Scrape(ctx, req.Query, req.Platforms, req.Limit)
	s.classifier.Apply(items)
	items = filterBySentiment(items, req.Sentiment)
	sortItems(items, req.SortBy)

	sum := summary.Summarize(items)
	agg := &model.AggregatedTrends{
		Query:     req.Query,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Items:     items,
		Summary:   &sum,
		Platforms: groupByPlatform(items),
	}
	s.store.Set(ctx, key, agg, s.searchTTL)
	slog.Info("trends: aggregated", "query", req.Query, "items", len(items))
	return agg, nil
}

// SummarizeItems summarizes a caller-supplied item list, cached by the
// sorted set of item ids.
func (s *Service) SummarizeItems(ctx context.Context, items []model.TrendItem) (*model.TrendSummary, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items are required", ErrBadRequest)
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	sort.Strings(ids)
	key := cache.SummaryPrefix + strings.Join(ids, ",")

	var cached model.TrendSummary
	if s.store.Get(ctx, key, &cached) {
		return &cached, nil
	}
	sum := summary.Summarize(items)
	s.store.Set(ctx, key, &sum, s.summaryTTL)
	return &sum, nil
}

// CacheKey derives the deterministic fingerprint for a request. The platform
// list is sorted so {reddit, youtube} and {youtube, reddit} share an entry.
func CacheKey(req model.SearchRequest) string {
	platforms := make([]string, len(req.Platforms))
	for i, p := range req.Platforms {
		platforms[i] = string(p)
	}
	sort.Strings(platforms)
	return fmt.Sprintf("%s%s:%s:%d:%s:%s",
		cache.TrendsPrefix, strings.TrimSpace(req.Query), strings.Join(platforms, ","), req.Limit, req.Sentiment, req.SortBy)
}

func filterBySentiment(items []model.TrendItem, f model.Sentiment) []model.TrendItem {
	if f == model.SentimentAll {
		return items
	}
	kept := make([]model.TrendItem, 0, len(items))
	for _, it := range items {
		if it.Sentiment == f {
			kept = append(kept, it)
		}
	}
	return kept
}

func groupByPlatform(items []model.TrendItem) map[model.Platform][]model.TrendItem {
	groups := make(map[model.Platform][]model.TrendItem, 3)
	for _, p := range model.AllPlatforms() {
		groups[p] = []model.TrendItem{}
	}
	for _, it := range items {
		groups[it.Platform] = append(groups[it.Platform], it)
	}
	return groups
}
