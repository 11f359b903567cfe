package trends

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"trendlens/internal/model"
	"trendlens/internal/sentiment"
)

// mapStore is an in-memory Store with the cache layer's degraded contract.
type mapStore struct {
	entries map[string][]byte
	sets    int
}

func newMapStore() *mapStore { return &mapStore{entries: map[string][]byte{}} }

func (m *mapStore) Get(_ context.Context, key string, dest any) bool {
	b, ok := m.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (m *mapStore) Set(_ context.Context, key string, value any, _ time.Duration) bool {
	b, err := json.Marshal(value)
	if err != nil {
		return false
	}
	m.entries[key] = b
	m.sets++
	return true
}

type stubScraper struct {
	items []model.TrendItem
	calls int
}

func (s *stubScraper) Scrape(context.Context, string, []model.Platform, int) []model.TrendItem {
	s.calls++
	out := make([]model.TrendItem, len(s.items))
	copy(out, s.items)
	return out
}

func newTestService(items []model.TrendItem) (*Service, *stubScraper, *mapStore) {
	sc := &stubScraper{items: items}
	st := newMapStore()
	svc := NewService(sc, sentiment.NewClassifier(), st, time.Hour, 24*time.Hour)
	return svc, sc, st
}

func TestAggregateRejectsBadInput(t *testing.T) {
	svc, sc, _ := newTestService(nil)

	_, err := svc.Aggregate(context.Background(), model.SearchRequest{Query: "  ", Platforms: []model.Platform{model.PlatformReddit}})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty query: err = %v, want ErrBadRequest", err)
	}
	_, err = svc.Aggregate(context.Background(), model.SearchRequest{Query: "x"})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty platforms: err = %v, want ErrBadRequest", err)
	}
	_, err = svc.Aggregate(context.Background(), model.SearchRequest{Query: "x", Platforms: []model.Platform{"myspace"}})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("unknown platform: err = %v, want ErrBadRequest", err)
	}
	if sc.calls != 0 {
		t.Errorf("rejected requests must not scrape; got %d calls", sc.calls)
	}
}

func TestCacheKeyIgnoresPlatformOrder(t *testing.T) {
	a := CacheKey(model.SearchRequest{Query: "x", Platforms: []model.Platform{model.PlatformReddit, model.PlatformYouTube}, Limit: 10, Sentiment: model.SentimentAll, SortBy: model.SortRelevance})
	b := CacheKey(model.SearchRequest{Query: "x", Platforms: []model.Platform{model.PlatformYouTube, model.PlatformReddit}, Limit: 10, Sentiment: model.SentimentAll, SortBy: model.SortRelevance})
	if a != b {
		t.Fatalf("keys differ:\n%s\n%s", a, b)
	}
	c := CacheKey(model.SearchRequest{Query: "x", Platforms: []model.Platform{model.PlatformReddit, model.PlatformYouTube}, Limit: 20, Sentiment: model.SentimentAll, SortBy: model.SortRelevance})
	if a == c {
		t.Fatalf("different limits must produce different keys: %s", a)
	}
}

func TestAggregateServesCachedPayloadUnchanged(t *testing.T) {
	svc, sc, st := newTestService([]model.TrendItem{
		{ID: "r1", Platform: model.PlatformReddit, Title: "great stuff"},
	})
	req := model.SearchRequest{Query: "x", Platforms: []model.Platform{model.PlatformReddit}}

	first, err := svc.Aggregate(context.Background(), req)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := svc.Aggregate(context.Background(), req)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if sc.calls != 1 {
		t.Errorf("scraper called %d times, want 1", sc.calls)
	}
	if st.sets != 1 {
		t.Errorf("cache written %d times, want 1", st.sets)
	}
	if second.Timestamp != first.Timestamp {
		t.Errorf("cached timestamp changed: %s vs %s", second.Timestamp, first.Timestamp)
	}
	fb, _ := json.Marshal(first)
	sb, _ := json.Marshal(second)
	if string(fb) != string(sb) {
		t.Errorf("cached payload differs:\n%s\n%s", fb, sb)
	}
}

func TestAggregateFiltersBySentimentPreservingOrder(t *testing.T) {
	svc, _, _ := newTestService([]model.TrendItem{
		{ID: "a", Platform: model.PlatformReddit, Title: "great"},
		{ID: "b", Platform: model.PlatformReddit, Title: "awful"},
		{ID: "c", Platform: model.PlatformReddit, Title: "love it, best ever"},
		{ID: "d", Platform: model.PlatformReddit, Title: "nothing much"},
	})
	agg, err := svc.Aggregate(context.Background(), model.SearchRequest{
		Query:     "x",
		Platforms: []model.Platform{model.PlatformReddit},
		Sentiment: model.SentimentPositive,
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(agg.Items) != 2 || agg.Items[0].ID != "a" || agg.Items[1].ID != "c" {
		t.Fatalf("filtered items = %+v, want [a c]", agg.Items)
	}
	for _, it := range agg.Items {
		if it.Sentiment != model.SentimentPositive {
			t.Errorf("item %s sentiment = %s", it.ID, it.Sentiment)
		}
	}
}

func TestAggregateGroupsByPlatform(t *testing.T) {
	svc, _, _ := newTestService([]model.TrendItem{
		{ID: "y1", Platform: model.PlatformYouTube},
		{ID: "r1", Platform: model.PlatformReddit},
		{ID: "y2", Platform: model.PlatformYouTube},
	})
	agg, err := svc.Aggregate(context.Background(), model.SearchRequest{
		Query:     "x",
		Platforms: []model.Platform{model.PlatformYouTube, model.PlatformReddit},
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(agg.Platforms[model.PlatformYouTube]) != 2 || len(agg.Platforms[model.PlatformReddit]) != 1 {
		t.Errorf("groups = %+v", agg.Platforms)
	}
	// The partition is a view, not a filter: empty platforms still appear.
	if got, ok := agg.Platforms[model.PlatformTwitter]; !ok || len(got) != 0 {
		t.Errorf("twitter group = %v, want present and empty", got)
	}
}

func TestSummarizeItemsCachesBySortedIDs(t *testing.T) {
	svc, _, st := newTestService(nil)
	items := []model.TrendItem{
		{ID: "b", Platform: model.PlatformReddit, Sentiment: model.SentimentPositive},
		{ID: "a", Platform: model.PlatformReddit, Sentiment: model.SentimentNegative},
	}
	if _, err := svc.SummarizeItems(context.Background(), items); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if _, ok := st.entries["summary:a,b"]; !ok {
		t.Errorf("expected key summary:a,b, have %v", keys(st.entries))
	}
	if _, err := svc.SummarizeItems(context.Background(), nil); !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty items: want ErrBadRequest")
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
