// Package scrape fans a query out to the per-platform extractors.
package scrape

import (
	"context"
	"log/slog"

	"trendlens/internal/extract"
	"trendlens/internal/model"
)

// Orchestrator runs the requested extractors sequentially. Sources are never
// scraped concurrently: the shared browser is a single process and parallel
// automated sessions across sites invite rate-limiting and bot detection.
type Orchestrator struct {
	extractors map[model.Platform]extract.Extractor
}

// NewOrchestrator registers the given extractors under their platforms.
func NewOrchestrator(exs ...extract.Extractor) *Orchestrator {
	m := make(map[model.Platform]extract.Extractor, len(exs))
	for _, e := range exs {
		m[e.Platform()] = e
	}
	return &Orchestrator{extractors: m}
}

// Scrape invokes each requested platform's extractor with the same query and
// limit, concatenating results in the caller-specified platform order. An
// extraction failure is absorbed here: it contributes nothing to the result
// and is logged for operators. No cross-source deduplication happens; ids
// are source-namespaced, so items from different platforms never collide.
func (o *Orchestrator) Scrape(ctx context.Context, query string, platforms []model.Platform, limit int) []model.TrendItem {
	results := make([]model.TrendItem, 0, limit*len(platforms))
	for _, p := range platforms {
		ex, ok := o.extractors[p]
		if !ok {
			slog.Warn("scrape: no extractor registered", "platform", p)
			continue
		}
		items, err := ex.Extract(ctx, query, limit)
		if err != nil {
			slog.Error("scrape: extraction failed", "platform", p, "query", query, "error", err)
			continue
		}
		results = append(results, items...)
	}
	return results
}
