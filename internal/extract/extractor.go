// Package extract converts rendered external search pages into normalized
// TrendItem records, one extractor per platform.
package extract

import (
	"context"
	"fmt"
	"time"

	"trendlens/internal/browser"
	"trendlens/internal/config"
	"trendlens/internal/model"

	"github.com/chromedp/chromedp"
)

// Extractor fetches up to limit normalized items for a query from one
// external source. A returned error is always an *ExtractionError; callers
// that only need the degraded contract collapse it to an empty list.
type Extractor interface {
	Platform() model.Platform
	Extract(ctx context.Context, query string, limit int) ([]model.TrendItem, error)
}

// ExtractionError reports where a source extraction failed. It keeps "zero
// results found" distinguishable from "extraction failed" inside the core
// even though the external contract collapses both to an empty list.
type ExtractionError struct {
	Platform model.Platform
	Stage    string // e.g. "navigate", "wait", "fallback"
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s: %v", e.Platform, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// session runs a navigate / bounded-wait / evaluate sequence against a fresh
// tab. Abstracted so extractor logic is testable without a live browser.
type session interface {
	run(ctx context.Context, pageURL, waitSelector string, timeout time.Duration, script string, out any) error
}

// chromedpSession drives the shared browser handle.
type chromedpSession struct {
	mgr *browser.Manager
}

func (s chromedpSession) run(ctx context.Context, pageURL, waitSelector string, timeout time.Duration, script string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tab, cancel, err := s.mgr.Page()
	if err != nil {
		return err
	}
	defer cancel()

	// The timeout bounds the whole navigate+wait+extract sequence; an
	// ambiguous page state (no results region, no empty marker) resolves
	// to an error here rather than hanging.
	tctx, tcancel := context.WithTimeout(tab, timeout)
	defer tcancel()

	return chromedp.Run(tctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(waitSelector, chromedp.ByQuery),
		chromedp.Evaluate(script, out),
	)
}

// NewExtractor builds the extractor for a platform. The switch is exhaustive
// over the Platform enum; a new platform is a compile-visible addition here.
func NewExtractor(p model.Platform, mgr *browser.Manager, cfg config.SourcesConfig) (Extractor, error) {
	sess := chromedpSession{mgr: mgr}
	switch p {
	case model.PlatformYouTube:
		wait, err := time.ParseDuration(cfg.YouTube.WaitTimeout)
		if err != nil {
			return nil, fmt.Errorf("youtube wait_timeout: %w", err)
		}
		return &VideoExtractor{session: sess, baseURL: cfg.YouTube.BaseURL, wait: wait}, nil
	case model.PlatformReddit:
		wait, err := time.ParseDuration(cfg.Reddit.WaitTimeout)
		if err != nil {
			return nil, fmt.Errorf("reddit wait_timeout: %w", err)
		}
		return &ForumExtractor{session: sess, baseURL: cfg.Reddit.BaseURL, wait: wait}, nil
	case model.PlatformTwitter:
		wait, err := time.ParseDuration(cfg.Twitter.WaitTimeout)
		if err != nil {
			return nil, fmt.Errorf("twitter wait_timeout: %w", err)
		}
		mirrorWait, err := time.ParseDuration(cfg.Twitter.MirrorWaitTimeout)
		if err != nil {
			return nil, fmt.Errorf("twitter mirror_wait_timeout: %w", err)
		}
		return &MicroblogExtractor{
			session:    sess,
			baseURL:    cfg.Twitter.BaseURL,
			wait:       wait,
			mirrorURL:  cfg.Twitter.MirrorURL,
			mirrorWait: mirrorWait,
		}, nil
	default:
		return nil, fmt.Errorf("unknown platform: %q", p)
	}
}
