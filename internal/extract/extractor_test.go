package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trendlens/internal/model"
)

// fakeSession replays canned per-URL behavior instead of driving a browser.
type fakeSession struct {
	handle func(pageURL string, out any) error
	calls  []string
}

func (f *fakeSession) run(_ context.Context, pageURL, _ string, _ time.Duration, _ string, out any) error {
	f.calls = append(f.calls, pageURL)
	return f.handle(pageURL, out)
}

func TestVideoExtractConversion(t *testing.T) {
	sess := &fakeSession{handle: func(_ string, out any) error {
		*out.(*[]videoResult) = []videoResult{
			{
				Href:      "/watch?v=abc123&pp=x",
				Title:     "Launch review",
				Author:    "SomeChannel",
				Thumbnail: "https://i.ytimg.com/vi/abc123/hq720.jpg",
				Meta:      "1.2M views · 3 days ago",
			},
			{Title: "No link video", Author: "Other"},
		}
		return nil
	}}
	e := &VideoExtractor{session: sess, baseURL: "https://www.youtube.com", wait: time.Second}

	items, err := e.Extract(context.Background(), "launch", 10)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	first := items[0]
	if first.ID != "abc123" {
		t.Errorf("id = %q, want abc123", first.ID)
	}
	if first.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Engagement.Views != 1200000 {
		t.Errorf("views = %d, want 1200000", first.Engagement.Views)
	}
	if first.Content != "" {
		t.Errorf("video content must be empty, got %q", first.Content)
	}
	if first.Engagement.Likes != 0 || first.Engagement.Comments != 0 {
		t.Errorf("likes/comments must stay zero without a detail visit: %+v", first.Engagement)
	}
	// Missing href falls back to a synthesized id.
	if !strings.HasPrefix(items[1].ID, "yt-") {
		t.Errorf("synthesized id = %q, want yt- prefix", items[1].ID)
	}
}

func TestForumExtractConversion(t *testing.T) {
	sess := &fakeSession{handle: func(_ string, out any) error {
		*out.(*[]forumResult) = []forumResult{
			{
				Title:     "Anyone tried the new release?",
				Author:    "u/someone",
				Content:   "It fixed the crash for me.",
				Upvotes:   "128",
				Comments:  "34 comments",
				Permalink: "/r/golang/comments/abc/new_release/",
			},
		}
		return nil
	}}
	e := &ForumExtractor{session: sess, baseURL: "https://www.reddit.com", wait: time.Second}

	items, err := e.Extract(context.Background(), "release", 10)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	it := items[0]
	if it.ID != "new_release" {
		t.Errorf("id = %q, want new_release", it.ID)
	}
	if it.URL != "https://www.reddit.com/r/golang/comments/abc/new_release/" {
		t.Errorf("url = %q", it.URL)
	}
	if it.Engagement.Likes != 128 || it.Engagement.Comments != 34 {
		t.Errorf("engagement = %+v, want likes=128 comments=34", it.Engagement)
	}
}

func TestMicroblogFallsBackOnError(t *testing.T) {
	sess := &fakeSession{handle: func(pageURL string, out any) error {
		if strings.HasPrefix(pageURL, "https://twitter.com") {
			return errors.New("wait timeout")
		}
		*out.(*[]mirrorResult) = []mirrorResult{
			{Content: "mirrored post", Author: "@someone", Href: "/someone/status/1", Stats: []string{"3", "12", "5"}},
		}
		return nil
	}}
	e := &MicroblogExtractor{
		session: sess, baseURL: "https://twitter.com", wait: time.Second,
		mirrorURL: "https://nitter.net", mirrorWait: time.Second,
	}

	items, err := e.Extract(context.Background(), "topic", 10)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(items) != 1 || items[0].Content != "mirrored post" {
		t.Fatalf("expected mirror items, got %+v", items)
	}
	it := items[0]
	if it.URL != "https://nitter.net/someone/status/1" {
		t.Errorf("url = %q", it.URL)
	}
	if it.Engagement.Comments != 3 || it.Engagement.Likes != 12 || it.Engagement.Shares != 5 {
		t.Errorf("engagement = %+v, want comments=3 likes=12 shares=5", it.Engagement)
	}
	if len(sess.calls) != 2 {
		t.Errorf("expected primary then mirror, got calls %v", sess.calls)
	}
}

func TestMicroblogFallsBackOnEmpty(t *testing.T) {
	sess := &fakeSession{handle: func(pageURL string, out any) error {
		if strings.HasPrefix(pageURL, "https://twitter.com") {
			*out.(*[]microblogResult) = nil
			return nil
		}
		*out.(*[]mirrorResult) = []mirrorResult{{Content: "from mirror"}}
		return nil
	}}
	e := &MicroblogExtractor{
		session: sess, baseURL: "https://twitter.com", wait: time.Second,
		mirrorURL: "https://nitter.net", mirrorWait: time.Second,
	}

	items, err := e.Extract(context.Background(), "topic", 10)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(items) != 1 || items[0].Content != "from mirror" {
		t.Fatalf("expected mirror fallback on empty primary, got %+v", items)
	}
}

func TestMicroblogFallbackFailureReturnsTypedError(t *testing.T) {
	sess := &fakeSession{handle: func(string, any) error {
		return errors.New("page structure changed")
	}}
	e := &MicroblogExtractor{
		session: sess, baseURL: "https://twitter.com", wait: time.Second,
		mirrorURL: "https://nitter.net", mirrorWait: time.Second,
	}

	items, err := e.Extract(context.Background(), "topic", 10)
	if items != nil {
		t.Errorf("expected no items, got %+v", items)
	}
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected *ExtractionError, got %T (%v)", err, err)
	}
	if exErr.Platform != model.PlatformTwitter || exErr.Stage != "fallback" {
		t.Errorf("unexpected error detail: %+v", exErr)
	}
}
