package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"trendlens/internal/model"
)

// VideoExtractor scrapes video search results. Search pages expose no
// transcript and no like/comment counts (those need a per-video detail visit
// this extractor deliberately does not perform), so content stays empty and
// engagement carries views only.
type VideoExtractor struct {
	session session
	baseURL string
	wait    time.Duration
}

func (e *VideoExtractor) Platform() model.Platform { return model.PlatformYouTube }

// videoResult is the raw per-card payload produced by the in-page script.
type videoResult struct {
	Href      string `json:"href"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
	Meta      string `json:"meta"`
}

const videoScript = `(() => {
  const items = [];
  const nodes = document.querySelectorAll('ytd-video-renderer, ytd-compact-video-renderer');
  for (let i = 0; i < Math.min(nodes.length, %d); i++) {
    const v = nodes[i];
    const title = v.querySelector('#video-title, #title');
    const channel = v.querySelector('#channel-name, #byline');
    const thumb = v.querySelector('#thumbnail img');
    const meta = v.querySelector('#metadata-line');
    if (!title || !channel) continue;
    items.push({
      href: title.getAttribute('href') || '',
      title: (title.textContent || '').trim(),
      author: (channel.textContent || '').trim(),
      thumbnail: thumb ? (thumb.getAttribute('src') || '') : '',
      meta: meta ? (meta.textContent || '').trim() : '',
    });
  }
  return items;
})()`

var viewsRe = regexp.MustCompile(`([\d.,]+[KMB]?)\s+views`)

func (e *VideoExtractor) Extract(ctx context.Context, query string, limit int) ([]model.TrendItem, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", e.baseURL, url.QueryEscape(query))

	var raw []videoResult
	script := fmt.Sprintf(videoScript, limit)
	if err := e.session.run(ctx, searchURL, "#contents", e.wait, script, &raw); err != nil {
		return nil, &ExtractionError{Platform: e.Platform(), Stage: "search", Err: err}
	}

	now := time.Now().UnixMilli()
	items := make([]model.TrendItem, 0, len(raw))
	for i, r := range raw {
		videoID := videoIDFromHref(r.Href)
		id := videoID
		if id == "" {
			id = fmt.Sprintf("yt-%d-%d", now, i)
		}
		itemURL := ""
		if videoID != "" {
			itemURL = fmt.Sprintf("%s/watch?v=%s", e.baseURL, videoID)
		}
		views := 0
		if m := viewsRe.FindStringSubmatch(r.Meta); m != nil {
			views = parseCount(m[1])
		}
		items = append(items, model.TrendItem{
			ID:           id,
			Platform:     model.PlatformYouTube,
			Title:        r.Title,
			Author:       r.Author,
			URL:          itemURL,
			ThumbnailURL: r.Thumbnail,
			Engagement:   model.Engagement{Views: views},
		})
	}
	slog.Info("extract: video search complete", "query", query, "items", len(items))
	return items, nil
}

// videoIDFromHref pulls the v= parameter out of a watch href.
func videoIDFromHref(href string) string {
	_, after, found := strings.Cut(href, "v=")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "&")
	return id
}
