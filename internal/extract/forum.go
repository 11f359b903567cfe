package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"trendlens/internal/model"
)

// ForumExtractor scrapes forum search results: post title, body snippet,
// upvote counter and comment-count label.
type ForumExtractor struct {
	session session
	baseURL string
	wait    time.Duration
}

func (e *ForumExtractor) Platform() model.Platform { return model.PlatformReddit }

type forumResult struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Upvotes   string `json:"upvotes"`
	Comments  string `json:"comments"`
	Permalink string `json:"permalink"`
}

const forumScript = `(() => {
  const items = [];
  const nodes = document.querySelectorAll('div[data-testid="post-container"]');
  for (let i = 0; i < Math.min(nodes.length, %d); i++) {
    const post = nodes[i];
    const title = post.querySelector('h3');
    const author = post.querySelector('a[data-testid="post_author"]');
    const content = post.querySelector('div[data-testid="post-content"]');
    const upvote = post.querySelector('button[aria-label*="upvote"]');
    const comments = post.querySelector('a[data-click-id="comments"]');
    const permalink = post.querySelector('a[data-click-id="body"]');
    if (!title || !permalink) continue;
    items.push({
      title: (title.textContent || '').trim(),
      author: author ? (author.textContent || '').trim() : '',
      content: content ? (content.textContent || '').trim() : '',
      upvotes: upvote ? (upvote.textContent || '').trim() : '',
      comments: comments ? (comments.textContent || '').trim() : '',
      permalink: permalink.getAttribute('href') || '',
    });
  }
  return items;
})()`

func (e *ForumExtractor) Extract(ctx context.Context, query string, limit int) ([]model.TrendItem, error) {
	searchURL := fmt.Sprintf("%s/search/?q=%s", e.baseURL, url.QueryEscape(query))

	var raw []forumResult
	script := fmt.Sprintf(forumScript, limit)
	if err := e.session.run(ctx, searchURL, `div[data-testid="post-container"]`, e.wait, script, &raw); err != nil {
		return nil, &ExtractionError{Platform: e.Platform(), Stage: "search", Err: err}
	}

	now := time.Now().UnixMilli()
	items := make([]model.TrendItem, 0, len(raw))
	for i, r := range raw {
		id := lastPathSegment(r.Permalink)
		if id == "" {
			id = fmt.Sprintf("rd-%d-%d", now, i)
		}
		itemURL := r.Permalink
		if itemURL != "" && !strings.HasPrefix(itemURL, "http") {
			itemURL = e.baseURL + itemURL
		}
		items = append(items, model.TrendItem{
			ID:       id,
			Platform: model.PlatformReddit,
			Title:    r.Title,
			Content:  r.Content,
			Author:   r.Author,
			URL:      itemURL,
			Engagement: model.Engagement{
				Likes:    parseLeadingInt(r.Upvotes),
				Comments: parseLeadingInt(firstField(r.Comments)),
			},
		})
	}
	slog.Info("extract: forum search complete", "query", query, "items", len(items))
	return items, nil
}

// lastPathSegment returns the final non-empty path segment of a permalink.
func lastPathSegment(p string) string {
	parts := strings.Split(p, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
