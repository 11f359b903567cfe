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

// MicroblogExtractor scrapes the live microblog search page and, when that
// yields nothing (zero items or any error), falls back to a read-only mirror
// front-end with its own selector set. The fallback has no further fallback.
type MicroblogExtractor struct {
	session    session
	baseURL    string
	wait       time.Duration
	mirrorURL  string
	mirrorWait time.Duration
}

func (e *MicroblogExtractor) Platform() model.Platform { return model.PlatformTwitter }

type microblogResult struct {
	Content    string `json:"content"`
	Author     string `json:"author"`
	AuthorHref string `json:"authorHref"`
	Date       string `json:"date"`
	Likes      string `json:"likes"`
	Replies    string `json:"replies"`
	Retweets   string `json:"retweets"`
}

const microblogScript = `(() => {
  const items = [];
  const nodes = document.querySelectorAll('article[data-testid="tweet"]');
  for (let i = 0; i < Math.min(nodes.length, %d); i++) {
    const tweet = nodes[i];
    const content = tweet.querySelector('div[data-testid="tweetText"]');
    const author = tweet.querySelector('div[data-testid="User-Name"] a');
    const time = tweet.querySelector('time');
    const like = tweet.querySelector('div[data-testid="like"]');
    const retweet = tweet.querySelector('div[data-testid="retweet"]');
    const reply = tweet.querySelector('div[data-testid="reply"]');
    if (!content || !author) continue;
    items.push({
      content: (content.textContent || '').trim(),
      author: (author.textContent || '').trim(),
      authorHref: author.getAttribute('href') || '',
      date: time ? (time.getAttribute('datetime') || '') : '',
      likes: like ? (like.textContent || '').trim() : '',
      replies: reply ? (reply.textContent || '').trim() : '',
      retweets: retweet ? (retweet.textContent || '').trim() : '',
    });
  }
  return items;
})()`

type mirrorResult struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Href    string   `json:"href"`
	Date    string   `json:"date"`
	Stats   []string `json:"stats"`
}

const mirrorScript = `(() => {
  const items = [];
  const nodes = document.querySelectorAll('.timeline-item');
  for (let i = 0; i < Math.min(nodes.length, %d); i++) {
    const tweet = nodes[i];
    const content = tweet.querySelector('.tweet-content');
    const author = tweet.querySelector('.username');
    const date = tweet.querySelector('a.tweet-date');
    const stats = Array.from(tweet.querySelectorAll('.tweet-stats > span'), s => (s.textContent || '').trim());
    items.push({
      content: content ? (content.textContent || '').trim() : '',
      author: author ? (author.textContent || '').trim() : '',
      href: date ? (date.getAttribute('href') || '') : '',
      date: date ? (date.textContent || '').trim() : '',
      stats: stats,
    });
  }
  return items;
})()`

func (e *MicroblogExtractor) Extract(ctx context.Context, query string, limit int) ([]model.TrendItem, error) {
	items, err := e.extractLive(ctx, query, limit)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		slog.Warn("extract: microblog primary failed, using mirror fallback", "query", query, "error", err)
	} else {
		slog.Warn("extract: microblog returned no results, using mirror fallback", "query", query)
	}

	items, merr := e.extractMirror(ctx, query, limit)
	if merr != nil {
		return nil, &ExtractionError{Platform: e.Platform(), Stage: "fallback", Err: merr}
	}
	return items, nil
}

func (e *MicroblogExtractor) extractLive(ctx context.Context, query string, limit int) ([]model.TrendItem, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s&src=typed_query&f=top", e.baseURL, url.QueryEscape(query))

	var raw []microblogResult
	script := fmt.Sprintf(microblogScript, limit)
	if err := e.session.run(ctx, searchURL, `article[data-testid="tweet"]`, e.wait, script, &raw); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	items := make([]model.TrendItem, 0, len(raw))
	for i, r := range raw {
		itemURL := ""
		if profile, _, _ := strings.Cut(r.AuthorHref, "/status/"); profile != "" {
			itemURL = e.baseURL + profile
		}
		items = append(items, model.TrendItem{
			ID:       fmt.Sprintf("tw-%d-%d", now, i),
			Platform: model.PlatformTwitter,
			Content:  r.Content,
			Author:   r.Author,
			URL:      itemURL,
			Date:     r.Date,
			Engagement: model.Engagement{
				Likes:    parseLeadingInt(r.Likes),
				Comments: parseLeadingInt(r.Replies),
				Shares:   parseLeadingInt(r.Retweets),
			},
		})
	}
	slog.Info("extract: microblog search complete", "query", query, "items", len(items))
	return items, nil
}

func (e *MicroblogExtractor) extractMirror(ctx context.Context, query string, limit int) ([]model.TrendItem, error) {
	searchURL := fmt.Sprintf("%s/search?f=tweets&q=%s", e.mirrorURL, url.QueryEscape(query))

	var raw []mirrorResult
	script := fmt.Sprintf(mirrorScript, limit)
	if err := e.session.run(ctx, searchURL, ".timeline-item", e.mirrorWait, script, &raw); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	items := make([]model.TrendItem, 0, len(raw))
	for i, r := range raw {
		itemURL := ""
		if strings.HasPrefix(r.Href, "/") {
			itemURL = e.mirrorURL + r.Href
		}
		// Mirror stat spans are ordered replies, likes, retweets.
		var comments, likes, shares int
		if len(r.Stats) > 0 {
			comments = parseLeadingInt(r.Stats[0])
		}
		if len(r.Stats) > 1 {
			likes = parseLeadingInt(r.Stats[1])
		}
		if len(r.Stats) > 2 {
			shares = parseLeadingInt(r.Stats[2])
		}
		items = append(items, model.TrendItem{
			ID:       fmt.Sprintf("nt-%d-%d", now, i),
			Platform: model.PlatformTwitter,
			Content:  r.Content,
			Author:   r.Author,
			URL:      itemURL,
			Date:     r.Date,
			Engagement: model.Engagement{
				Likes:    likes,
				Comments: comments,
				Shares:   shares,
			},
		})
	}
	slog.Info("extract: microblog mirror search complete", "query", query, "items", len(items))
	return items, nil
}
