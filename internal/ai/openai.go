package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trendlens/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Narrator turns a computed trend summary into a short prose overview. It is
// strictly optional: the heuristic summarizer stays the source of truth, and
// narrative text is never cached alongside aggregates.
type Narrator interface {
	Narrate(ctx context.Context, query string, items []model.TrendItem, sum model.TrendSummary) (string, error)
}

// OpenAIClient implements Narrator using OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) Narrate(ctx context.Context, query string, items []model.TrendItem, sum model.TrendSummary) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	if len(items) == 0 {
		return "", nil
	}

	b := &strings.Builder{}
	for i, it := range items {
		if i >= 10 {
			break
		}
		text := it.Title
		if text == "" {
			text = it.Content
		}
		if len([]rune(text)) > 120 {
			text = string([]rune(text)[:120])
		}
		fmt.Fprintf(b, "- [%s, %s] %s\n", it.Platform, it.Sentiment, text)
	}
	for _, t := range sum.KeyTakeaways {
		fmt.Fprintf(b, "Takeaway: %s\n", t)
	}

	sys := `
		You summarize social-media chatter about a topic for a busy reader.
		Return 2 ~ 4 sentences (40–160 words), plain text, no links, no lists.
		Mention the overall mood and anything the platforms disagree on.
		`
	user := fmt.Sprintf("Topic: %s\nScraped discussions and computed takeaways:\n%s\nTask: Write the overview only.", query, b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: narrate error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
