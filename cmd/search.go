package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"trendlens/internal/ai"
	"trendlens/internal/browser"
	"trendlens/internal/cache"
	"trendlens/internal/extract"
	"trendlens/internal/model"
	"trendlens/internal/redisclient"
	"trendlens/internal/scrape"
	"trendlens/internal/sentiment"
	"trendlens/internal/trends"

	"github.com/spf13/cobra"
)

var (
	searchPlatforms []string
	searchLimit     int
	searchSentiment string
	searchSort      string
	searchNarrate   bool
)

// searchCmd runs a single aggregation pass and prints the result as JSON.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Aggregate trends for a query and print JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := cache.New(rdb)

		mgr := browser.NewManager(browser.Options{
			Headful:  cfg.Browser.Headful,
			ExecPath: cfg.Browser.ExecPath,
		})
		defer mgr.Shutdown()

		var extractors []extract.Extractor
		for _, p := range model.AllPlatforms() {
			ex, err := extract.NewExtractor(p, mgr, cfg.Sources)
			if err != nil {
				return err
			}
			extractors = append(extractors, ex)
		}

		searchTTL, err := time.ParseDuration(cfg.Cache.SearchTTL)
		if err != nil {
			return err
		}
		summaryTTL, err := time.ParseDuration(cfg.Cache.SummaryTTL)
		if err != nil {
			return err
		}

		svc := trends.NewService(scrape.NewOrchestrator(extractors...), sentiment.NewClassifier(), store, searchTTL, summaryTTL)

		platforms := make([]model.Platform, 0, len(searchPlatforms))
		for _, p := range searchPlatforms {
			platforms = append(platforms, model.Platform(p))
		}
		req := model.SearchRequest{
			Query:     query,
			Platforms: platforms,
			Limit:     searchLimit,
			Sentiment: model.Sentiment(searchSentiment),
			SortBy:    model.SortOption(searchSort),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		res, err := svc.Aggregate(ctx, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}

		if searchNarrate {
			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("narrate requested but no OpenAI API key configured")
			}
			var narrator ai.Narrator = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
			var sum model.TrendSummary
			if res.Summary != nil {
				sum = *res.Summary
			}
			text, err := narrator.Narrate(ctx, query, res.Items, sum)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, text)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchPlatforms, "platforms", nil, "platforms to search (default: all)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "max items per platform")
	searchCmd.Flags().StringVar(&searchSentiment, "sentiment", "", "filter: positive, negative, neutral, all")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "order: relevance, date, engagement")
	searchCmd.Flags().BoolVar(&searchNarrate, "narrate", false, "append an AI-written narrative (requires OpenAI key)")
	rootCmd.AddCommand(searchCmd)
}
