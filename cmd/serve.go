package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendlens/internal/browser"
	"trendlens/internal/cache"
	"trendlens/internal/extract"
	"trendlens/internal/keys"
	"trendlens/internal/model"
	"trendlens/internal/redisclient"
	"trendlens/internal/scrape"
	"trendlens/internal/sentiment"
	"trendlens/internal/server"
	"trendlens/internal/trends"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP aggregation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		// Redis client
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
		orch := scrape.NewOrchestrator(extractors...)

		searchTTL, err := time.ParseDuration(cfg.Cache.SearchTTL)
		if err != nil {
			return err
		}
		summaryTTL, err := time.ParseDuration(cfg.Cache.SummaryTTL)
		if err != nil {
			return err
		}

		svc := trends.NewService(orch, sentiment.NewClassifier(), store, searchTTL, summaryTTL)
		keyStore := keys.NewStore(keys.FromEnv())

		srv := server.New(cfg.Server, svc, keyStore)

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("server shutdown", "error", err)
			}
		}()

		slog.Info("listening", "addr", cfg.Server.Addr)
		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
