package cmd

import (
	"context"
	"fmt"
	"time"

	"trendlens/internal/cache"
	"trendlens/internal/redisclient"

	"github.com/spf13/cobra"
)

// cacheCmd groups cache utilities.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache utilities",
}

// cachePingCmd pings the configured Redis server.
var cachePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and print PONG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

// cacheDelCmd drops a cached entry by key.
var cacheDelCmd = &cobra.Command{
	Use:   "del <key>",
	Short: "Delete a cached entry (e.g. a trends: or summary: key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := cache.New(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if !store.Invalidate(ctx, args[0]) {
			return fmt.Errorf("failed to delete key %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePingCmd)
	cacheCmd.AddCommand(cacheDelCmd)
	rootCmd.AddCommand(cacheCmd)
}
