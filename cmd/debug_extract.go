package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"trendlens/internal/browser"
	"trendlens/internal/extract"
	"trendlens/internal/model"

	"github.com/spf13/cobra"
)

var debugExtractLimit int

var debugExtractCmd = &cobra.Command{
	Use:   "debug-extract <platform> <query>",
	Short: "Debug: run a single platform extractor and print raw items",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform := model.Platform(args[0])
		if !platform.Valid() {
			return fmt.Errorf("unknown platform: %s", args[0])
		}
		query := args[1]
		cfg := GetConfig()

		mgr := browser.NewManager(browser.Options{
			Headful:  cfg.Browser.Headful,
			ExecPath: cfg.Browser.ExecPath,
		})
		defer mgr.Shutdown()

		ex, err := extract.NewExtractor(platform, mgr, cfg.Sources)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		items, err := ex.Extract(ctx, query, debugExtractLimit)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "extracted %d items\n", len(items))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	},
}

func init() {
	debugExtractCmd.Flags().IntVar(&debugExtractLimit, "limit", 10, "max items to extract")
	rootCmd.AddCommand(debugExtractCmd)
}
