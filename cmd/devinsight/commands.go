package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devinsight/devinsight/internal/adapters"
	"github.com/devinsight/devinsight/internal/config"
	"github.com/devinsight/devinsight/internal/database"
	"github.com/devinsight/devinsight/internal/insights"
	"github.com/devinsight/devinsight/internal/monitoring"
	"github.com/devinsight/devinsight/internal/profile"
	"github.com/devinsight/devinsight/internal/render"
)

var (
	outputPath string
	asJSON     bool
	noStore    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "devinsight",
	Short: "Derive developer insights from GitHub profiles",
	Long: `devinsight scans a GitHub user's public repositories and derives
language experience tiers, technology stack, professional indicators,
and a career timeline from the repository metadata.`,
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan <username>",
	Short: "Scan a GitHub profile and print the derived insights",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var showCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show the most recent stored scan for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	scanCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	scanCmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of markdown")
	scanCmd.Flags().BoolVar(&noStore, "no-store", false, "skip persisting the scan")
	showCmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of markdown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
}

func newService(withStore bool) (*profile.Service, func(), error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := monitoring.NewLogger(level)
	metrics := monitoring.NewMetrics()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	var repo *database.Repository
	cleanup := func() {}
	if withStore {
		db, err := database.NewDB(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}
		repo = database.NewRepository(db)
		cleanup = func() { db.Close() }
	}

	adapter := adapters.NewGitHubAdapter(cfg.GitHub.Token, cfg.GitHub.RequestsPerSec, logger, metrics)
	aggregator := insights.NewAggregator(insights.DefaultRegistry())
	return profile.NewService(adapter, aggregator, repo, logger, metrics), cleanup, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	service, cleanup, err := newService(!noStore)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	result, err := service.Scan(ctx, args[0])
	if err != nil {
		return err
	}
	return emit(result)
}

func runShow(cmd *cobra.Command, args []string) error {
	service, cleanup, err := newService(true)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := service.Latest(args[0])
	if err != nil {
		return err
	}
	return emit(result)
}

func emit(result *profile.Result) error {
	var out string
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		out = string(data)
	} else {
		doc, err := render.Markdown(render.Profile{
			Username: result.Username,
			Insights: result.Insights,
			Summary:  result.Summary,
		})
		if err != nil {
			return err
		}
		out = doc
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, []byte(out), 0o644)
	}
	fmt.Println(out)
	return nil
}
