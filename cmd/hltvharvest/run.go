package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hltvharvest/pkg/checkpoint"
	"hltvharvest/pkg/config"
	"hltvharvest/pkg/harvest"
	"hltvharvest/pkg/hltv"
	"hltvharvest/pkg/logger"
	"hltvharvest/pkg/results"
	"hltvharvest/pkg/solver"
)

var (
	// Run command flags
	budget      time.Duration
	maxOffset   int
	dataDir     string
	stateFile   string
	resultsFile string
	solverURL   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one harvest run",
	Long: `Execute one harvest run: collect new results from the paginated
listing starting at the checkpointed cursor, then enrich un-enriched
matches with detail-page data, until done or the wall-clock budget is
spent.

An interrupt (Ctrl-C) stops the run cleanly at the next step boundary
after a best-effort final save of both the checkpoint and the result
set.`,
	Example: `  # Run with defaults (resumes from the checkpoint, if any)
  hltvharvest run

  # Short bounded run against a non-default solver
  hltvharvest run --budget 10m --solver-url http://solver:8191/v1

  # Keep all state files in a dedicated directory
  hltvharvest run --data-dir /var/lib/hltvharvest`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHarvest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&budget, "budget", 0, "wall-clock budget for this run (e.g. 30m)")
	runCmd.Flags().IntVar(&maxOffset, "max-offset", -1, "maximum pagination offset to scan")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for state, results and failure-log files")
	runCmd.Flags().StringVar(&stateFile, "state-file", "", "checkpoint file name")
	runCmd.Flags().StringVar(&resultsFile, "results-file", "", "results file name")
	runCmd.Flags().StringVar(&solverURL, "solver-url", "", "FlareSolverr endpoint url")
}

func runHarvest(cmd *cobra.Command) error {
	flags := globalFlags()
	if cmd.Flags().Changed("budget") {
		flags["budget"] = budget
	}
	if cmd.Flags().Changed("max-offset") {
		flags["max-offset"] = maxOffset
	}
	if dataDir != "" {
		flags["data-dir"] = dataDir
	}
	if stateFile != "" {
		flags["state-file"] = stateFile
	}
	if resultsFile != "" {
		flags["results-file"] = resultsFile
	}
	if solverURL != "" {
		flags["solver-url"] = solverURL
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()

	if err := os.MkdirAll(cfg.Output.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	failures := solver.NewFailureLog(cfg.Output.FailedURLsPath())
	client := solver.NewClient(&cfg.Solver, &cfg.Retry, failures, log)

	extractor, err := hltv.NewExtractor(cfg.Harvest.BaseURL, cfg.Harvest.Timezone, log)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	teams := hltv.NewTeamDirectory(client, extractor)
	checkpoints := checkpoint.NewManager(cfg.Output.StatePath(), log)
	store := results.NewStore(cfg.Output.ResultsPath(), log)

	session := harvest.NewSession(cfg, client, extractor, teams, checkpoints, store, log)

	// An interrupt cancels the context; the session stops at the next
	// step boundary and Run performs the final save of both stores.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := session.Run(ctx)
	if err != nil {
		log.WithError(err).Error("harvest run failed")
		return err
	}

	log.InfoWithFields("run completed successfully", map[string]interface{}{
		"outcome":       string(report.Outcome),
		"new_matches":   report.NewMatches,
		"enriched":      report.Enriched,
		"enrich_failed": report.EnrichFailed,
		"total":         report.Total,
	})

	return nil
}
