package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hltvharvest/pkg/checkpoint"
	"hltvharvest/pkg/config"
	"hltvharvest/pkg/logger"
	"hltvharvest/pkg/results"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show checkpoint and result-set status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, globalFlags())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log := logger.NewNopLogger()

		checkpoints := checkpoint.NewManager(cfg.Output.StatePath(), log)
		info, err := checkpoints.Info()
		if err != nil {
			return fmt.Errorf("failed to read checkpoint: %w", err)
		}

		if info == nil {
			fmt.Println("No checkpoint found; the next run starts fresh.")
		} else {
			fmt.Printf("Checkpoint:  %s\n", cfg.Output.StatePath())
			fmt.Printf("  cursor:    %v\n", info["cursor"])
			fmt.Printf("  enriched:  %v\n", info["enriched"])
			fmt.Printf("  updated:   %v (%v ago)\n", info["updated_at"], info["age"])
		}

		store := results.NewStore(cfg.Output.ResultsPath(), log)
		matches := store.LoadAll()

		failed := 0
		for _, match := range matches {
			if match.EnrichFailed {
				failed++
			}
		}

		fmt.Printf("Results:     %s\n", cfg.Output.ResultsPath())
		fmt.Printf("  matches:   %d\n", len(matches))
		fmt.Printf("  failed:    %d\n", failed)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
