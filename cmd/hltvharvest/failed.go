package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hltvharvest/pkg/config"
	"hltvharvest/pkg/solver"
)

// failedCmd represents the failed command
var failedCmd = &cobra.Command{
	Use:   "failed",
	Short: "List urls whose fetch retries were exhausted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, globalFlags())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		urls, err := solver.NewFailureLog(cfg.Output.FailedURLsPath()).URLs()
		if err != nil {
			return err
		}

		if len(urls) == 0 {
			fmt.Println("No failed urls recorded.")
			return nil
		}

		for _, url := range urls {
			fmt.Println(url)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(failedCmd)
}
