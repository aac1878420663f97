package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goapriori/internal/apriori"
	"github.com/dbsmedya/goapriori/internal/database"
	"github.com/dbsmedya/goapriori/internal/logger"
	"github.com/dbsmedya/goapriori/internal/report"
)

var (
	mineFormat       string
	mineShowItemsets bool
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine frequent itemsets and print the best association rules",
	Long: `Mine loads the configured transaction source, searches for frequent
itemsets level by level and prints the highest-confidence rules derived
from the selected itemset level.

The report contains:
  - Number of distinct items and transactions
  - Minimum support and confidence used
  - Rules ranked by confidence, truncated to --num-rules

Example:
  goapriori mine --input food.csv --min-support 0.1 --min-confidence 0.5 --itemset-level 3`,
	RunE: runMine,
}

func init() {
	mineCmd.Flags().StringVarP(&mineFormat, "format", "f", "",
		"Override output format (text, json, yaml)")
	mineCmd.Flags().BoolVar(&mineShowItemsets, "show-itemsets", false,
		"Include the frequent itemset table in the report")

	rootCmd.AddCommand(mineCmd)
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(func(o *CLIOverrides) {
		o.Format = mineFormat
		o.ShowItemsets = mineShowItemsets
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	runLog := log.WithRun(logger.NewRunID())
	runLog.Infow("Starting mining run", "config", GetConfigFile())

	// Setup context with signal handling
	ctx := database.SetupSignalHandlerWithCallback(func(sig os.Signal) {
		runLog.Warnw("Received shutdown signal - aborting load", "signal", sig.String())
	})

	set, err := loadTransactions(ctx, cfg, runLog)
	if err != nil {
		return err
	}

	runner, err := apriori.NewRunner(cfg.Mining, runLog)
	if err != nil {
		return err
	}
	result, err := runner.Run(set)
	if err != nil {
		return fmt.Errorf("mining failed: %w", err)
	}

	opts := report.Options{
		Format:       cfg.Output.Format,
		ShowItemsets: cfg.Output.ShowItemsets,
		Color:        cfg.Output.Color,
	}
	if err := report.Render(cmd.OutOrStdout(), result, opts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
