package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goapriori/internal/miner"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check the transaction source",
	Long: `Validate checks the configuration file and loads the transaction
source once to ensure a mining run can proceed.

Checks performed:
  - Configuration syntax and required fields
  - Mining parameter ranges and strategy
  - Source connectivity and readability

Example:
  goapriori validate --config goapriori.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(nil)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting validation checks...")

	strategy, err := miner.StrategyFor(cfg.Mining.Strategy)
	if err != nil {
		return err
	}

	ctx := context.Background()
	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("source check failed: %w", err)
	}
	defer closeSource()

	set, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("source check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(out, "Source: %s\n", src.Describe())
	fmt.Fprintf(out, "Strategy: %s\n", strategy.Name())
	fmt.Fprintf(out, "Number of items: %d\n", set.ItemCount())
	fmt.Fprintf(out, "Number of transactions: %d\n\n", set.Len())

	if set.Len() == 0 {
		log.Warn("Source contains no transactions")
	}

	fmt.Fprintln(out, "=== Validation Complete ===")
	return nil
}
