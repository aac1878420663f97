package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/goapriori/internal/apriori"
	"github.com/dbsmedya/goapriori/internal/database"
	"github.com/dbsmedya/goapriori/internal/logger"
	"github.com/dbsmedya/goapriori/internal/report"
	"github.com/dbsmedya/goapriori/internal/transaction"
)

var (
	sweepSupports []float64
	sweepWorkers  int
	sweepFormat   string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mine the same transactions at several minimum supports",
	Long: `Sweep loads the transaction source once and runs an independent
mining pass for every value given to --supports. Runs execute
concurrently and share only the loaded transactions.

One summary row is printed per support value, in the order given.

Example:
  goapriori sweep --input food.csv --supports 0.05,0.1,0.2 --workers 4`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().Float64SliceVar(&sweepSupports, "supports", nil,
		"Comma-separated minimum support values to mine (required)")
	sweepCmd.MarkFlagRequired("supports")

	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "w", 4,
		"Maximum number of concurrent runs")
	sweepCmd.Flags().StringVarP(&sweepFormat, "format", "f", "",
		"Override output format (text, json, yaml)")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepSupports) == 0 {
		return fmt.Errorf("at least one --supports value is required")
	}
	if sweepWorkers < 1 {
		return fmt.Errorf("--workers must be at least 1")
	}

	cfg, log, err := setup(func(o *CLIOverrides) {
		o.Format = sweepFormat
	})
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.WithRun(logger.NewRunID())

	// Build every runner up front so a bad support value fails before loading.
	runners := make([]*apriori.Runner, len(sweepSupports))
	for i, s := range sweepSupports {
		params := cfg.Mining
		params.MinSupport = s
		runners[i], err = apriori.NewRunner(params, log.WithFields(map[string]interface{}{"min_support": s}))
		if err != nil {
			return fmt.Errorf("min support %g: %w", s, err)
		}
	}

	ctx := database.SetupSignalHandler()
	set, err := loadTransactions(ctx, cfg, log)
	if err != nil {
		return err
	}

	log.Infow("Starting support sweep", "runs", len(runners), "workers", sweepWorkers)

	results, err := runAll(ctx, runners, set, sweepWorkers)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	opts := report.Options{Format: cfg.Output.Format, Color: cfg.Output.Color}
	if err := report.RenderSweep(cmd.OutOrStdout(), results, opts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// runAll executes runners over set with at most workers in flight. Results
// keep the runners' order. Once a run fails or ctx is cancelled, runs that
// have not started yet are skipped.
func runAll(ctx context.Context, runners []*apriori.Runner, set *transaction.Set, workers int) ([]*apriori.Result, error) {
	results := make([]*apriori.Result, len(runners))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, runner := range runners {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runner.Run(set)
			if err != nil {
				return fmt.Errorf("min support %g: %w", runner.Params().MinSupport, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
