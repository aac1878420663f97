// Package apriori wires the transaction set, support calculator, miner and
// rule generator into a single run.
package apriori

import (
	"fmt"
	"time"

	"github.com/dbsmedya/goapriori/internal/config"
	"github.com/dbsmedya/goapriori/internal/itemset"
	"github.com/dbsmedya/goapriori/internal/logger"
	"github.com/dbsmedya/goapriori/internal/miner"
	"github.com/dbsmedya/goapriori/internal/rules"
	"github.com/dbsmedya/goapriori/internal/support"
	"github.com/dbsmedya/goapriori/internal/transaction"
)

// Result is everything one run produces.
type Result struct {
	Params           config.MiningConfig
	Table            *itemset.Table
	Rules            []rules.Rule
	ItemCount        int
	TransactionCount int
	Stats            Stats
}

// Stats collects counters from the run's components.
type Stats struct {
	Levels      []miner.LevelStats
	Candidates  int
	CacheHits   int
	CacheMisses int
	Scans       int
	Duration    time.Duration
}

// Runner executes mining runs for a fixed set of parameters. Each Run
// builds its own calculator and table, so one Runner may be used from
// several goroutines.
type Runner struct {
	params   config.MiningConfig
	strategy miner.Strategy
	log      *logger.Logger
}

// NewRunner validates params and prepares a Runner. Invalid parameters are
// reported here, before any mining starts.
func NewRunner(params config.MiningConfig, log *logger.Logger) (*Runner, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	strategy, err := miner.StrategyFor(params.Strategy)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{params: params, strategy: strategy, log: log}, nil
}

// Params returns the runner's mining parameters.
func (r *Runner) Params() config.MiningConfig {
	return r.params
}

// Run mines set and derives rules from the configured itemset level.
func (r *Runner) Run(set *transaction.Set) (*Result, error) {
	if set == nil {
		return nil, fmt.Errorf("transaction set is nil")
	}
	start := time.Now()

	r.log.Infow("Mining started",
		"transactions", set.Len(),
		"items", set.ItemCount(),
		"min_support", r.params.MinSupport,
		"strategy", r.strategy.Name(),
	)

	calc := support.NewCalculator(set, r.params.SupportCacheSize)
	engine := miner.NewEngine(miner.Options{
		MinSupport: r.params.MinSupport,
		Strategy:   r.strategy,
		MaxLevel:   r.params.MaxLevel,
	}, r.log)

	table, mineStats := engine.Mine(set, calc)

	if !table.HasLevel(r.params.ItemsetLevel) {
		r.log.Warnw("Requested itemset level was not reached",
			"itemset_level", r.params.ItemsetLevel,
			"max_level", table.MaxLevel(),
		)
	}

	ruleList := rules.FromLevel(table, r.params.ItemsetLevel, calc, rules.Options{
		MinConfidence: r.params.MinConfidence,
		NumRules:      r.params.NumRules,
	})

	cs := calc.Stats()
	result := &Result{
		Params:           r.params,
		Table:            table,
		Rules:            ruleList,
		ItemCount:        set.ItemCount(),
		TransactionCount: set.Len(),
		Stats: Stats{
			Levels:      mineStats.Levels,
			Candidates:  mineStats.Candidates(),
			CacheHits:   cs.Hits,
			CacheMisses: cs.Misses,
			Scans:       cs.Computed,
			Duration:    time.Since(start),
		},
	}

	r.log.Infow("Mining completed",
		"levels", table.Len(),
		"frequent_itemsets", table.Count(),
		"rules", len(ruleList),
		"duration", result.Stats.Duration,
	)
	r.log.Debugw("Support cache",
		"hits", cs.Hits,
		"misses", cs.Misses,
		"scans", cs.Computed,
	)

	return result, nil
}
