// Package miner finds frequent itemsets level by level.
package miner

import (
	"time"

	"github.com/dbsmedya/goapriori/internal/itemset"
	"github.com/dbsmedya/goapriori/internal/logger"
	"github.com/dbsmedya/goapriori/internal/support"
	"github.com/dbsmedya/goapriori/internal/transaction"
)

// Options configures an Engine.
type Options struct {
	MinSupport float64
	Strategy   Strategy // nil selects Exhaustive
	MaxLevel   int      // 0 means no cap
}

// LevelStats describes the work done at one level.
type LevelStats struct {
	Size       int
	Candidates int
	Frequent   int
}

// Stats summarises one Mine call.
type Stats struct {
	Levels   []LevelStats
	Duration time.Duration
}

// Candidates returns the total number of candidates evaluated.
func (s Stats) Candidates() int {
	n := 0
	for _, l := range s.Levels {
		n += l.Candidates
	}
	return n
}

// Engine runs the level-wise search. It keeps no state between calls, so
// one Engine may serve several runs.
type Engine struct {
	opts Options
	log  *logger.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(opts Options, log *logger.Logger) *Engine {
	if opts.Strategy == nil {
		opts.Strategy = Exhaustive{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{opts: opts, log: log.WithStrategy(opts.Strategy.Name())}
}

// Mine builds the itemset table for set using the exhaustive strategy and
// no support cache.
func Mine(set *transaction.Set, minSupport float64) *itemset.Table {
	table, _ := NewEngine(Options{MinSupport: minSupport}, nil).Mine(set, nil)
	return table
}

// Mine builds the itemset table for set. Level 1 is always stored, even
// when empty. Level k >= 2 is attempted only while level k-1 holds at
// least one itemset, and the first empty level ends the search without
// being stored. A nil calc gets a fresh cached calculator.
func (e *Engine) Mine(set *transaction.Set, calc *support.Calculator) (*itemset.Table, Stats) {
	start := time.Now()
	if calc == nil {
		calc = support.NewCalculator(set, support.DefaultCacheSize)
	}

	universe := set.Universe()
	table := itemset.NewTable()
	var stats Stats

	prev := e.mineLevel(1, universe, nil, calc, &stats)
	table.Put(prev)

	for k := 2; prev.Len() > 0; k++ {
		if e.opts.MaxLevel > 0 && k > e.opts.MaxLevel {
			e.log.Debugw("Level cap reached", "max_level", e.opts.MaxLevel)
			break
		}
		level := e.mineLevel(k, universe, prev, calc, &stats)
		if level.Len() == 0 {
			break
		}
		table.Put(level)
		prev = level
	}

	stats.Duration = time.Since(start)
	return table, stats
}

func (e *Engine) mineLevel(k int, universe []string, prev *itemset.Level, calc *support.Calculator, stats *Stats) *itemset.Level {
	level := itemset.NewLevel(k)
	ls := LevelStats{Size: k}

	e.opts.Strategy.Candidates(k, universe, prev, func(candidate itemset.Itemset) bool {
		ls.Candidates++
		if sup := calc.Support(candidate); sup >= e.opts.MinSupport {
			level.Add(candidate, sup)
		}
		return true
	})

	ls.Frequent = level.Len()
	stats.Levels = append(stats.Levels, ls)

	e.log.WithLevel(k).Debugw("Level mined",
		"candidates", ls.Candidates,
		"frequent", ls.Frequent,
	)
	return level
}
