package miner

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dbsmedya/goapriori/internal/config"
	"github.com/dbsmedya/goapriori/internal/itemset"
)

// ErrUnknownStrategy is returned for an unrecognised strategy name.
var ErrUnknownStrategy = errors.New("unknown candidate strategy")

// Strategy proposes the size-k candidates evaluated at one level.
// Candidates must be canonical and emitted in lexicographic order; emit
// returns false to stop early.
type Strategy interface {
	Name() string
	Candidates(k int, universe []string, prev *itemset.Level, emit func(itemset.Itemset) bool)
}

// StrategyFor resolves a configured strategy name. An empty name selects
// the exhaustive strategy.
func StrategyFor(name string) (Strategy, error) {
	switch name {
	case config.StrategyExhaustive, "":
		return Exhaustive{}, nil
	case config.StrategyApriori:
		return Apriori{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Exhaustive generates every k-combination of the full item universe at
// every level, regardless of which (k-1)-itemsets survived.
type Exhaustive struct{}

// Name implements Strategy.
func (Exhaustive) Name() string { return config.StrategyExhaustive }

// Candidates implements Strategy.
func (Exhaustive) Candidates(k int, universe []string, _ *itemset.Level, emit func(itemset.Itemset) bool) {
	itemset.Combinations(universe, k, emit)
}

// Apriori builds size-k candidates by joining frequent (k-1)-itemsets that
// share their first k-2 items, then drops any candidate with an infrequent
// (k-1)-subset. It yields the same frequent itemsets as Exhaustive while
// evaluating far fewer candidates.
type Apriori struct{}

// Name implements Strategy.
func (Apriori) Name() string { return config.StrategyApriori }

// Candidates implements Strategy.
func (Apriori) Candidates(k int, universe []string, prev *itemset.Level, emit func(itemset.Itemset) bool) {
	if k == 1 || prev == nil {
		itemset.Combinations(universe, k, emit)
		return
	}

	sets := prev.Itemsets()
	sort.Slice(sets, func(i, j int) bool { return less(sets[i], sets[j]) })

	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if !samePrefix(sets[i], sets[j], k-2) {
				// sorted order: no later j shares the prefix either
				break
			}
			candidate := make(itemset.Itemset, 0, k)
			candidate = append(candidate, sets[i]...)
			candidate = append(candidate, sets[j][k-2])

			if !allSubsetsFrequent(candidate, prev) {
				continue
			}
			if !emit(candidate) {
				return
			}
		}
	}
}

// allSubsetsFrequent checks every (k-1)-subset obtained by dropping one
// item.
func allSubsetsFrequent(candidate itemset.Itemset, prev *itemset.Level) bool {
	sub := make(itemset.Itemset, len(candidate)-1)
	for skip := range candidate {
		copy(sub, candidate[:skip])
		copy(sub[skip:], candidate[skip+1:])
		if !prev.Has(sub) {
			return false
		}
	}
	return true
}

func samePrefix(a, b itemset.Itemset, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// less orders itemsets of equal size element by element.
func less(a, b itemset.Itemset) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
