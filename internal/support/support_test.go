package support

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/goapriori/internal/itemset"
	"github.com/dbsmedya/goapriori/internal/transaction"
)

func groceries() *transaction.Set {
	return transaction.FromRecords([][]string{
		{"milk", "bread"},
		{"milk", "bread", "butter"},
		{"bread", "butter"},
		{"milk"},
	})
}

func TestOf(t *testing.T) {
	set := groceries()

	tests := []struct {
		items    []string
		expected float64
	}{
		{[]string{"milk"}, 0.75},
		{[]string{"bread"}, 0.75},
		{[]string{"butter"}, 0.5},
		{[]string{"milk", "bread"}, 0.5},
		{[]string{"milk", "butter"}, 0.25},
		{[]string{"bread", "butter"}, 0.5},
		{[]string{"milk", "bread", "butter"}, 0.25},
		{[]string{"eggs"}, 0},
	}

	for _, tt := range tests {
		got := Of(itemset.New(tt.items...), set)
		assert.InDelta(t, tt.expected, got, 1e-9, "support of %v", tt.items)
	}
}

func TestOfEmptySet(t *testing.T) {
	assert.Equal(t, 0.0, Of(itemset.New("milk"), transaction.Empty()))
	assert.Equal(t, 0, Count(itemset.New("milk"), transaction.Empty()))
}

func TestOfAllPresent(t *testing.T) {
	set := transaction.FromRecords([][]string{
		{"a", "b", "c"},
		{"c", "b", "a"},
		{"a", "b", "c", "a"},
	})
	for _, item := range set.Universe() {
		assert.Equal(t, 1.0, Of(itemset.New(item), set))
	}
}

func TestSupportBoundsAndMonotonicity(t *testing.T) {
	set := transaction.FromRecords([][]string{
		{"a", "b", "c", "d"},
		{"a", "c"},
		{"b", "d", "e"},
		{"a", "b", "e"},
		{"c", "d", "e"},
		{"a"},
	})
	universe := set.Universe()

	for k := 1; k <= len(universe); k++ {
		itemset.Combinations(universe, k, func(s itemset.Itemset) bool {
			sup := Of(s, set)
			assert.GreaterOrEqual(t, sup, 0.0)
			assert.LessOrEqual(t, sup, 1.0)

			// every superset formed by adding one item has no greater support
			for _, extra := range universe {
				if s.Contains(extra) {
					continue
				}
				bigger := s.Union(itemset.New(extra))
				assert.GreaterOrEqual(t, sup, Of(bigger, set), "%v vs %v", s, bigger)
			}
			return true
		})
	}
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.5/0.75, Confidence(0.5, 0.75), 1e-12)
	assert.Equal(t, 1.0, Confidence(0.4, 0.4))
	assert.Equal(t, 0.0, Confidence(0, 0), "zero antecedent support is guarded")
	assert.Equal(t, 0.0, Confidence(0.3, 0))
}

func TestCalculatorCaches(t *testing.T) {
	calc := NewCalculator(groceries(), 16)

	first := calc.Support(itemset.New("milk", "bread"))
	second := calc.Support(itemset.New("bread", "milk"))

	assert.Equal(t, first, second)
	stats := calc.Stats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Computed)
	assert.Equal(t, 4, calc.Transactions())
}

func TestCalculatorWithoutCache(t *testing.T) {
	calc := NewCalculator(groceries(), 0)

	calc.Support(itemset.New("milk"))
	calc.Support(itemset.New("milk"))

	stats := calc.Stats()
	assert.Equal(t, 2, stats.Computed)
	assert.Equal(t, 0, stats.Hits)
}

func TestCalculatorMatchesOf(t *testing.T) {
	set := groceries()
	cached := NewCalculator(set, 2) // small enough to force evictions
	universe := set.Universe()

	for pass := 0; pass < 2; pass++ {
		for k := 1; k <= len(universe); k++ {
			itemset.Combinations(universe, k, func(s itemset.Itemset) bool {
				assert.Equal(t, Of(s, set), cached.Support(s))
				return true
			})
		}
	}
}
