// Package support computes itemset support over a transaction set.
package support

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dbsmedya/goapriori/internal/itemset"
	"github.com/dbsmedya/goapriori/internal/transaction"
)

// DefaultCacheSize is used by NewCalculator when no size is configured.
const DefaultCacheSize = 4096

// Of returns the fraction of transactions in set that contain every item
// of s. Support over an empty transaction set is defined as 0.
func Of(s itemset.Itemset, set *transaction.Set) float64 {
	total := set.Len()
	if total == 0 {
		return 0
	}
	return float64(Count(s, set)) / float64(total)
}

// Count returns the number of transactions that are supersets of s.
func Count(s itemset.Itemset, set *transaction.Set) int {
	n := 0
	for _, tx := range set.Transactions() {
		if tx.ContainsAll(s) {
			n++
		}
	}
	return n
}

// Confidence returns supportAll / supportAntecedent, or 0 when the
// antecedent never occurs.
func Confidence(supportAll, supportAntecedent float64) float64 {
	if supportAntecedent <= 0 {
		return 0
	}
	return supportAll / supportAntecedent
}

// Stats reports cache effectiveness for one Calculator.
type Stats struct {
	Computed int // full scans over the transaction set
	Hits     int
	Misses   int
}

// Calculator computes support against one transaction set and memoizes
// results by canonical itemset key. A Calculator belongs to a single run.
type Calculator struct {
	set   *transaction.Set
	cache *lru.Cache[string, float64]
	stats Stats
}

// NewCalculator creates a Calculator for set. cacheSize <= 0 disables
// memoization.
func NewCalculator(set *transaction.Set, cacheSize int) *Calculator {
	c := &Calculator{set: set}
	if cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		c.cache, _ = lru.New[string, float64](cacheSize)
	}
	return c
}

// Support returns the support of s, using the cache when enabled.
func (c *Calculator) Support(s itemset.Itemset) float64 {
	if c.cache == nil {
		c.stats.Computed++
		return Of(s, c.set)
	}

	key := s.Key()
	if v, ok := c.cache.Get(key); ok {
		c.stats.Hits++
		return v
	}
	c.stats.Misses++
	c.stats.Computed++
	v := Of(s, c.set)
	c.cache.Add(key, v)
	return v
}

// Transactions returns the number of transactions behind this calculator.
func (c *Calculator) Transactions() int {
	return c.set.Len()
}

// Stats returns a snapshot of the calculator's counters.
func (c *Calculator) Stats() Stats {
	return c.stats
}
