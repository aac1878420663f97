// Package rules derives association rules from frequent itemsets.
package rules

import (
	"fmt"
	"sort"

	"github.com/dbsmedya/goapriori/internal/itemset"
	"github.com/dbsmedya/goapriori/internal/support"
)

// Rule is an association rule Antecedent => Consequent.
type Rule struct {
	Antecedent itemset.Itemset `json:"antecedent" yaml:"antecedent"`
	Consequent itemset.Itemset `json:"consequent" yaml:"consequent"`
	Confidence float64         `json:"confidence" yaml:"confidence"`
	Support    float64         `json:"support" yaml:"support"`
}

// Source returns the frequent itemset the rule was split from.
func (r Rule) Source() itemset.Itemset {
	return r.Antecedent.Union(r.Consequent)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s ==> %s <conf:(%.2f)> [support: %.2f]",
		r.Antecedent, r.Consequent, r.Confidence, r.Support)
}

// SupportFunc returns the support of an itemset. *support.Calculator's
// Support method satisfies it.
type SupportFunc func(itemset.Itemset) float64

// Options controls rule selection.
type Options struct {
	MinConfidence float64
	NumRules      int
}

// Generate enumerates every split of every itemset into a non-empty
// antecedent and its non-empty complement, keeps rules whose confidence
// reaches MinConfidence, and returns the NumRules most confident.
//
// Itemsets are visited in the given order and antecedents by size, then
// lexicographically. Rules with equal confidence keep that order. Splits
// whose antecedent has zero support are skipped.
func Generate(sets []itemset.Itemset, supportOf SupportFunc, opts Options) []Rule {
	if len(sets) == 0 || opts.NumRules <= 0 {
		return []Rule{}
	}

	var rules []Rule
	for _, set := range sets {
		full := supportOf(set)
		itemset.Subsets(set, func(antecedent itemset.Itemset) bool {
			anteSupport := supportOf(antecedent)
			if anteSupport <= 0 {
				return true
			}
			confidence := support.Confidence(full, anteSupport)
			if confidence >= opts.MinConfidence {
				rules = append(rules, Rule{
					Antecedent: antecedent,
					Consequent: set.Minus(antecedent),
					Confidence: confidence,
					Support:    full,
				})
			}
			return true
		})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Confidence > rules[j].Confidence
	})

	if len(rules) > opts.NumRules {
		rules = rules[:opts.NumRules]
	}
	if rules == nil {
		rules = []Rule{}
	}
	return rules
}

// FromLevel generates rules from the itemsets stored at one table level.
// A missing level yields no rules.
func FromLevel(table *itemset.Table, k int, calc *support.Calculator, opts Options) []Rule {
	level := table.Level(k)
	if level == nil {
		return []Rule{}
	}
	return Generate(level.Itemsets(), calc.Support, opts)
}
