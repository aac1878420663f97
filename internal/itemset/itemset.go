// Package itemset provides the canonical itemset representation, the
// combination enumerators used to build candidates and rule splits, and the
// level-by-level itemset table produced by the miner.
package itemset

import (
	"sort"
	"strings"
)

// keySep separates items inside a Key. Item identifiers are trimmed text
// and never contain it.
const keySep = "\x1f"

// Itemset is a set of item identifiers kept as a sorted, duplicate-free
// slice so that equal sets compare and hash identically.
type Itemset []string

// New returns the canonical form of items.
func New(items ...string) Itemset {
	out := make(Itemset, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// FromSorted wraps items that are already sorted and unique without copying.
// Combinations relies on it for every emitted candidate.
func FromSorted(items []string) Itemset {
	return Itemset(items)
}

// Key returns the canonical identity of the itemset.
func (s Itemset) Key() string {
	return strings.Join(s, keySep)
}

// Len returns the number of items.
func (s Itemset) Len() int {
	return len(s)
}

// Items returns a copy of the items.
func (s Itemset) Items() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Contains reports whether item is a member. Itemsets are sorted, so this
// is a binary search.
func (s Itemset) Contains(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

// Equal reports set equality.
func (s Itemset) Equal(other Itemset) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Minus returns the items of s that are not in other, still canonical.
func (s Itemset) Minus(other Itemset) Itemset {
	out := make(Itemset, 0, len(s))
	for _, item := range s {
		if !other.Contains(item) {
			out = append(out, item)
		}
	}
	return out
}

// Union returns the canonical union of s and other.
func (s Itemset) Union(other Itemset) Itemset {
	out := make(Itemset, 0, len(s)+len(other))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] < other[j]:
			out = append(out, s[i])
			i++
		case s[i] > other[j]:
			out = append(out, other[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	out = append(out, other[j:]...)
	return out
}

// Disjoint reports whether s and other share no item.
func (s Itemset) Disjoint(other Itemset) bool {
	for _, item := range s {
		if other.Contains(item) {
			return false
		}
	}
	return true
}

// String renders the itemset as "[a, b, c]".
func (s Itemset) String() string {
	return "[" + strings.Join(s, ", ") + "]"
}
