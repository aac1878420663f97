// Package transaction provides the transaction set consumed by the miner
// and the sources that load it.
package transaction

import "sort"

// Transaction is an immutable, unordered set of item identifiers.
type Transaction struct {
	items map[string]struct{}
	list  []string // sorted, deduplicated
}

// New creates a Transaction from the given items. Duplicates are collapsed
// and empty identifiers are dropped.
func New(items ...string) Transaction {
	set := make(map[string]struct{}, len(items))
	list := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, dup := set[item]; dup {
			continue
		}
		set[item] = struct{}{}
		list = append(list, item)
	}
	sort.Strings(list)
	return Transaction{items: set, list: list}
}

// Contains reports whether the transaction holds item.
func (t Transaction) Contains(item string) bool {
	_, ok := t.items[item]
	return ok
}

// ContainsAll reports whether every item is present, i.e. whether the
// transaction is a superset of items.
func (t Transaction) ContainsAll(items []string) bool {
	if len(items) > len(t.list) {
		return false
	}
	for _, item := range items {
		if _, ok := t.items[item]; !ok {
			return false
		}
	}
	return true
}

// Items returns a copy of the transaction's items in ascending order.
func (t Transaction) Items() []string {
	out := make([]string, len(t.list))
	copy(out, t.list)
	return out
}

// Len returns the number of distinct items.
func (t Transaction) Len() int {
	return len(t.list)
}

// Set is an ordered, immutable sequence of transactions.
type Set struct {
	transactions []Transaction
	universe     []string
}

// NewSet builds a Set and derives its item universe. Transactions without
// items are skipped.
func NewSet(transactions ...Transaction) *Set {
	kept := make([]Transaction, 0, len(transactions))
	seen := make(map[string]struct{})
	var universe []string

	for _, t := range transactions {
		if t.Len() == 0 {
			continue
		}
		kept = append(kept, t)
		for _, item := range t.list {
			if _, ok := seen[item]; !ok {
				seen[item] = struct{}{}
				universe = append(universe, item)
			}
		}
	}
	sort.Strings(universe)

	return &Set{transactions: kept, universe: universe}
}

// Empty returns a Set with no transactions.
func Empty() *Set {
	return &Set{}
}

// FromRecords builds a Set from raw item lists, one per transaction.
func FromRecords(records [][]string) *Set {
	txs := make([]Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, New(rec...))
	}
	return NewSet(txs...)
}

// Len returns the number of transactions.
func (s *Set) Len() int {
	return len(s.transactions)
}

// At returns the i-th transaction.
func (s *Set) At(i int) Transaction {
	return s.transactions[i]
}

// Transactions returns the transactions in load order. The slice must not
// be modified.
func (s *Set) Transactions() []Transaction {
	return s.transactions
}

// Universe returns every distinct item in ascending order.
func (s *Set) Universe() []string {
	out := make([]string, len(s.universe))
	copy(out, s.universe)
	return out
}

// ItemCount returns the size of the item universe.
func (s *Set) ItemCount() int {
	return len(s.universe)
}
