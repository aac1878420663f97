package itemset

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

// Entry is one frequent itemset and its support.
type Entry struct {
	Itemset Itemset
	Support float64
}

// Level holds the frequent itemsets of one size, in the order they were
// generated.
type Level struct {
	size    int
	entries *orderedmap.OrderedMap[string, Entry]
}

// NewLevel creates an empty level for itemsets of the given size.
func NewLevel(size int) *Level {
	return &Level{
		size:    size,
		entries: orderedmap.NewOrderedMap[string, Entry](),
	}
}

// Size returns the itemset size k of this level.
func (l *Level) Size() int {
	return l.size
}

// Add records an itemset with its support. Re-adding an itemset replaces
// its support but keeps its original position.
func (l *Level) Add(set Itemset, support float64) {
	l.entries.Set(set.Key(), Entry{Itemset: set, Support: support})
}

// Get returns the support of set, if present.
func (l *Level) Get(set Itemset) (float64, bool) {
	e, ok := l.entries.Get(set.Key())
	if !ok {
		return 0, false
	}
	return e.Support, true
}

// Has reports whether set is present.
func (l *Level) Has(set Itemset) bool {
	_, ok := l.entries.Get(set.Key())
	return ok
}

// Len returns the number of itemsets.
func (l *Level) Len() int {
	return l.entries.Len()
}

// Entries returns the itemsets in generation order.
func (l *Level) Entries() []Entry {
	out := make([]Entry, 0, l.entries.Len())
	for el := l.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Itemsets returns only the itemsets in generation order.
func (l *Level) Itemsets() []Itemset {
	out := make([]Itemset, 0, l.entries.Len())
	for el := l.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.Itemset)
	}
	return out
}

// Table maps itemset size to the level of frequent itemsets of that size.
type Table struct {
	levels map[int]*Level
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{levels: make(map[int]*Level)}
}

// Put stores a level, replacing any level of the same size.
func (t *Table) Put(level *Level) {
	t.levels[level.Size()] = level
}

// Level returns the level for size k, or nil if it was never stored.
func (t *Table) Level(k int) *Level {
	return t.levels[k]
}

// HasLevel reports whether level k was stored.
func (t *Table) HasLevel(k int) bool {
	_, ok := t.levels[k]
	return ok
}

// Sizes returns the stored level sizes in ascending order.
func (t *Table) Sizes() []int {
	sizes := make([]int, 0, len(t.levels))
	for k := range t.levels {
		sizes = append(sizes, k)
	}
	sort.Ints(sizes)
	return sizes
}

// MaxLevel returns the largest stored size, or 0 for an empty table.
func (t *Table) MaxLevel() int {
	top := 0
	for k := range t.levels {
		if k > top {
			top = k
		}
	}
	return top
}

// Len returns the number of stored levels.
func (t *Table) Len() int {
	return len(t.levels)
}

// Count returns the total number of frequent itemsets across all levels.
func (t *Table) Count() int {
	n := 0
	for _, l := range t.levels {
		n += l.Len()
	}
	return n
}
