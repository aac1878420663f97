package itemset

// Combinations calls fn for every k-element combination of items, in
// lexicographic order of positions. When items are sorted, every emitted
// Itemset is canonical. The slice passed to fn is fresh on each call.
// Iteration stops early if fn returns false.
//
// No combination is produced when k <= 0 or k > len(items).
func Combinations(items []string, k int, fn func(Itemset) bool) {
	n := len(items)
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		combo := make([]string, k)
		for i, p := range idx {
			combo[i] = items[p]
		}
		if !fn(FromSorted(combo)) {
			return
		}

		// Advance the rightmost index that still has room.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// CountCombinations returns C(n, k), saturating at the maximum int.
func CountCombinations(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	const maxInt = int(^uint(0) >> 1)
	result := 1
	for i := 1; i <= k; i++ {
		next := result * (n - k + i)
		if next/(n-k+i) != result {
			return maxInt
		}
		result = next / i
	}
	return result
}

// Subsets calls fn for every non-empty proper subset of s, grouped by size
// ascending and in lexicographic order within a size.
func Subsets(s Itemset, fn func(Itemset) bool) {
	for size := 1; size < len(s); size++ {
		stop := false
		Combinations(s, size, func(sub Itemset) bool {
			if !fn(sub) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}
