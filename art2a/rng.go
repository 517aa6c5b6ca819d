package art2a

import "math/rand"

// rngFromSeed returns a deterministic *rand.Rand for one epoch.
// The engine owns the stream for the duration of the epoch; it is never shared
// across goroutines.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// presentationOrder returns the order in which the n input vectors are presented
// during one epoch (PermutationGenerator).
//
// ShufflePairwiseSwaps: identity, then ⌊n/2⌋+1 swaps of positions (i, j), each
// drawn uniformly from [0,n) in that order. Self-swaps and swaps that cancel
// earlier ones are kept.
//
// ShuffleFisherYates: identity, then a uniform Fisher-Yates shuffle.
//
// The result is always a permutation of 0..n-1 and is fully determined by
// (n, seed, mode).
//
// Complexity: O(n) time, O(n) space.
func presentationOrder(n int, seed int64, mode ShuffleMode) []int {
	order := make([]int, n)
	var i int
	for i = 0; i < n; i++ {
		order[i] = i
	}
	if n <= 1 {
		return order
	}

	r := rngFromSeed(seed)
	switch mode {
	case ShuffleFisherYates:
		shuffleIntsInPlace(order, r)
	default:
		pairwiseSwapsInPlace(order, r)
	}

	return order
}

// pairwiseSwapsInPlace performs ⌊len(a)/2⌋+1 random swaps on a.
func pairwiseSwapsInPlace(a []int, r *rand.Rand) {
	var (
		n      = len(a)
		swaps  = n/2 + 1
		k      int
		i1, i2 int
	)
	for k = 0; k < swaps; k++ {
		i1 = r.Intn(n)
		i2 = r.Intn(n)
		a[i1], a[i2] = a[i2], a[i1]
	}
}

// shuffleIntsInPlace performs an in-place Fisher-Yates shuffle of a using r.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, r *rand.Rand) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
