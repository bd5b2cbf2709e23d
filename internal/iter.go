package internal

import (
	"iter"
	"slices"
)

// Permutations returns an iteration of every ordering of values, in
// lexicographic order of the input indexes. Each yielded slice is a
// fresh copy, and may be retained by the consumer.
func Permutations[T any](values []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(values)
		index := make([]int, n)
		for i := range index {
			index[i] = i
		}

		for {
			perm := make([]T, n)
			for i, j := range index {
				perm[i] = values[j]
			}
			if !yield(perm) {
				return // Stop if the consumer stops
			}

			// Advance to the next index permutation.
			i := n - 2
			for i >= 0 && index[i] >= index[i+1] {
				i--
			}
			if i < 0 {
				return
			}
			j := n - 1
			for index[j] <= index[i] {
				j--
			}
			index[i], index[j] = index[j], index[i]
			slices.Reverse(index[i+1:])
		}
	}
}
