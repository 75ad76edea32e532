// Package grouping folds runs of adjacent elements that share a key.
package grouping

import "iter"

// Adjacent returns a sequence with one accumulator per run of consecutive
// elements of seq that share the same key. A run starts with open(first)
// and every element of the run, the first included, is folded with add.
// The trailing run is always emitted once seq is exhausted.
//
// Elements with equal keys that are not adjacent produce separate groups,
// so seq must already be ordered by key when one group per key is wanted.
func Adjacent[T any, K comparable, A any](
	seq iter.Seq[T],
	key func(T) K,
	open func(T) A,
	add func(A, T) A,
) iter.Seq[A] {
	return func(yield func(A) bool) {
		var (
			acc     A
			current K
			started bool
		)
		for v := range seq {
			k := key(v)
			if started && k != current {
				if !yield(acc) {
					return
				}
				started = false
			}
			if !started {
				acc = open(v)
				current = k
				started = true
			}
			acc = add(acc, v)
		}
		if started {
			yield(acc)
		}
	}
}
