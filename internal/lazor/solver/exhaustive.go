package solver

import (
	"context"
	"time"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// Exhaustive tries every combination of k open positions (k = blocks to
// place) with every distinct ordering of the block kinds over them.
// Cost is C(open, k) × k!/multiplicities; use it on small boards only.
func Exhaustive(ctx context.Context, b *core.Board, opts Options) (Result, error) {
	start := time.Now()
	c := &counters{}

	if !feasible(b) {
		return Result{Stats: c.stats(1, start)}, nil
	}

	open := b.OpenPositions()
	kinds := b.Inventory().Kinds()
	k := len(kinds)

	var found *core.Configuration
	var foundPath *core.Path
	var searchErr error

	forEachCombination(len(open), k, func(idx []int) bool {
		perm := make([]core.BlockKind, k)
		copy(perm, kinds)
		for {
			if err := ctx.Err(); err != nil {
				searchErr = err
				return false
			}
			n := c.nodes.Add(1)
			if opts.MaxNodes > 0 && n > opts.MaxNodes {
				searchErr = ErrSearchLimit
				return false
			}

			cfg := b.NewConfiguration()
			ok := true
			for i, at := range idx {
				if err := cfg.PlaceBlock(perm[i], open[at]); err != nil {
					c.rejected.Add(1)
					ok = false
					break
				}
			}
			if ok {
				if path, covered := evaluate(cfg, c); covered {
					found, foundPath = cfg, path
					return false
				}
			}

			if !nextPermutation(perm) {
				return true
			}
		}
	})

	if searchErr != nil {
		return Result{Stats: c.stats(1, start)}, searchErr
	}
	if found == nil {
		return Result{Stats: c.stats(1, start)}, nil
	}
	return solved(found, foundPath, c.stats(1, start)), nil
}

// forEachCombination calls fn with every k-subset of 0..n-1 in
// lexicographic order until fn returns false. k == 0 yields one empty
// subset; k > n yields none.
func forEachCombination(n, k int, fn func(idx []int) bool) {
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		// Find the rightmost index that can still move right.
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

// nextPermutation rearranges kinds into the next lexicographic
// permutation, skipping duplicates. Returns false after the last one.
func nextPermutation(kinds []core.BlockKind) bool {
	i := len(kinds) - 2
	for i >= 0 && kinds[i] >= kinds[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(kinds) - 1
	for kinds[j] <= kinds[i] {
		j--
	}
	kinds[i], kinds[j] = kinds[j], kinds[i]
	for l, r := i+1, len(kinds)-1; l < r; l, r = l+1, r-1 {
		kinds[l], kinds[r] = kinds[r], kinds[l]
	}
	return true
}
