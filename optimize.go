package zx0

import "fmt"

// maxScale is the progress-dot schedule's denominator: a dot is printed
// every time index*maxScale/inputLen crosses an integer threshold, for up
// to maxScale-2 dots total, starting from a threshold of 2 so the first dot
// doesn't print immediately at index 0.
const maxScale = 50

// Optimize searches every legal way to parse input[skip:] into literal
// runs and back-reference matches and returns the terminal Block of the
// parse with the smallest total encoded bit length under the ZX0 cost
// model. Callers reconstruct the parse by walking the returned Block's
// Chain back-pointer to the origin.
//
// offsetLimit caps how far back a match may reach (2176 for ZX7/"quick"
// mode, 32640 for full ZX0). threads controls how many goroutines share the
// per-index scan; 1 runs it on the calling goroutine with no channel
// machinery at all. When verbose is true, Optimize prints a progress bar
// (`[`, up to 48 dots, `]`) to standard output as it scans.
//
// Optimize returns an *InvalidArgumentError if skip is out of [0, len(input))
// or offsetLimit or threads is not positive; these are programmer errors,
// not recoverable conditions; given well-formed arguments Optimize always
// terminates and returns a non-nil Block.
func Optimize(input []byte, skip, offsetLimit, threads int, verbose bool) (*Block, error) {
	n := len(input)
	if skip < 0 || skip >= n {
		return nil, invalidArgument("skip %d out of range [0, %d)", skip, n)
	}
	if offsetLimit < 1 {
		return nil, invalidArgument("offsetLimit %d must be positive", offsetLimit)
	}
	if threads < 1 {
		return nil, invalidArgument("threads %d must be positive", threads)
	}

	arena := newBlockArena()
	ceiling := offsetCeiling(n-1, offsetLimit)
	state := newSearchState(n, ceiling)

	// Synthetic origin: treat the parse as having just completed a match
	// at InitialOffset ending at skip-1, so that the Case B (lastMatch ->
	// lastLiteral) transition can plant the first literal run starting at
	// skip.
	state.lastMatch[InitialOffset] = arena.alloc(-1, skip-1, InitialOffset, nil)

	if verbose {
		fmt.Print("[")
	}
	dots := 2

	if threads == 1 {
		bl := newBestLengthTable(n)
		for index := skip; index < n; index++ {
			maxOffset := offsetCeiling(index, offsetLimit)
			bl.reset()
			state.optimal[index] = scanOffsetRange(arena, state, bl, input, skip, index, 1, maxOffset)
			dots = reportProgress(verbose, index, n, dots)
		}
	} else {
		pool := newShardPool(threads, newBlockArena, input, skip, state)
		for index := skip; index < n; index++ {
			maxOffset := offsetCeiling(index, offsetLimit)
			shards := partitionShards(maxOffset, threads)
			state.optimal[index] = pool.run(index, shards)
			dots = reportProgress(verbose, index, n, dots)
		}
		pool.close()
	}

	if verbose {
		fmt.Println("]")
	}

	return state.optimal[n-1], nil
}

func reportProgress(verbose bool, index, n, dots int) int {
	if verbose && index*maxScale/n > dots {
		fmt.Print(".")
		dots++
	}
	return dots
}
